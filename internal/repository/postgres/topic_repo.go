package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"skillsharehub/internal/domain"
)

type topicRepository struct {
	DB *sql.DB
}

// NewTopicRepository returns a domain.TopicRepository implemented with Postgres.
func NewTopicRepository(db *sql.DB) domain.TopicRepository {
	return &topicRepository{DB: db}
}

func (r *topicRepository) Create(ctx context.Context, topic *domain.Topic) error {
	err := r.DB.QueryRowContext(ctx, `INSERT INTO topics (label) VALUES ($1) RETURNING id`, topic.Label).Scan(&topic.ID)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.ErrTopicExists
		}
		return err
	}
	return nil
}

func (r *topicRepository) List(ctx context.Context) ([]*domain.Topic, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, label FROM topics ORDER BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.Label); err != nil {
			return nil, err
		}
		topics = append(topics, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *topicRepository) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Topic, error) {
	out := make(map[string][]*domain.Topic, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT et.event_id, t.id, t.label FROM topics t
		 JOIN event_topics et ON et.topic_id = t.id
		 WHERE et.event_id = ANY($1)
		 ORDER BY t.label`, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID string
		var t domain.Topic
		if err := rows.Scan(&eventID, &t.ID, &t.Label); err != nil {
			return nil, err
		}
		out[eventID] = append(out[eventID], &t)
	}
	return out, rows.Err()
}

func (r *topicRepository) SetEventTopics(ctx context.Context, eventID string, topicIDs []string) error {
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_topics WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("clear event topics: %w", err)
		}
		return insertEventTopics(ctx, tx, eventID, topicIDs)
	})
}

// insertEventTopics links topics to an event inside tx. Unknown topic IDs yield ErrInvalidInput.
func insertEventTopics(ctx context.Context, tx *sql.Tx, eventID string, topicIDs []string) error {
	for _, topicID := range topicIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_topics (event_id, topic_id) VALUES ($1, $2) ON CONFLICT (event_id, topic_id) DO NOTHING`,
			eventID, topicID)
		if err != nil {
			if pqCode(err) == foreignKeyViolation {
				return fmt.Errorf("%w: unknown topic %s", domain.ErrInvalidInput, topicID)
			}
			return fmt.Errorf("link topic: %w", err)
		}
	}
	return nil
}
