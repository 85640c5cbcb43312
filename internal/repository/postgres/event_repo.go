package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"skillsharehub/internal/domain"
)

const eventColumns = `e.id, e.title, e.scheduled_at, e.cost, e.location, e.address, e.description, e.hostname, e.created_at, e.updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	if err := row.Scan(
		&e.ID, &e.Title, &e.ScheduledAt, &e.Cost, &e.Location, &e.Address,
		&e.Description, &e.Hostname, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) CreateWithHost(ctx context.Context, e *domain.Event, host *domain.Host, topicIDs []string) error {
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		query := `
			INSERT INTO events (title, scheduled_at, cost, location, address, description, hostname, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query,
			e.Title, e.ScheduledAt, e.Cost, e.Location, e.Address, e.Description, e.Hostname, e.CreatedAt, e.UpdatedAt,
		).Scan(&e.ID); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		host.EventID = e.ID
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO hosts (event_id, user_id, name) VALUES ($1, $2, $3) RETURNING id`,
			host.EventID, host.UserID, host.Name,
		).Scan(&host.ID); err != nil {
			return fmt.Errorf("insert host: %w", err)
		}

		return insertEventTopics(ctx, tx, e.ID, topicIDs)
	})
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e`
	var args []any
	if q := strings.TrimSpace(filter.Query); q != "" {
		query += ` WHERE e.cost ILIKE $1 OR CAST(e.scheduled_at AS TEXT) ILIKE $1`
		args = append(args, "%"+escapeLike(q)+"%")
	}
	query += ` ORDER BY e.scheduled_at, e.id`
	return r.queryEvents(ctx, query, args...)
}

func (r *eventRepository) ListByHost(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN hosts h ON h.event_id = e.id
		WHERE h.user_id = $1
		ORDER BY e.scheduled_at, e.id
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) ListBookmarkedBy(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		JOIN bookmarks b ON b.event_id = e.id
		WHERE b.user_id = $1
		ORDER BY e.scheduled_at, e.id
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, scheduled_at = $2, cost = $3, location = $4, address = $5,
			description = $6, hostname = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.ScheduledAt, e.Cost, e.Location, e.Address, e.Description, e.Hostname, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		for _, table := range []string{"bookmarks", "hosts", "event_topics"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE event_id = $1`, id); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so q is matched literally.
func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}
