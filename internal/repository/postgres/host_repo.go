package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"skillsharehub/internal/domain"
)

type hostRepository struct {
	DB *sql.DB
}

func NewHostRepository(db *sql.DB) domain.HostRepository {
	return &hostRepository{
		DB: db,
	}
}

func (r *hostRepository) Add(ctx context.Context, host *domain.Host) error {
	query := `
		INSERT INTO hosts (event_id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, host.EventID, host.UserID, host.Name).Scan(&host.ID)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return domain.ErrAlreadyHost
		case foreignKeyViolation:
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *hostRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM hosts WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *hostRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM hosts WHERE event_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *hostRepository) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Host, error) {
	out := make(map[string][]*domain.Host, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT id, event_id, user_id, name
		FROM hosts
		WHERE event_id = ANY($1)
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		h := &domain.Host{}
		if err := rows.Scan(&h.ID, &h.EventID, &h.UserID, &h.Name); err != nil {
			return nil, err
		}
		out[h.EventID] = append(out[h.EventID], h)
	}
	return out, rows.Err()
}

func (r *hostRepository) EventIDsHostedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	query := `SELECT DISTINCT event_id FROM hosts WHERE user_id = $1 AND event_id = ANY($2)`
	return queryEventIDSet(ctx, r.DB, query, userID, eventIDs)
}

// queryEventIDSet runs a single-column event_id query scoped to a user and a page of events.
func queryEventIDSet(ctx context.Context, db *sql.DB, query, userID string, eventIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if userID == "" || len(eventIDs) == 0 {
		return out, nil
	}
	rows, err := db.QueryContext(ctx, query, userID, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
