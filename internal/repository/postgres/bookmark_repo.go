package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"skillsharehub/internal/domain"
)

type bookmarkRepository struct {
	DB *sql.DB
}

func NewBookmarkRepository(db *sql.DB) domain.BookmarkRepository {
	return &bookmarkRepository{
		DB: db,
	}
}

func (r *bookmarkRepository) Add(ctx context.Context, b *domain.Bookmark) error {
	query := `
		INSERT INTO bookmarks (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, b.EventID, b.UserID, b.CreatedAt)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *bookmarkRepository) Remove(ctx context.Context, eventID, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM bookmarks WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return err
}

func (r *bookmarkRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE event_id = $1 AND user_id = $2)`
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *bookmarkRepository) CountByEventIDs(ctx context.Context, eventIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT event_id, COUNT(*)
		FROM bookmarks
		WHERE event_id = ANY($1)
		GROUP BY event_id
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(eventIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *bookmarkRepository) EventIDsBookmarkedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	query := `SELECT DISTINCT event_id FROM bookmarks WHERE user_id = $1 AND event_id = ANY($2)`
	return queryEventIDSet(ctx, r.DB, query, userID, eventIDs)
}
