package domain

import (
	"context"
	"time"
)

// Bookmark represents a user's saved interest in an event.
// swagger:model Bookmark
type Bookmark struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewBookmark creates a new Bookmark. ID is typically set by the repository on create.
func NewBookmark(eventID, userID string, createdAt time.Time) *Bookmark {
	return &Bookmark{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// BookmarkRepository defines storage operations for bookmarks.
type BookmarkRepository interface {
	// Add stores the bookmark. Adding an existing (event, user) pair is not an error.
	Add(ctx context.Context, bookmark *Bookmark) error
	// Remove deletes the (event, user) bookmark. Removing a missing bookmark is not an error.
	Remove(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	CountByEventIDs(ctx context.Context, eventIDs []string) (map[string]int, error)
	// EventIDsBookmarkedBy returns the subset of eventIDs the user has bookmarked.
	EventIDsBookmarkedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error)
}
