package domain

import (
	"context"
	"time"
)

// Event represents a scheduled skill-share event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"datetime"`
	Cost        string    `json:"cost"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	Hostname    string    `json:"hostname"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title string, scheduledAt time.Time, cost, location, address, description, hostname string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		ScheduledAt: scheduledAt,
		Cost:        cost,
		Location:    location,
		Address:     address,
		Description: description,
		Hostname:    hostname,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventFilter narrows List results. An empty Query returns every event.
type EventFilter struct {
	// Query is matched case-insensitively as a substring of cost or of the scheduled time text.
	Query string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// CreateWithHost inserts the event, its first host and its topic links in one transaction.
	CreateWithHost(ctx context.Context, event *Event, host *Host, topicIDs []string) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events ordered by scheduled time ascending.
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	ListByHost(ctx context.Context, userID string) ([]*Event, error)
	ListBookmarkedBy(ctx context.Context, userID string) ([]*Event, error)
	// Update replaces every scalar field of the event.
	Update(ctx context.Context, event *Event) error
	// Delete removes the event together with its hosts, topic links and bookmarks.
	Delete(ctx context.Context, id string) error
}

// EventInput carries the client supplied scalar fields for create and update.
type EventInput struct {
	Title       string
	ScheduledAt time.Time
	Cost        string
	Location    string
	Address     string
	Description string
	Hostname    string
	TopicIDs    []string
}

// EventService defines the business logic behind the event API.
type EventService interface {
	ListEvents(ctx context.Context, query string, viewer Viewer) ([]*EventView, error)
	GetEvent(ctx context.Context, eventID string, viewer Viewer) (*EventView, error)
	CreateEvent(ctx context.Context, input EventInput, creator Identity) (*EventView, error)
	UpdateEvent(ctx context.Context, eventID string, input EventInput) error
	DeleteEvent(ctx context.Context, eventID string) error
	AddBookmark(ctx context.Context, eventID, userID string) error
	RemoveBookmark(ctx context.Context, eventID, userID string) error
	ListMyEvents(ctx context.Context, viewer Viewer) ([]*EventView, error)
	ListMyBookmarks(ctx context.Context, viewer Viewer) ([]*EventView, error)
	RegisterHost(ctx context.Context, eventID string, identity Identity, name string) (*Host, error)
	UnregisterHost(ctx context.Context, eventID, userID string) error
	SetEventTopics(ctx context.Context, eventID string, topicIDs []string) error
}
