package domain

import (
	"context"
	"errors"
)

// ErrAlreadyHost is returned when registering a user who already hosts the event.
var ErrAlreadyHost = errors.New("already a host of this event")

// Host links a user to an event they organize, with a denormalized display name.
// swagger:model Host
type Host struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
}

// NewHost returns a Host for the given event and user. ID is set by the repository on create.
func NewHost(eventID, userID, name string) *Host {
	return &Host{EventID: eventID, UserID: userID, Name: name}
}

// HostRepository defines the interface for host storage.
type HostRepository interface {
	Add(ctx context.Context, host *Host) error
	Remove(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	// ListByEventIDs returns the hosts of each event in insertion order, keyed by event ID.
	ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*Host, error)
	// EventIDsHostedBy returns the subset of eventIDs the user hosts.
	EventIDsHostedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error)
}
