package domain

import (
	"context"
	"errors"
)

// ErrTopicExists is returned when creating a topic whose label is already taken.
var ErrTopicExists = errors.New("topic label already exists")

// Topic represents a label that can be attached to events.
// swagger:model Topic
type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TopicRepository defines storage for topics and event–topic links.
type TopicRepository interface {
	Create(ctx context.Context, topic *Topic) error
	List(ctx context.Context) ([]*Topic, error)
	// ListByEventIDs returns the topics linked to each event, keyed by event ID.
	ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*Topic, error)
	// SetEventTopics replaces all topic links of the event. Unknown topic IDs yield ErrInvalidInput.
	SetEventTopics(ctx context.Context, eventID string, topicIDs []string) error
}

// TopicService defines topic management operations.
type TopicService interface {
	ListTopics(ctx context.Context) ([]*Topic, error)
	CreateTopic(ctx context.Context, label string) (*Topic, error)
}
