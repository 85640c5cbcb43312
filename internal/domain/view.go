package domain

import (
	"context"
	"time"
)

// Annotation holds the viewer dependent flags computed at read time. It is never persisted.
type Annotation struct {
	Bookmarked bool
	Organizer  bool
}

// AnonymousAnnotations selects how annotation flags are rendered for viewers without an identity.
type AnonymousAnnotations string

const (
	// AnonymousAnnotationsFalse renders bookmarked and organizer as false.
	AnonymousAnnotationsFalse AnonymousAnnotations = "false"
	// AnonymousAnnotationsOmit leaves both fields out of the response.
	AnonymousAnnotationsOmit AnonymousAnnotations = "omit"
)

// Viewer is the requesting user. UserID is empty for anonymous requests.
type Viewer struct {
	UserID string
}

// Anonymous reports whether the viewer has no identity.
func (v Viewer) Anonymous() bool { return v.UserID == "" }

// EventHostView is a host entry in an EventView.
// swagger:model EventHostView
type EventHostView struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// EventTopicView is a topic entry in an EventView.
// swagger:model EventTopicView
type EventTopicView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// EventView is the read model returned by the event API: the persisted event,
// its related hosts and topics, and the flags computed for the requesting viewer.
// swagger:model EventView
type EventView struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	ScheduledAt time.Time        `json:"datetime"`
	Cost        string           `json:"cost"`
	Location    string           `json:"location"`
	Address     string           `json:"address"`
	Description string           `json:"description"`
	Hostname    string           `json:"hostname"`
	Hosts       []EventHostView  `json:"hosts"`
	Topics      []EventTopicView `json:"topics"`
	Bookmarks   int              `json:"bookmarks"`
	Bookmarked  *bool            `json:"bookmarked,omitempty"`
	Organizer   *bool            `json:"organizer,omitempty"`
}

// Annotator computes per-viewer annotations.
type Annotator interface {
	Annotate(ctx context.Context, eventID string, viewer Viewer) (Annotation, error)
	// AnnotateMany resolves annotations for a page of events with one lookup per relation.
	AnnotateMany(ctx context.Context, eventIDs []string, viewer Viewer) (map[string]Annotation, error)
}

// Assembler composes events into EventViews for a viewer.
type Assembler interface {
	Assemble(ctx context.Context, events []*Event, viewer Viewer) ([]*EventView, error)
}
