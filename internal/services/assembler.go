package services

import (
	"context"
	"fmt"

	"skillsharehub/internal/domain"
)

type assembler struct {
	hostRepo     domain.HostRepository
	topicRepo    domain.TopicRepository
	bookmarkRepo domain.BookmarkRepository
	annotator    domain.Annotator
	anonymous    domain.AnonymousAnnotations
}

// NewAssembler returns an Assembler that batches related lookups per page of events.
// anonymous controls whether annotation flags are rendered for viewers without an identity.
func NewAssembler(
	hostRepo domain.HostRepository,
	topicRepo domain.TopicRepository,
	bookmarkRepo domain.BookmarkRepository,
	annotator domain.Annotator,
	anonymous domain.AnonymousAnnotations,
) domain.Assembler {
	return &assembler{
		hostRepo:     hostRepo,
		topicRepo:    topicRepo,
		bookmarkRepo: bookmarkRepo,
		annotator:    annotator,
		anonymous:    anonymous,
	}
}

func (a *assembler) Assemble(ctx context.Context, events []*domain.Event, viewer domain.Viewer) ([]*domain.EventView, error) {
	views := make([]*domain.EventView, 0, len(events))
	if len(events) == 0 {
		return views, nil
	}
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	hosts, err := a.hostRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	topics, err := a.topicRepo.ListByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	counts, err := a.bookmarkRepo.CountByEventIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}
	annotations, err := a.annotator.AnnotateMany(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}

	omitFlags := viewer.Anonymous() && a.anonymous == domain.AnonymousAnnotationsOmit
	for _, e := range events {
		v := &domain.EventView{
			ID:          e.ID,
			Title:       e.Title,
			ScheduledAt: e.ScheduledAt,
			Cost:        e.Cost,
			Location:    e.Location,
			Address:     e.Address,
			Description: e.Description,
			Hostname:    e.Hostname,
			Hosts:       make([]domain.EventHostView, 0, len(hosts[e.ID])),
			Topics:      make([]domain.EventTopicView, 0, len(topics[e.ID])),
			Bookmarks:   counts[e.ID],
		}
		for _, h := range hosts[e.ID] {
			v.Hosts = append(v.Hosts, domain.EventHostView{UserID: h.UserID, Username: h.Name})
		}
		for _, t := range topics[e.ID] {
			v.Topics = append(v.Topics, domain.EventTopicView{ID: t.ID, Label: t.Label})
		}
		if !omitFlags {
			ann := annotations[e.ID]
			v.Bookmarked = boolPtr(ann.Bookmarked)
			v.Organizer = boolPtr(ann.Organizer)
		}
		views = append(views, v)
	}
	return views, nil
}

func boolPtr(b bool) *bool {
	return &b
}
