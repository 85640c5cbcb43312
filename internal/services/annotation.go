package services

import (
	"context"
	"fmt"

	"skillsharehub/internal/domain"
)

type annotator struct {
	hostRepo     domain.HostRepository
	bookmarkRepo domain.BookmarkRepository
}

// NewAnnotator returns an Annotator backed by the host and bookmark stores.
func NewAnnotator(hostRepo domain.HostRepository, bookmarkRepo domain.BookmarkRepository) domain.Annotator {
	return &annotator{
		hostRepo:     hostRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

func (a *annotator) Annotate(ctx context.Context, eventID string, viewer domain.Viewer) (domain.Annotation, error) {
	if viewer.Anonymous() {
		return domain.Annotation{}, nil
	}
	bookmarked, err := a.bookmarkRepo.Exists(ctx, eventID, viewer.UserID)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("check bookmark: %w", err)
	}
	organizer, err := a.hostRepo.Exists(ctx, eventID, viewer.UserID)
	if err != nil {
		return domain.Annotation{}, fmt.Errorf("check host: %w", err)
	}
	return domain.Annotation{Bookmarked: bookmarked, Organizer: organizer}, nil
}

func (a *annotator) AnnotateMany(ctx context.Context, eventIDs []string, viewer domain.Viewer) (map[string]domain.Annotation, error) {
	out := make(map[string]domain.Annotation, len(eventIDs))
	if viewer.Anonymous() || len(eventIDs) == 0 {
		for _, id := range eventIDs {
			out[id] = domain.Annotation{}
		}
		return out, nil
	}
	bookmarked, err := a.bookmarkRepo.EventIDsBookmarkedBy(ctx, viewer.UserID, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("list bookmarked events: %w", err)
	}
	hosted, err := a.hostRepo.EventIDsHostedBy(ctx, viewer.UserID, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("list hosted events: %w", err)
	}
	for _, id := range eventIDs {
		out[id] = domain.Annotation{Bookmarked: bookmarked[id], Organizer: hosted[id]}
	}
	return out, nil
}
