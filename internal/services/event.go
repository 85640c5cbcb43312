package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillsharehub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	hostRepo       domain.HostRepository
	bookmarkRepo   domain.BookmarkRepository
	topicRepo      domain.TopicRepository
	assembler      domain.Assembler
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	hostRepo domain.HostRepository,
	bookmarkRepo domain.BookmarkRepository,
	topicRepo domain.TopicRepository,
	assembler domain.Assembler,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		hostRepo:       hostRepo,
		bookmarkRepo:   bookmarkRepo,
		topicRepo:      topicRepo,
		assembler:      assembler,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) ListEvents(ctx context.Context, query string, viewer domain.Viewer) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, domain.EventFilter{Query: query})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return s.assembler.Assemble(ctx, events, viewer)
}

func (s *eventService) GetEvent(ctx context.Context, eventID string, viewer domain.Viewer) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getView(ctx, eventID, viewer)
}

func (s *eventService) getView(ctx context.Context, eventID string, viewer domain.Viewer) (*domain.EventView, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	views, err := s.assembler.Assemble(ctx, []*domain.Event{event}, viewer)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.EventInput, creator domain.Identity) (*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if creator.UserID == "" {
		return nil, fmt.Errorf("%w: event creator is required", domain.ErrInvalidInput)
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	now := s.now()
	event := domain.NewEvent(input.Title, input.ScheduledAt, input.Cost, input.Location, input.Address, input.Description, input.Hostname, now, now)
	host := domain.NewHost("", creator.UserID, hostDisplayName("", creator, input.Hostname))
	if err := s.eventRepo.CreateWithHost(ctx, event, host, dedupe(input.TopicIDs)); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return s.getView(ctx, event.ID, creator.Viewer())
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, input domain.EventInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validateEventInput(input); err != nil {
		return err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	event.Title = input.Title
	event.ScheduledAt = input.ScheduledAt
	event.Cost = input.Cost
	event.Location = input.Location
	event.Address = input.Address
	event.Description = input.Description
	event.Hostname = input.Hostname
	event.UpdatedAt = s.now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) AddBookmark(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.bookmarkRepo.Add(ctx, domain.NewBookmark(eventID, userID, s.now())); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (s *eventService) RemoveBookmark(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.ensureEvent(ctx, eventID); err != nil {
		return err
	}
	if err := s.bookmarkRepo.Remove(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

func (s *eventService) ListMyEvents(ctx context.Context, viewer domain.Viewer) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByHost(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list hosted events: %w", err)
	}
	return s.assembler.Assemble(ctx, events, viewer)
}

func (s *eventService) ListMyBookmarks(ctx context.Context, viewer domain.Viewer) ([]*domain.EventView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListBookmarkedBy(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarked events: %w", err)
	}
	return s.assembler.Assemble(ctx, events, viewer)
}

func (s *eventService) RegisterHost(ctx context.Context, eventID string, identity domain.Identity, name string) (*domain.Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	host := domain.NewHost(event.ID, identity.UserID, hostDisplayName(name, identity, event.Hostname))
	if err := s.hostRepo.Add(ctx, host); err != nil {
		if errors.Is(err, domain.ErrAlreadyHost) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add host: %w", err)
	}
	return host, nil
}

func (s *eventService) UnregisterHost(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.hostRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove host: %w", err)
	}
	return nil
}

func (s *eventService) SetEventTopics(ctx context.Context, eventID string, topicIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.topicRepo.SetEventTopics(ctx, eventID, dedupe(topicIDs)); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("set event topics: %w", err)
	}
	return nil
}

func (s *eventService) ensureEvent(ctx context.Context, eventID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	return nil
}

// validateEventInput enforces the required scalar fields shared by create and update.
func validateEventInput(in domain.EventInput) error {
	var problems []string
	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"cost", in.Cost},
		{"location", in.Location},
		{"address", in.Address},
		{"description", in.Description},
		{"hostname", in.Hostname},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if in.ScheduledAt.IsZero() {
		problems = append(problems, "datetime is required")
	}
	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	return nil
}

// hostDisplayName picks the first non-empty of the explicit name, the token username,
// the fallback label and finally the user id.
func hostDisplayName(name string, identity domain.Identity, fallback string) string {
	for _, candidate := range []string{name, identity.Username, fallback, identity.UserID} {
		if c := strings.TrimSpace(candidate); c != "" {
			return c
		}
	}
	return ""
}

// dedupe drops repeated and blank ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
