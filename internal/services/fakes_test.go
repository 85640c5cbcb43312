package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"skillsharehub/internal/domain"
)

// memStore is an in-memory relational store shared by the fake repositories.
type memStore struct {
	events      map[string]*domain.Event
	hosts       []*domain.Host
	bookmarks   []*domain.Bookmark
	topics      map[string]*domain.Topic
	eventTopics map[string][]string
	nextID      int

	createErr error // if set, CreateWithHost returns this error
	listErr   error // if set, List returns this error
	existsErr error // if set, host/bookmark existence checks return this error
	lookups   int   // number of annotation lookups that reached the store
}

func newMemStore() *memStore {
	return &memStore{
		events:      make(map[string]*domain.Event),
		topics:      make(map[string]*domain.Topic),
		eventTopics: make(map[string][]string),
		nextID:      1,
	}
}

func (s *memStore) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, s.nextID)
	s.nextID++
	return id
}

func (s *memStore) sorted(keep func(e *domain.Event) bool) []*domain.Event {
	out := make([]*domain.Event, 0)
	for _, e := range s.events {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

func (s *memStore) isHost(eventID, userID string) bool {
	for _, h := range s.hosts {
		if h.EventID == eventID && h.UserID == userID {
			return true
		}
	}
	return false
}

func (s *memStore) isBookmarked(eventID, userID string) bool {
	for _, b := range s.bookmarks {
		if b.EventID == eventID && b.UserID == userID {
			return true
		}
	}
	return false
}

type fakeEventRepo struct{ s *memStore }

func (f *fakeEventRepo) CreateWithHost(ctx context.Context, e *domain.Event, host *domain.Host, topicIDs []string) error {
	if f.s.createErr != nil {
		return f.s.createErr
	}
	for _, id := range topicIDs {
		if _, ok := f.s.topics[id]; !ok {
			return fmt.Errorf("%w: unknown topic %s", domain.ErrInvalidInput, id)
		}
	}
	e.ID = f.s.id("ev")
	cp := *e
	f.s.events[e.ID] = &cp
	host.EventID = e.ID
	host.ID = f.s.id("host")
	h := *host
	f.s.hosts = append(f.s.hosts, &h)
	f.s.eventTopics[e.ID] = append([]string(nil), topicIDs...)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := f.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if f.s.listErr != nil {
		return nil, f.s.listErr
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	return f.s.sorted(func(e *domain.Event) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(e.Cost), q) ||
			strings.Contains(strings.ToLower(e.ScheduledAt.Format("2006-01-02 15:04:05")), q)
	}), nil
}

func (f *fakeEventRepo) ListByHost(ctx context.Context, userID string) ([]*domain.Event, error) {
	return f.s.sorted(func(e *domain.Event) bool { return f.s.isHost(e.ID, userID) }), nil
}

func (f *fakeEventRepo) ListBookmarkedBy(ctx context.Context, userID string) ([]*domain.Event, error) {
	return f.s.sorted(func(e *domain.Event) bool { return f.s.isBookmarked(e.ID, userID) }), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.s.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	f.s.events[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.s.events, id)
	delete(f.s.eventTopics, id)
	var hosts []*domain.Host
	for _, h := range f.s.hosts {
		if h.EventID != id {
			hosts = append(hosts, h)
		}
	}
	f.s.hosts = hosts
	var bookmarks []*domain.Bookmark
	for _, b := range f.s.bookmarks {
		if b.EventID != id {
			bookmarks = append(bookmarks, b)
		}
	}
	f.s.bookmarks = bookmarks
	return nil
}

type fakeHostRepo struct{ s *memStore }

func (f *fakeHostRepo) Add(ctx context.Context, host *domain.Host) error {
	if _, ok := f.s.events[host.EventID]; !ok {
		return domain.ErrNotFound
	}
	if f.s.isHost(host.EventID, host.UserID) {
		return domain.ErrAlreadyHost
	}
	host.ID = f.s.id("host")
	h := *host
	f.s.hosts = append(f.s.hosts, &h)
	return nil
}

func (f *fakeHostRepo) Remove(ctx context.Context, eventID, userID string) error {
	for i, h := range f.s.hosts {
		if h.EventID == eventID && h.UserID == userID {
			f.s.hosts = append(f.s.hosts[:i], f.s.hosts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeHostRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	f.s.lookups++
	if f.s.existsErr != nil {
		return false, f.s.existsErr
	}
	return f.s.isHost(eventID, userID), nil
}

func (f *fakeHostRepo) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Host, error) {
	out := make(map[string][]*domain.Host)
	for _, id := range eventIDs {
		for _, h := range f.s.hosts {
			if h.EventID == id {
				out[id] = append(out[id], h)
			}
		}
	}
	return out, nil
}

func (f *fakeHostRepo) EventIDsHostedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	f.s.lookups++
	if f.s.existsErr != nil {
		return nil, f.s.existsErr
	}
	out := make(map[string]bool)
	for _, id := range eventIDs {
		if f.s.isHost(id, userID) {
			out[id] = true
		}
	}
	return out, nil
}

type fakeBookmarkRepo struct{ s *memStore }

func (f *fakeBookmarkRepo) Add(ctx context.Context, b *domain.Bookmark) error {
	if _, ok := f.s.events[b.EventID]; !ok {
		return domain.ErrNotFound
	}
	if f.s.isBookmarked(b.EventID, b.UserID) {
		return nil
	}
	b.ID = f.s.id("bm")
	cp := *b
	f.s.bookmarks = append(f.s.bookmarks, &cp)
	return nil
}

func (f *fakeBookmarkRepo) Remove(ctx context.Context, eventID, userID string) error {
	var kept []*domain.Bookmark
	for _, b := range f.s.bookmarks {
		if b.EventID != eventID || b.UserID != userID {
			kept = append(kept, b)
		}
	}
	f.s.bookmarks = kept
	return nil
}

func (f *fakeBookmarkRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	f.s.lookups++
	if f.s.existsErr != nil {
		return false, f.s.existsErr
	}
	return f.s.isBookmarked(eventID, userID), nil
}

func (f *fakeBookmarkRepo) CountByEventIDs(ctx context.Context, eventIDs []string) (map[string]int, error) {
	out := make(map[string]int)
	for _, b := range f.s.bookmarks {
		out[b.EventID]++
	}
	return out, nil
}

func (f *fakeBookmarkRepo) EventIDsBookmarkedBy(ctx context.Context, userID string, eventIDs []string) (map[string]bool, error) {
	f.s.lookups++
	if f.s.existsErr != nil {
		return nil, f.s.existsErr
	}
	out := make(map[string]bool)
	for _, id := range eventIDs {
		if f.s.isBookmarked(id, userID) {
			out[id] = true
		}
	}
	return out, nil
}

type fakeTopicRepo struct {
	s         *memStore
	createErr error
}

func (f *fakeTopicRepo) Create(ctx context.Context, topic *domain.Topic) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, t := range f.s.topics {
		if t.Label == topic.Label {
			return domain.ErrTopicExists
		}
	}
	topic.ID = f.s.id("topic")
	cp := *topic
	f.s.topics[topic.ID] = &cp
	return nil
}

func (f *fakeTopicRepo) List(ctx context.Context) ([]*domain.Topic, error) {
	out := make([]*domain.Topic, 0, len(f.s.topics))
	for _, t := range f.s.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (f *fakeTopicRepo) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Topic, error) {
	out := make(map[string][]*domain.Topic)
	for _, id := range eventIDs {
		for _, topicID := range f.s.eventTopics[id] {
			out[id] = append(out[id], f.s.topics[topicID])
		}
	}
	return out, nil
}

func (f *fakeTopicRepo) SetEventTopics(ctx context.Context, eventID string, topicIDs []string) error {
	if _, ok := f.s.events[eventID]; !ok {
		return domain.ErrNotFound
	}
	for _, id := range topicIDs {
		if _, ok := f.s.topics[id]; !ok {
			return fmt.Errorf("%w: unknown topic %s", domain.ErrInvalidInput, id)
		}
	}
	f.s.eventTopics[eventID] = append([]string(nil), topicIDs...)
	return nil
}
