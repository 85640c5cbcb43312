package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillsharehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingHostRepo fails every batched host lookup.
type failingHostRepo struct{ fakeHostRepo }

func (f *failingHostRepo) ListByEventIDs(context.Context, []string) (map[string][]*domain.Host, error) {
	return nil, errors.New("hosts unavailable")
}

func newTestAssembler(s *memStore, mode domain.AnonymousAnnotations) domain.Assembler {
	hostRepo := &fakeHostRepo{s: s}
	bookmarkRepo := &fakeBookmarkRepo{s: s}
	return NewAssembler(hostRepo, &fakeTopicRepo{s: s}, bookmarkRepo, NewAnnotator(hostRepo, bookmarkRepo), mode)
}

func TestAssembler_Assemble(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	s := newMemStore()
	ev1 := &domain.Event{ID: "ev-1", Title: "Rust", ScheduledAt: at, Cost: "Free", Hostname: "Jane"}
	ev2 := &domain.Event{ID: "ev-2", Title: "Go", ScheduledAt: at.Add(time.Hour), Cost: "$5"}
	s.events[ev1.ID], s.events[ev2.ID] = ev1, ev2
	s.hosts = []*domain.Host{
		{ID: "1", EventID: "ev-1", UserID: "user-1", Name: "jane"},
		{ID: "2", EventID: "ev-1", UserID: "user-2", Name: "sam"},
	}
	s.bookmarks = []*domain.Bookmark{
		{EventID: "ev-1", UserID: "user-2"},
		{EventID: "ev-1", UserID: "user-3"},
		{EventID: "ev-2", UserID: "user-1"},
	}
	s.topics["t-1"] = &domain.Topic{ID: "t-1", Label: "systems"}
	s.eventTopics["ev-1"] = []string{"t-1"}
	before := *ev1

	views, err := newTestAssembler(s, domain.AnonymousAnnotationsFalse).Assemble(ctx, []*domain.Event{ev1, ev2}, domain.Viewer{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, views, 2)

	v1, v2 := views[0], views[1]
	assert.Equal(t, "ev-1", v1.ID)
	assert.Equal(t, "Rust", v1.Title)
	assert.True(t, at.Equal(v1.ScheduledAt))
	assert.Equal(t, []domain.EventHostView{{UserID: "user-1", Username: "jane"}, {UserID: "user-2", Username: "sam"}}, v1.Hosts)
	assert.Equal(t, []domain.EventTopicView{{ID: "t-1", Label: "systems"}}, v1.Topics)
	assert.Equal(t, 2, v1.Bookmarks)
	require.NotNil(t, v1.Organizer)
	require.NotNil(t, v1.Bookmarked)
	assert.True(t, *v1.Organizer)
	assert.False(t, *v1.Bookmarked)

	assert.Equal(t, "ev-2", v2.ID)
	assert.Empty(t, v2.Hosts)
	assert.NotNil(t, v2.Hosts, "empty relations render as [] not null")
	assert.NotNil(t, v2.Topics)
	assert.Equal(t, 1, v2.Bookmarks)
	assert.False(t, *v2.Organizer)
	assert.True(t, *v2.Bookmarked)

	assert.Equal(t, before, *ev1, "assembling must not mutate the event")
}

func TestAssembler_AnonymousModes(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()
	ev := &domain.Event{ID: "ev-1"}
	s.events[ev.ID] = ev

	views, err := newTestAssembler(s, domain.AnonymousAnnotationsFalse).Assemble(ctx, []*domain.Event{ev}, domain.Viewer{})
	require.NoError(t, err)
	require.NotNil(t, views[0].Bookmarked)
	assert.False(t, *views[0].Bookmarked)
	assert.False(t, *views[0].Organizer)

	views, err = newTestAssembler(s, domain.AnonymousAnnotationsOmit).Assemble(ctx, []*domain.Event{ev}, domain.Viewer{})
	require.NoError(t, err)
	assert.Nil(t, views[0].Bookmarked)
	assert.Nil(t, views[0].Organizer)

	views, err = newTestAssembler(s, domain.AnonymousAnnotationsOmit).Assemble(ctx, []*domain.Event{ev}, domain.Viewer{UserID: "user-9"})
	require.NoError(t, err)
	require.NotNil(t, views[0].Bookmarked, "omit only applies to anonymous viewers")
}

func TestAssembler_EmptyAndErrors(t *testing.T) {
	ctx := context.Background()
	s := newMemStore()

	views, err := newTestAssembler(s, domain.AnonymousAnnotationsFalse).Assemble(ctx, nil, domain.Viewer{UserID: "user-1"})
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	assert.Zero(t, s.lookups)

	ev := &domain.Event{ID: "ev-1"}
	s.events[ev.ID] = ev
	bookmarkRepo := &fakeBookmarkRepo{s: s}
	hostRepo := &failingHostRepo{fakeHostRepo{s: s}}
	asm := NewAssembler(hostRepo, &fakeTopicRepo{s: s}, bookmarkRepo, NewAnnotator(hostRepo, bookmarkRepo), domain.AnonymousAnnotationsFalse)
	_, err = asm.Assemble(ctx, []*domain.Event{ev}, domain.Viewer{UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hosts unavailable")
}
