package stack_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

func TestHistoryRecording(t *testing.T) {
	t.Parallel()

	s := stack.New()
	s.Push(route.New("/a"))
	time.Sleep(5 * time.Millisecond)
	s.Push(route.New("/b"))
	s.Pop()

	entries := s.History().Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "/a", entries[0].Path)
	assert.Equal(t, stack.SourcePush, entries[0].Source)
	assert.Equal(t, stack.SourcePop, entries[2].Source)

	// Durations are back-filled when the next entry lands; the newest
	// entry has none yet.
	assert.Greater(t, entries[0].Duration, time.Duration(0))
	assert.Equal(t, time.Duration(0), entries[2].Duration)
}

func TestHistoryTruncatesOldest(t *testing.T) {
	t.Parallel()

	s := stack.New(stack.WithHistoryLimit(3))
	for _, p := range []string{"/a", "/b", "/c", "/d", "/e"} {
		s.Push(route.New(p))
	}

	entries := s.History().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "/c", entries[0].Path)
	assert.Equal(t, "/e", entries[2].Path)
}

func TestHistoryCursor(t *testing.T) {
	t.Parallel()

	s := stack.New()
	for _, p := range []string{"/a", "/b", "/c"} {
		s.Push(route.New(p))
	}
	h := s.History()

	cur, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "/c", cur.Path)

	back, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "/b", back.Path)

	back, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, "/a", back.Path)

	_, ok = h.Back()
	assert.False(t, ok, "cursor stops at the oldest entry")

	fwd, ok := h.Forward()
	require.True(t, ok)
	assert.Equal(t, "/b", fwd.Path)

	// A new mutation snaps the cursor to the newest entry.
	s.Push(route.New("/d"))
	cur, ok = h.Current()
	require.True(t, ok)
	assert.Equal(t, "/d", cur.Path)
	_, ok = h.Forward()
	assert.False(t, ok)
}

func TestHistoryClear(t *testing.T) {
	t.Parallel()

	s := stack.New()
	s.Push(route.New("/a"))
	h := s.History()
	h.Clear()

	assert.Equal(t, 0, h.Len())
	_, ok := h.Current()
	assert.False(t, ok)
	_, ok = h.Back()
	assert.False(t, ok)
	_, ok = h.Forward()
	assert.False(t, ok)
}

func TestPushFromTagsSource(t *testing.T) {
	t.Parallel()

	s := stack.New()
	s.PushFrom(route.New("/deep"), stack.SourceDeepLink)
	s.Push(route.New("/x"))
	s.PopFrom(stack.SourceGesture)

	entries := s.History().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, stack.SourceDeepLink, entries[0].Source)
	assert.Equal(t, stack.SourceGesture, entries[2].Source)
}
