package stack

import (
	"sync"
	"time"
)

// Source tags a history entry with the origin of the mutation.
type Source string

const (
	SourcePush      Source = "push"
	SourcePop       Source = "pop"
	SourcePopTo     Source = "pop_to"
	SourcePopToRoot Source = "pop_to_root"
	SourceReplace   Source = "replace"
	SourceGesture   Source = "back_gesture"
	SourceDeepLink  Source = "deep_link"
	SourceTab       Source = "tab"
	SourceRestore   Source = "restore"
)

// Entry is a single history record. Duration is the time until the next
// entry was recorded; it is set retroactively and stays zero for the most
// recent entry.
type Entry struct {
	Time     time.Time
	Path     string
	Source   Source
	Duration time.Duration
}

// History is a bounded log of stack mutations with a cursor for
// back/forward traversal. On overflow the oldest entries are truncated;
// the log is an observability aid, never a reason to reject navigation.
type History struct {
	entries []Entry
	cursor  int
	limit   int
	now     func() time.Time
	mu      sync.Mutex
}

const defaultHistoryLimit = 100

func newHistory(limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{limit: limit, cursor: -1, now: time.Now}
}

// record appends an entry, back-fills the previous entry's duration, and
// truncates from the front on overflow. Recording resets the cursor to
// the newest entry.
func (h *History) record(path string, src Source) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if n := len(h.entries); n > 0 {
		h.entries[n-1].Duration = now.Sub(h.entries[n-1].Time)
	}

	h.entries = append(h.entries, Entry{Path: path, Source: src, Time: now})
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of the retained entries, oldest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Back moves the cursor one entry towards the oldest and returns it.
// Returns ok=false at the oldest entry or on an empty log.
func (h *History) Back() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor <= 0 {
		return Entry{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry towards the newest and returns it.
// Returns ok=false when already at the newest entry.
func (h *History) Forward() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the entry under the cursor.
func (h *History) Current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[h.cursor], true
}

// Clear drops all entries and resets the cursor.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.cursor = -1
}
