package analytics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a recorded navigation event. Timestamps are UTC; props are
// free-form string pairs carried through untouched.
type Event struct {
	Props     map[string]string `json:"props,omitempty"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Path      string            `json:"path,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Recorder accumulates navigation events in memory: per-name counters
// plus a capped event log (oldest entries are dropped on overflow).
type Recorder struct {
	sessionID string
	opts      *options

	mu       sync.Mutex
	events   []Event
	counters map[string]int
}

// NewRecorder creates a recorder with a fresh session id.
func NewRecorder(opts ...Option) *Recorder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Recorder{
		sessionID: uuid.NewString(),
		opts:      o,
		counters:  make(map[string]int),
	}
}

// SessionID returns the id assigned to this recorder instance.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Record logs a named event. The props map is copied.
func (r *Recorder) Record(name, path string, props map[string]string) {
	ev := Event{
		ID:        newEventID(),
		Name:      name,
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
	if len(props) > 0 {
		ev.Props = make(map[string]string, len(props))
		maps.Copy(ev.Props, props)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.counters[name]++
	r.events = append(r.events, ev)
	if len(r.events) > r.opts.logLimit {
		r.events = r.events[len(r.events)-r.opts.logLimit:]
	}

	r.opts.log.Debug("event recorded",
		slog.String("name", name),
		slog.String("path", path),
	)
}

// Count returns how many events with the given name were recorded,
// including any that have since been dropped from the capped log.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counters[name]
}

// Events returns a copy of the retained event log in recording order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears the event log and counters. The session id is kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
	r.counters = make(map[string]int)
}

type export struct {
	Counters   map[string]int `json:"counters"`
	SessionID  string         `json:"session_id"`
	ExportedAt time.Time      `json:"exported_at"`
	Events     []Event        `json:"events"`
}

// Export serializes the recorder state as indented JSON with sorted
// map keys and UTC timestamps, suitable for human audit.
func (r *Recorder) Export() ([]byte, error) {
	r.mu.Lock()
	doc := export{
		SessionID:  r.sessionID,
		ExportedAt: time.Now().UTC(),
		Counters:   make(map[string]int, len(r.counters)),
		Events:     make([]Event, len(r.events)),
	}
	maps.Copy(doc.Counters, r.counters)
	copy(doc.Events, r.events)
	r.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("analytics: export: %w", err)
	}
	return data, nil
}
