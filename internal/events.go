package internal

import "time"

// EventKind names a navigation event.
type EventKind string

const (
	EventPush          EventKind = "push"
	EventPop           EventKind = "pop"
	EventPresent       EventKind = "present"
	EventDismiss       EventKind = "dismiss"
	EventScreenView    EventKind = "screen_view"
	EventFlowStep      EventKind = "flow_step"
	EventFlowComplete  EventKind = "flow_complete"
	EventFlowAbandoned EventKind = "flow_abandoned"
	EventTabSelected   EventKind = "tab_selected"
)

// Event is a discrete description of one navigation mutation. Payloads
// are plain data: route path, tab id, wall-clock time, and free-form
// string properties.
type Event struct {
	Props map[string]string
	Kind  EventKind
	Path  string
	Tab   string
	Time  time.Time
}

// Sink receives navigation events from the Navigator.
type Sink interface {
	HandleNavigationEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// HandleNavigationEvent calls the function itself.
func (f SinkFunc) HandleNavigationEvent(ev Event) { f(ev) }
