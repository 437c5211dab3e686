package recovery

import (
	"time"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Kind classifies the outcome of a recovery attempt.
type Kind int

const (
	// KindSuccess means navigation state was restored.
	KindSuccess Kind = iota
	// KindNoState means no snapshot was found (or the blob was corrupt).
	KindNoState
	// KindStale means the snapshot exceeded the configured max age.
	KindStale
	// KindInvalid means the snapshot came from an incompatible build or
	// referenced unknown routes under strict validation.
	KindInvalid
	// KindCancelled means recovery awaits explicit confirmation.
	KindCancelled
	// KindDisabled means recovery is switched off by configuration.
	KindDisabled
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNoState:
		return "no_state"
	case KindStale:
		return "stale"
	case KindInvalid:
		return "invalid"
	case KindCancelled:
		return "cancelled"
	case KindDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Result describes the outcome of Manager.Attempt or Manager.Confirm.
type Result struct {
	// Routes holds the restored stack, set only on success.
	Routes []route.Route
	// Presented holds the restored modal, if one was presented.
	Presented *route.Route
	// PresentedStyle is the restored modal's presentation style.
	PresentedStyle route.Style
	// ActiveTab is the restored tab identifier, if any.
	ActiveTab string
	// CustomState carries through the snapshot's free-form state.
	CustomState map[string]string
	// Reason explains stale/invalid outcomes.
	Reason string
	// Age is the snapshot's age, set for stale outcomes.
	Age time.Duration
	// Kind is the outcome classification.
	Kind Kind
}

// Restored reports whether the attempt produced usable navigation state.
func (r Result) Restored() bool {
	return r.Kind == KindSuccess
}
