package route

// Reason identifies why a navigation operation declined to mutate state.
type Reason int

const (
	// ReasonNone is the zero value; no rejection occurred.
	ReasonNone Reason = iota
	// ReasonLocked means the target (e.g. a tab) is locked.
	ReasonLocked
	// ReasonMaxDepth means the stack depth limit would be exceeded.
	ReasonMaxDepth
	// ReasonBlocked means a configuration rule blocked the operation,
	// such as a duplicate push when duplicates are disabled.
	ReasonBlocked
	// ReasonGuardFailed means a registered guard vetoed the operation.
	ReasonGuardFailed
	// ReasonValidationFailed means a user-supplied validator rejected or
	// errored; the message carries the detail.
	ReasonValidationFailed
	// ReasonTransformerCancelled means a transformer cancelled the route.
	ReasonTransformerCancelled
)

// String returns the snake_case tag used in logs and analytics props.
func (r Reason) String() string {
	switch r {
	case ReasonLocked:
		return "locked"
	case ReasonMaxDepth:
		return "max_depth_reached"
	case ReasonBlocked:
		return "blocked"
	case ReasonGuardFailed:
		return "guard_failed"
	case ReasonValidationFailed:
		return "validation_failed"
	case ReasonTransformerCancelled:
		return "transformer_cancelled"
	default:
		return "none"
	}
}

// Rejection describes a declined operation. It is reported through
// callbacks and return values, never as an error.
type Rejection struct {
	Message string
	Reason  Reason
}

// Reject builds a rejection without a message.
func Reject(reason Reason) Rejection {
	return Rejection{Reason: reason}
}

// RejectWithMessage builds a rejection carrying detail, typically for
// validation failures.
func RejectWithMessage(reason Reason, msg string) Rejection {
	return Rejection{Reason: reason, Message: msg}
}
