package flow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Validator gates forward movement out of a step. It may suspend on the
// context. Returning false rejects the transition; a returned error is
// caught, reported through the validation-failure callback, and likewise
// rejects the transition.
type Validator func(ctx context.Context) (bool, error)

// Observer is notified of step changes and terminal transitions.
type Observer func(event string, step string)

// Observer event names.
const (
	EventStep      = "flow_step"
	EventComplete  = "flow_complete"
	EventAbandoned = "flow_abandoned"
)

// Flow is a finite ordered sequence of named steps.
type Flow struct {
	data       map[string]any
	validators map[string]Validator
	logger     *slog.Logger
	opts       *options
	steps      []string
	history    []string
	index      int
	completed  bool
	cancelled  bool
	mu         sync.Mutex
}

// New creates a flow positioned at the first step.
// Returns ErrNoSteps when the step list is empty: that is a programmer
// error, not a runtime condition.
func New(steps []string, opts ...Option) (*Flow, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	f := &Flow{
		steps:      append([]string(nil), steps...),
		history:    []string{steps[0]},
		data:       make(map[string]any),
		validators: o.validators,
		opts:       o,
		logger:     o.logger,
	}
	return f, nil
}

// Next advances to the following step after the current step's validator
// passes. Returns false without mutation when already at the last step,
// the flow is terminal, or the validator rejects or errors.
func (f *Flow) Next(ctx context.Context) bool {
	f.mu.Lock()
	if f.isTerminal() || f.index >= len(f.steps)-1 {
		f.mu.Unlock()
		return false
	}
	current := f.steps[f.index]
	target := f.index + 1
	f.mu.Unlock()

	if !f.validate(ctx, current) {
		return false
	}

	return f.commit(target)
}

// Previous moves one step back. Returns false when back-navigation is
// disabled, the flow is terminal, or already at the first step.
func (f *Flow) Previous(ctx context.Context) bool {
	f.mu.Lock()
	if f.isTerminal() || !f.opts.allowBack || f.index == 0 {
		f.mu.Unlock()
		return false
	}
	target := f.index - 1
	f.mu.Unlock()

	_ = ctx // back transitions are not validator-gated
	return f.commit(target)
}

// Jump moves directly to the step at the given index. Jumping forward is
// gated by the current step's validator; when skipping is disabled a
// target more than one step ahead is rejected. Returns false on any
// rejection, out-of-range index, or terminal flow.
func (f *Flow) Jump(ctx context.Context, index int) bool {
	f.mu.Lock()
	if f.isTerminal() || index < 0 || index >= len(f.steps) || index == f.index {
		f.mu.Unlock()
		return false
	}
	if index > f.index+1 && !f.opts.allowSkipping {
		f.mu.Unlock()
		return false
	}
	if index < f.index && !f.opts.allowBack {
		f.mu.Unlock()
		return false
	}
	forward := index > f.index
	current := f.steps[f.index]
	f.mu.Unlock()

	if forward && !f.validate(ctx, current) {
		return false
	}

	return f.commit(index)
}

// Restart clears history and per-step data, resets terminal flags, and
// returns to the first step unconditionally, bypassing validators.
func (f *Flow) Restart() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.index = 0
	f.history = []string{f.steps[0]}
	f.data = make(map[string]any)
	f.completed = false
	f.cancelled = false
	f.notify(EventStep, f.steps[0])
}

// Complete marks the flow finished. Idempotent; a no-op (returning
// false) when the flow is already completed or cancelled.
func (f *Flow) Complete() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isTerminal() {
		return false
	}
	f.completed = true
	f.notify(EventComplete, f.steps[f.index])
	return true
}

// Cancel marks the flow abandoned. Idempotent; a no-op (returning
// false) when the flow is already completed or cancelled.
func (f *Flow) Cancel() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isTerminal() {
		return false
	}
	f.cancelled = true
	f.notify(EventAbandoned, f.steps[f.index])
	return true
}

// IsCompleted reports whether Complete won the terminal transition.
func (f *Flow) IsCompleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// IsCancelled reports whether Cancel won the terminal transition.
func (f *Flow) IsCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}

// Current returns the current step name.
func (f *Flow) Current() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps[f.index]
}

// Index returns the current step index.
func (f *Flow) Index() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}

// Steps returns the fixed step list.
func (f *Flow) Steps() []string {
	return append([]string(nil), f.steps...)
}

// History returns every step visited, in order, including repeats.
func (f *Flow) History() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.history...)
}

// SetData attaches an opaque value to a step.
func (f *Flow) SetData(step string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[step] = value
}

// Data returns the value attached to a step.
func (f *Flow) Data(step string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[step]
	return v, ok
}

// Progress reports completion in [0, 1]: index/(steps-1), clamped to 1
// for single-step flows.
func (f *Flow) Progress() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.steps) <= 1 {
		return 1.0
	}
	return float64(f.index) / float64(len(f.steps)-1)
}

// validate runs the step's validator to completion. Rejections and
// errors are reported, never propagated.
func (f *Flow) validate(ctx context.Context, step string) bool {
	v, ok := f.validators[step]
	if v == nil || !ok {
		return true
	}

	ok, err := v(ctx)
	if err != nil {
		f.logger.Debug("flow validator error",
			slog.String("step", step),
			slog.String("error", err.Error()),
		)
		f.reportValidationFailure(step, err)
		return false
	}
	if !ok {
		f.reportValidationFailure(step, nil)
		return false
	}
	return true
}

// commit moves the index after validation has already passed. A
// concurrent terminal transition between validate and commit still
// aborts the move.
func (f *Flow) commit(index int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isTerminal() || index < 0 || index >= len(f.steps) {
		return false
	}

	f.index = index
	step := f.steps[index]
	f.history = append(f.history, step)
	f.notify(EventStep, step)
	return true
}

// isTerminal reports whether a terminal flag is set. Caller must hold
// the mutex.
func (f *Flow) isTerminal() bool {
	return f.completed || f.cancelled
}

func (f *Flow) reportValidationFailure(step string, err error) {
	if f.opts.onValidationFailure != nil {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		f.opts.onValidationFailure(step, route.RejectWithMessage(route.ReasonValidationFailed, msg))
	}
}

// notify invokes the observer. Caller must hold the mutex.
func (f *Flow) notify(event, step string) {
	f.logger.Debug(event, slog.String("step", step))
	if f.opts.observer != nil {
		f.opts.observer(event, step)
	}
}
