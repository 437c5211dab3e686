// Package flow implements wizard-style flows: a fixed, ordered sequence
// of named steps with forward/back/jump transitions, per-step validators,
// and per-step data.
//
// A flow's step list is fixed at construction and must be non-empty —
// an empty flow has no sensible semantics, so New returns an error.
//
// Forward movement is gated by the current step's validator, which may
// be asynchronous (it receives a context and runs to completion before
// the transition commits). Validator rejections and validator errors are
// never propagated to the caller: the transition simply does not happen
// and the failure is surfaced through the validation-failure callback.
//
//	f, err := flow.New([]string{"welcome", "profile", "done"},
//	    flow.WithValidator("profile", func(ctx context.Context) (bool, error) {
//	        return profileComplete(ctx), nil
//	    }),
//	)
//	f.Next(ctx) // false until the profile validator passes
//
// Complete and Cancel are idempotent terminal transitions and mutually
// exclusive: whichever is called first wins, the other becomes a no-op.
package flow
