package recovery

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// Option configures a Manager.
type Option func(*options)

type options struct {
	log           *slog.Logger
	key           string
	appVersion    string
	typeHash      string
	excludedPaths map[string]struct{}
	maxAge        time.Duration
	debounce      time.Duration
	confirmation  bool
	strict        bool
	disabled      bool
}

func defaultOptions() *options {
	return &options{
		key:           "recovery:snapshot",
		maxAge:        30 * time.Minute,
		excludedPaths: make(map[string]struct{}),
		log:           logger.NewNope(),
	}
}

// WithKey overrides the storage key used for the snapshot blob.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithMaxAge sets how old a snapshot may be before it is rejected as
// stale. Zero disables the staleness check. Default is 30 minutes.
func WithMaxAge(d time.Duration) Option {
	return func(o *options) {
		o.maxAge = d
	}
}

// WithAppVersion stamps saved snapshots with the app version string.
func WithAppVersion(v string) Option {
	return func(o *options) {
		o.appVersion = v
	}
}

// WithTypeHash sets the route-space compatibility tag. Snapshots whose
// stored hash differs are rejected as invalid on restore. See TypeHash.
func WithTypeHash(hash string) Option {
	return func(o *options) {
		o.typeHash = hash
	}
}

// WithExcludedPaths removes the given route paths from saved snapshots,
// for screens that should never be restored (payment sheets, auth).
func WithExcludedPaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			o.excludedPaths[p] = struct{}{}
		}
	}
}

// WithDebounce delays writes so that only the last snapshot within the
// window is persisted. Zero writes immediately.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithConfirmation makes Attempt stash the snapshot and return a
// cancelled result instead of restoring, until Confirm is called.
func WithConfirmation() Option {
	return func(o *options) {
		o.confirmation = true
	}
}

// WithStrictValidation aborts the whole recovery when any persisted
// path is unknown to the route factory. Without it unknown paths are
// silently dropped.
func WithStrictValidation() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithDisabled turns recovery off: Save becomes a no-op and Attempt
// reports a disabled result.
func WithDisabled() Option {
	return func(o *options) {
		o.disabled = true
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
