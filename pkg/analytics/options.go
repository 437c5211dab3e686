package analytics

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

// Option configures a Recorder.
type Option func(*options)

type options struct {
	log      *slog.Logger
	logLimit int
}

const defaultLogLimit = 1000

func defaultOptions() *options {
	return &options{
		logLimit: defaultLogLimit,
		log:      logger.NewNope(),
	}
}

// WithLogLimit caps the retained event log. Oldest events are dropped
// on overflow; counters are unaffected.
func WithLogLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.logLimit = limit
		}
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
