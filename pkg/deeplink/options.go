package deeplink

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

type options struct {
	schemes map[string]struct{}
	host    string
	logger  *slog.Logger
}

func defaultParserOptions() *options {
	return &options{logger: logger.NewNope()}
}

// Option configures a Parser.
type Option func(*options)

// WithSchemes sets the scheme allow-list. URIs with any other scheme are
// rejected with ErrSchemeNotAllowed. No allow-list accepts any scheme.
func WithSchemes(schemes ...string) Option {
	return func(o *options) {
		if o.schemes == nil {
			o.schemes = make(map[string]struct{}, len(schemes))
		}
		for _, s := range schemes {
			o.schemes[strings.ToLower(s)] = struct{}{}
		}
	}
}

// WithHost sets the expected URI host. URIs with a different host are
// rejected with ErrHostMismatch. Unset accepts any host.
func WithHost(host string) Option {
	return func(o *options) { o.host = normalizeHost(host) }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
