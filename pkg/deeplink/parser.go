package deeplink

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// Parser matches incoming URIs against registered patterns.
type Parser struct {
	fallback FallbackHandler
	logger   *slog.Logger
	patterns []*pattern
	opts     *options
	mu       sync.RWMutex
}

// New creates a parser. With no options it accepts any scheme and host.
func New(opts ...Option) *Parser {
	o := defaultParserOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Parser{opts: o, logger: o.logger}
}

// Register adds a pattern with its factory. Patterns are tried in
// registration order; the first structural match whose factory produces
// a route wins.
func (p *Parser) Register(tpl string, factory Factory) error {
	compiled, err := compile(tpl, factory)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.patterns = append(p.patterns, compiled)
	return nil
}

// Fallback installs the catch-all handler invoked with the raw URI when
// no pattern produced a route.
func (p *Parser) Fallback(h FallbackHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fallback = h
}

// Parse resolves a raw URI to a route.
//
// The checks run in order: scheme allow-list (empty list accepts any),
// expected host (unset accepts any), registered patterns in registration
// order, then the fallback handler. Query parameters never participate
// in matching; use [ParseQuery] for those.
func (p *Parser) Parse(raw string) (route.Route, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return route.Route{}, ErrInvalidURI
	}

	if len(p.opts.schemes) > 0 {
		if _, ok := p.opts.schemes[strings.ToLower(u.Scheme)]; !ok {
			return route.Route{}, ErrSchemeNotAllowed
		}
	}

	if p.opts.host != "" && normalizeHost(u.Host) != p.opts.host {
		return route.Route{}, ErrHostMismatch
	}

	parts := splitPath(u.Path)

	p.mu.RLock()
	patterns := p.patterns
	fallback := p.fallback
	p.mu.RUnlock()

	for _, pat := range patterns {
		params, ok := pat.match(parts)
		if !ok {
			continue
		}
		r, ok := pat.factory(params)
		if !ok {
			// A declining factory is not terminal; keep trying.
			continue
		}
		p.logger.Debug("deep link matched",
			slog.String("pattern", pat.raw),
			slog.String("path", r.Path),
		)
		return r, nil
	}

	if fallback != nil {
		if r, ok := fallback(raw); ok {
			p.logger.Debug("deep link handled by fallback", slog.String("uri", raw))
			return r, nil
		}
	}

	return route.Route{}, ErrNoMatch
}

// Handle parses the URI and pushes the resulting route onto the stack,
// tagged with the deep-link source. Returns false when parsing failed or
// the push was rejected.
func (p *Parser) Handle(raw string, s *stack.Stack) bool {
	r, err := p.Parse(raw)
	if err != nil {
		p.logger.Debug("deep link not handled",
			slog.String("uri", raw),
			slog.String("error", err.Error()),
		)
		return false
	}
	return s.PushFrom(r, stack.SourceDeepLink)
}

// AsyncGuard may suspend (awaiting user input, a network check) before
// a deep-linked route is allowed through.
type AsyncGuard func(ctx context.Context, r route.Route) (bool, error)

// HandleWithGuard is Handle with an asynchronous pre-push guard. The
// guard runs to completion before the push; a guard error counts as a
// veto and is returned for caller bookkeeping.
func (p *Parser) HandleWithGuard(ctx context.Context, raw string, s *stack.Stack, guard AsyncGuard) (bool, error) {
	r, err := p.Parse(raw)
	if err != nil {
		return false, err
	}

	if guard != nil {
		ok, err := guard(ctx, r)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return s.PushFrom(r, stack.SourceDeepLink), nil
}

// normalizeHost strips a port suffix and lowercases the host.
func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(host)
}
