package deeplink

import (
	"strings"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Factory builds a route from the captured path parameters.
// Returning ok=false declines the match and lets the next pattern try.
type Factory func(params map[string]string) (route.Route, bool)

// FallbackHandler receives the raw URI when no pattern matched.
type FallbackHandler func(uri string) (route.Route, bool)

// segment is one element of a compiled pattern: either a literal that
// must match exactly, or a named :param capture.
type segment struct {
	literal string
	param   string
}

type pattern struct {
	factory  Factory
	raw      string
	segments []segment
}

// compile splits a /-delimited template into segments.
func compile(raw string, factory Factory) (*pattern, error) {
	parts := splitPath(raw)
	if len(parts) == 0 {
		return nil, ErrEmptyPattern
	}

	segs := make([]segment, len(parts))
	for i, part := range parts {
		if name, ok := strings.CutPrefix(part, ":"); ok && name != "" {
			segs[i] = segment{param: name}
		} else {
			segs[i] = segment{literal: part}
		}
	}

	return &pattern{raw: raw, segments: segs, factory: factory}, nil
}

// match attempts a positional match against the URI path segments.
// Literal segments compare case-sensitively; :param segments bind
// unconditionally.
func (p *pattern) match(parts []string) (map[string]string, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range p.segments {
		if seg.param != "" {
			if params == nil {
				params = make(map[string]string)
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}

	if params == nil {
		params = map[string]string{}
	}
	return params, true
}

// splitPath returns the non-empty /-separated elements of a path.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
