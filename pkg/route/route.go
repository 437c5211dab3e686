package route

import "maps"

// Style describes how a route prefers to be presented by the host UI.
type Style int

const (
	// StylePush is the default stack transition.
	StylePush Style = iota
	// StyleSheet presents the route as a dismissable sheet.
	StyleSheet
	// StyleFullScreen presents the route as a full-screen cover.
	StyleFullScreen
)

// String returns the lowercase tag used in serialized snapshots and events.
func (s Style) String() string {
	switch s {
	case StyleSheet:
		return "sheet"
	case StyleFullScreen:
		return "full_screen"
	default:
		return "push"
	}
}

// StyleFromString parses a style tag produced by [Style.String].
// Unknown tags map to StylePush.
func StyleFromString(tag string) Style {
	switch tag {
	case "sheet":
		return StyleSheet
	case "full_screen":
		return StyleFullScreen
	default:
		return StylePush
	}
}

// Route is a navigable destination. It is a plain immutable value;
// identity is the Path and everything else is carried through untouched.
type Route struct {
	Params       map[string]string
	Path         string
	Title        string
	Presentation Style
	Modal        bool
}

// Option configures a route during construction.
type Option func(*Route)

// WithTitle sets the human-readable title.
func WithTitle(title string) Option {
	return func(r *Route) { r.Title = title }
}

// WithParam attaches a single payload parameter.
func WithParam(key, value string) Option {
	return func(r *Route) {
		if r.Params == nil {
			r.Params = make(map[string]string)
		}
		r.Params[key] = value
	}
}

// WithParams attaches a payload parameter map. The map is copied.
func WithParams(params map[string]string) Option {
	return func(r *Route) {
		if len(params) == 0 {
			return
		}
		if r.Params == nil {
			r.Params = make(map[string]string, len(params))
		}
		maps.Copy(r.Params, params)
	}
}

// AsModal marks the route as a modal destination with the given style.
func AsModal(style Style) Option {
	return func(r *Route) {
		r.Modal = true
		r.Presentation = style
	}
}

// New creates a route for the given path.
func New(path string, opts ...Option) Route {
	r := Route{Path: path}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Equal reports whether two routes identify the same destination.
// Equality is by path only.
func (r Route) Equal(other Route) bool {
	return r.Path == other.Path
}

// IsZero reports whether the route is the zero value.
func (r Route) IsZero() bool {
	return r.Path == ""
}

// Param returns a payload parameter by key.
func (r Route) Param(key string) (string, bool) {
	v, ok := r.Params[key]
	return v, ok
}
