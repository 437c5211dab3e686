package route

// Builder accumulates an ordered route list. It replaces any declarative
// DSL with a plain chainable construction API.
//
//	routes := route.NewBuilder().
//	    Add(route.New("/home")).
//	    Add(route.New("/settings", route.WithTitle("Settings"))).
//	    Build()
type Builder struct {
	routes []Route
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a single route and returns the builder for chaining.
func (b *Builder) Add(r Route) *Builder {
	b.routes = append(b.routes, r)
	return b
}

// AddAll appends routes in order and returns the builder for chaining.
func (b *Builder) AddAll(routes ...Route) *Builder {
	b.routes = append(b.routes, routes...)
	return b
}

// Len returns the number of accumulated routes.
func (b *Builder) Len() int {
	return len(b.routes)
}

// Build returns the accumulated routes. The returned slice is a copy;
// the builder can keep being used afterwards.
func (b *Builder) Build() []Route {
	out := make([]Route, len(b.routes))
	copy(out, b.routes)
	return out
}
