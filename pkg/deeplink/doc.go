// Package deeplink matches incoming URIs against registered path
// templates and turns them into routes.
//
// Patterns are /-delimited templates where segments prefixed with ":" are
// named captures:
//
//	p := deeplink.New(
//	    deeplink.WithSchemes("myapp"),
//	    deeplink.WithHost("nav"),
//	)
//	p.Register("/profile/:user_id", func(params map[string]string) (route.Route, bool) {
//	    return route.New("/profile", route.WithParams(params)), true
//	})
//
//	r, err := p.Parse("myapp://nav/profile/42")
//
// Matching is purely structural: patterns are tried in registration order
// among those with an equal segment count; literal segments compare
// case-sensitively and :param segments bind unconditionally. A factory
// may decline by returning ok=false, in which case matching continues
// with the next pattern. When nothing matches, the fallback handler (if
// set) receives the raw URI. There is no regex and no backtracking; the
// worst case is O(patterns × segments).
//
// Query parameters are not part of pattern matching. They are extracted
// separately into a flat [Query] map with typed helpers on top.
package deeplink
