package deeplink

import (
	"net/url"
	"strconv"
	"strings"
)

// Query is a flat name→value view of a URI's query string. When a name
// appears multiple times the first value wins.
type Query map[string]string

// ParseQuery extracts query parameters from a raw URI.
// A malformed URI yields an empty query, never an error: query data is
// advisory and must not block navigation.
func ParseQuery(raw string) Query {
	u, err := url.Parse(raw)
	if err != nil {
		return Query{}
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return Query{}
	}

	q := make(Query, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			q[name] = vals[0]
		}
	}
	return q
}

// Get returns the raw string value.
func (q Query) Get(name string) (string, bool) {
	v, ok := q[name]
	return v, ok
}

// Int returns the value parsed as an integer.
func (q Query) Int(name string) (int, bool) {
	v, ok := q[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool returns the value parsed as a boolean: "true"/"1"/"yes" are true,
// "false"/"0"/"no" are false, anything else is undefined (ok=false).
func (q Query) Bool(name string) (bool, bool) {
	v, ok := q[name]
	if !ok {
		return false, false
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}
