package stack

import (
	"time"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Breadcrumb is a lightweight (path, title, time) record of where the
// user has been, distinct from the full mutation history.
type Breadcrumb struct {
	Time  time.Time
	Path  string
	Title string
}

const defaultBreadcrumbLimit = 50

// recordBreadcrumb appends a breadcrumb, truncating the oldest on
// overflow. Caller must hold the mutex.
func (s *Stack) recordBreadcrumb(r route.Route) {
	s.breadcrumbs = append(s.breadcrumbs, Breadcrumb{
		Path:  r.Path,
		Title: r.Title,
		Time:  time.Now(),
	})
	if len(s.breadcrumbs) > s.opts.breadcrumbLimit {
		s.breadcrumbs = s.breadcrumbs[len(s.breadcrumbs)-s.opts.breadcrumbLimit:]
	}
}
