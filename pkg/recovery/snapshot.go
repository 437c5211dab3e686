package recovery

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"
)

// Snapshot is a serializable capture of navigation state.
type Snapshot struct {
	RoutePaths     []string          `json:"route_paths"`
	ActiveTab      string            `json:"active_tab,omitempty"`
	PresentedPath  string            `json:"presented_path,omitempty"`
	PresentedStyle string            `json:"presented_style,omitempty"`
	CustomState    map[string]string `json:"custom_state,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	AppVersion     string            `json:"app_version,omitempty"`
	RouteTypeHash  string            `json:"route_type_hash,omitempty"`
}

// Age reports how long ago the snapshot was taken.
func (s Snapshot) Age() time.Duration {
	return time.Since(s.Timestamp)
}

// TypeHash derives a compatibility tag from the set of route paths an
// app can navigate to. Snapshots written by a build with a different
// route space produce a different hash and are rejected on restore.
// Order-insensitive: the paths are sorted before hashing.
func TypeHash(paths ...string) string {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	h := fnv.New64a()
	for _, p := range sorted {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
