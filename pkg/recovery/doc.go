// Package recovery persists navigation state across process restarts.
//
// A Manager captures the route stack (plus active tab, presented modal,
// and free-form custom state) into a Snapshot, writes it to a kv.Store
// (debounced, last write wins), and restores it on the next launch.
// Restoration is defensive: stale snapshots, snapshots from an
// incompatible build, and corrupt blobs are all rejected without error,
// reported through a typed Result instead.
//
// The package also provides Sessions: named, user-initiated captures of
// navigation state that can be listed, restored, and deleted — useful
// for "continue where you left off" pickers.
package recovery
