// Package analytics records navigation events and assigns experiment
// variants.
//
// The Recorder keeps per-name counters and a capped in-memory event
// log; Export produces a pretty-printed, human-auditable JSON document
// with UTC timestamps. Nothing is sent anywhere — wiring the export to
// a backend is the host app's concern.
//
// Assignment picks a weighted-random variant per experiment and makes
// it sticky by persisting the choice in a kv.Store, so a user sees the
// same variant across launches.
package analytics
