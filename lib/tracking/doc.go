// Package tracking provides an opt-in, process-wide registry of open lock
// segments, used to detect and recover leaks: segments that were created
// but never destroyed because a process skipped its release path
// (crash, kill, os.Exit).
//
// The registry hangs off the segment package's lifecycle hooks. Between
// Init and Deinit every create and destroy performed through the lock API
// in this process is recorded with a timestamp and pid. Deinit reports
// whatever is still recorded as open and force-unlinks it; DeinitReportOnly
// reports without destroying, for diagnostics while locks may still be
// live.
//
// Lifecycle discipline: Init and Deinit are expected to be called once per
// process (typically at startup and via defer in main). Init is idempotent
// and never discards an existing registry; Deinit without Init is a no-op.
// In between, the registry itself is safe for concurrent use.
//
// The tracker sees only events that pass the segment package's suppression
// filter, and only segments created in this process. It has no
// cross-process view; leak recovery for segments of a crashed foreign
// process is an operational task (see the clean command).
package tracking
