// Package repositories implements SQLite persistence for interactive sessions.
//
// Key Implementations:
//   - [SessionRepository] : session lifecycle, one row per TUI run
//   - [PayloadRepository] : write-once, read-once values scoped to a session (the classification handoff)
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
