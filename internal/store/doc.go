// Package store provides SQLite-backed durable storage for the timesheet log.
//
// The persisted database is the sole durability mechanism: a single
// `entries` table holding the ordered sequence of time entries. The store
// exposes exactly the load/save boundary - all log mutation happens in the
// engine package on an in-memory Log value.
//
// # Contract
//
//   - Load on a fresh database returns an empty Log, not an error.
//   - Save replaces the table contents inside one transaction, so a
//     subsequent Load never observes a partial write.
//   - Save then Load round-trips the Log losslessly.
//   - Malformed contents (unparseable timestamps, a file that is not a
//     database, a newer schema version) fail fast with a FILE_ACCESS error
//     rather than yielding a truncated Log.
//
// # Ordering
//
// Insertion order is creation order. Rows carry a seq INTEGER assigned on
// save; Load always reads ORDER BY seq ASC, never by start timestamp.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
