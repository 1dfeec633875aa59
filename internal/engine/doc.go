// Package engine implements the clock operations of the logh time tracker.
//
// The engine is pure: every operation takes an explicit timesheet.Log value
// and returns a new one, leaving the input untouched on failure. The store
// package is the only boundary to durable storage - the engine never does
// I/O, which keeps it unit-testable without a filesystem.
//
// ARCHITECTURE:
//
// Single-shot synchronous model:
// Each CLI invocation loads the log, applies exactly one engine operation,
// and saves the result. There are no suspension points, no background
// tasks, and no locking; concurrent invocations are the caller's problem.
//
// Single open entry:
// At most one entry may be open at any time, GLOBALLY across all projects.
// Clock-out therefore needs no project argument - it closes the one open
// entry. Clock-in refuses while any entry is open.
//
// Determinism:
// Operations are deterministic functions of (log, arguments, timestamp).
// "Now" is always supplied by the caller, never read inside the engine.
package engine
