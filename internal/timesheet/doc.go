// Package timesheet defines the domain types for the logh time tracker.
//
// An Entry records a block of work against a named project. An entry with
// no end time is "open" - the clock is still running on it. A Log is the
// ordered sequence of entries; insertion order is creation order.
//
// INVARIANTS:
//
// Single open entry:
// At most one entry in a Log may be open at any time, globally across all
// projects. The engine package enforces this on every mutation.
//
// Range validity:
// A closed entry always satisfies End >= Start. Clock-out and backfill
// operations reject anything else with an INVALID_RANGE error.
//
// Append-only lifecycle:
// Entries are created by clock-in or backfill, closed by clock-out, and
// removable only as the most recent entry. They are never otherwise mutated.
package timesheet
