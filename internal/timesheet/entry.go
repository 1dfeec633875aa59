package timesheet

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single block of tracked work against a project.
//
// End is nil while the entry is open (clocked in, not yet clocked out).
// A closed entry satisfies End >= Start.
type Entry struct {
	// ID uniquely identifies the entry across its lifetime.
	ID string

	// Project names the project the hours are booked against.
	Project string

	// Description is free-form text describing the work. May be empty
	// while an entry is open; clock-out can set or replace it.
	Description string

	// Start is when the work block began.
	Start time.Time

	// End is when the work block finished, or nil for an open entry.
	End *time.Time
}

// NewEntry creates an open entry for a project starting at the given time.
func NewEntry(project, description string, start time.Time) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Project:     project,
		Description: description,
		Start:       start,
	}
}

// Open reports whether the entry has no recorded end time.
func (e Entry) Open() bool {
	return e.End == nil
}

// Duration returns End - Start for a closed entry.
// The second return is false for open entries, where duration is undefined.
func (e Entry) Duration() (time.Duration, bool) {
	if e.End == nil {
		return 0, false
	}
	return e.End.Sub(e.Start), true
}

// Closed returns a copy of the entry with the end time set.
// It does not validate the range; the engine does that before calling.
func (e Entry) Closed(end time.Time) Entry {
	e.End = &end
	return e
}

// Log is the ordered sequence of entries. Index order is creation order.
//
// A Log value is immutable by convention: engine operations return a new
// Log rather than mutating the receiver, so a failed operation leaves the
// caller's Log untouched.
type Log []Entry

// OpenIndex returns the index of the open entry, or -1 if every entry is
// closed. The single-open-entry invariant means at most one index qualifies;
// the scan runs newest-first so a violated invariant still resolves to the
// most recent open entry.
func (l Log) OpenIndex() int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Open() {
			return i
		}
	}
	return -1
}

// Last returns the most recently added entry.
// The second return is false for an empty log.
func (l Log) Last() (Entry, bool) {
	if len(l) == 0 {
		return Entry{}, false
	}
	return l[len(l)-1], true
}

// Equal reports whether two logs contain the same entries in the same order.
// Timestamps compare with time.Time.Equal so location differences from a
// store round-trip do not break the round-trip law.
func (l Log) Equal(other Log) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		a, b := l[i], other[i]
		if a.ID != b.ID || a.Project != b.Project || a.Description != b.Description {
			return false
		}
		if !a.Start.Equal(b.Start) {
			return false
		}
		if (a.End == nil) != (b.End == nil) {
			return false
		}
		if a.End != nil && !a.End.Equal(*b.End) {
			return false
		}
	}
	return true
}
