package engine

import (
	"time"

	"github.com/readrawhex/logh/internal/timesheet"
)

// ClockIn appends a new open entry for project starting at the given time.
//
// Fails with an ALREADY_OPEN error if any entry is still open; the input
// log is returned unchanged on failure.
func ClockIn(log timesheet.Log, project, description string, at time.Time) (timesheet.Log, error) {
	if i := log.OpenIndex(); i >= 0 {
		return log, timesheet.NewAlreadyOpenError(log[i].Project, log[i].Start)
	}

	out := make(timesheet.Log, len(log), len(log)+1)
	copy(out, log)
	return append(out, timesheet.NewEntry(project, description, at)), nil
}

// ClockOut closes the open entry at the given time.
//
// A non-zero start rewrites the open entry's start time before closing,
// for correcting a clock-in recorded at the wrong moment. A non-empty
// description replaces the one recorded at clock-in. Fails with
// NO_OPEN_ENTRY if nothing is open, or INVALID_RANGE if the end time is
// earlier than the (possibly rewritten) start time.
func ClockOut(log timesheet.Log, description string, start, at time.Time) (timesheet.Log, error) {
	i := log.OpenIndex()
	if i < 0 {
		return log, timesheet.NewNoOpenEntryError()
	}

	open := log[i]
	if !start.IsZero() {
		open.Start = start
	}
	if at.Before(open.Start) {
		return log, timesheet.NewInvalidRangeError(open.Project, open.Start, at)
	}

	closed := open.Closed(at)
	if description != "" {
		closed.Description = description
	}

	out := make(timesheet.Log, len(log))
	copy(out, log)
	out[i] = closed
	return out, nil
}

// LogEntry appends a closed entry directly, bypassing clock-in/out.
// Used for backfilling completed work blocks.
//
// Fails with INVALID_RANGE if end is earlier than start.
func LogEntry(log timesheet.Log, project, description string, start, end time.Time) (timesheet.Log, error) {
	if end.Before(start) {
		return log, timesheet.NewInvalidRangeError(project, start, end)
	}

	entry := timesheet.NewEntry(project, description, start).Closed(end)

	out := make(timesheet.Log, len(log), len(log)+1)
	copy(out, log)
	return append(out, entry), nil
}

// DeleteLast removes the most recently added entry, open or closed.
//
// Fails with EMPTY_LOG if the log has no entries.
func DeleteLast(log timesheet.Log) (timesheet.Log, error) {
	if len(log) == 0 {
		return log, timesheet.NewEmptyLogError()
	}

	out := make(timesheet.Log, len(log)-1)
	copy(out, log[:len(log)-1])
	return out, nil
}

// Status returns the most recently added entry for display.
// A pure read; the second return is false for an empty log.
func Status(log timesheet.Log) (timesheet.Entry, bool) {
	return log.Last()
}
