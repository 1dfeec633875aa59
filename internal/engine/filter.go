package engine

import (
	"sort"
	"time"

	"github.com/readrawhex/logh/internal/timesheet"
)

// FilterOptions narrows a log to a subset of entries.
// Zero values mean "no bound".
type FilterOptions struct {
	// Project keeps only entries for the named project when non-empty.
	Project string

	// Start drops entries that began before it when non-zero.
	Start time.Time

	// End drops entries that finished after it when non-zero.
	// Open entries have no finish time and always satisfy the bound.
	End time.Time
}

// Filter returns the entries matching opts, preserving insertion order.
// With zero options the input log is returned as-is.
func Filter(log timesheet.Log, opts FilterOptions) timesheet.Log {
	if opts.Project == "" && opts.Start.IsZero() && opts.End.IsZero() {
		return log
	}

	out := timesheet.Log{}
	for _, entry := range log {
		if opts.Project != "" && entry.Project != opts.Project {
			continue
		}
		if !opts.Start.IsZero() && entry.Start.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && entry.End != nil && entry.End.After(opts.End) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// RecentByProject returns the most recently added entry for each project,
// ordered by start time. Used for the no-argument status display.
func RecentByProject(log timesheet.Log) []timesheet.Entry {
	seen := make(map[string]bool)
	var recents []timesheet.Entry
	for i := len(log) - 1; i >= 0; i-- {
		entry := log[i]
		if seen[entry.Project] {
			continue
		}
		seen[entry.Project] = true
		recents = append(recents, entry)
	}

	sort.SliceStable(recents, func(i, j int) bool {
		return recents[i].Start.Before(recents[j].Start)
	})
	return recents
}
