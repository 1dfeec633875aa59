package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/readrawhex/logh/internal/timesheet"
)

// timeLayout is the persisted timestamp format. RFC 3339 with nanoseconds
// round-trips time.Time losslessly through save/load.
const timeLayout = time.RFC3339Nano

// Load reads the full timesheet log in insertion order.
//
// Returns an empty Log (not nil, not an error) for a fresh database.
// Any unparseable row fails the whole load with a FILE_ACCESS error;
// a silently truncated log is never returned.
func (s *Store) Load(ctx context.Context) (timesheet.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project, description, start_time, end_time
		FROM entries
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, timesheet.NewFileAccessError("query timesheet entries", err)
	}
	defer rows.Close()

	log := timesheet.Log{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, timesheet.NewFileAccessError("read timesheet entry", err)
		}
		log = append(log, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, timesheet.NewFileAccessError("iterate timesheet entries", err)
	}

	return log, nil
}

// scanEntry converts one row into a timesheet.Entry.
func scanEntry(rows *sql.Rows) (timesheet.Entry, error) {
	var (
		entry    timesheet.Entry
		startRaw string
		endRaw   sql.NullString
	)

	if err := rows.Scan(&entry.ID, &entry.Project, &entry.Description, &startRaw, &endRaw); err != nil {
		return timesheet.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	start, err := time.Parse(timeLayout, startRaw)
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("malformed start_time %q for entry %s: %w", startRaw, entry.ID, err)
	}
	entry.Start = start

	if endRaw.Valid {
		end, err := time.Parse(timeLayout, endRaw.String)
		if err != nil {
			return timesheet.Entry{}, fmt.Errorf("malformed end_time %q for entry %s: %w", endRaw.String, entry.ID, err)
		}
		entry.End = &end
	}

	return entry, nil
}
