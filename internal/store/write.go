package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/readrawhex/logh/internal/timesheet"
)

// Save replaces the persisted log with the given one.
//
// The delete and all inserts run inside a single transaction, so the save is
// atomic from the caller's perspective: a concurrent or subsequent Load sees
// either the previous log or the new one, never a partial write.
func (s *Store) Save(ctx context.Context, log timesheet.Log) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return timesheet.NewFileAccessError("begin timesheet save", err)
	}
	defer tx.Rollback()

	if err := replaceEntries(ctx, tx, log); err != nil {
		return timesheet.NewFileAccessError("save timesheet entries", err)
	}

	if err := tx.Commit(); err != nil {
		return timesheet.NewFileAccessError("commit timesheet save", err)
	}

	return nil
}

// replaceEntries rewrites the entries table from the log, reassigning seq in
// insertion order.
func replaceEntries(ctx context.Context, tx *sql.Tx, log timesheet.Log) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, project, description, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range log {
		var end any
		if entry.End != nil {
			end = entry.End.Format(timeLayout)
		}
		if _, err := stmt.ExecContext(ctx,
			entry.ID,
			entry.Project,
			entry.Description,
			entry.Start.Format(timeLayout),
			end,
		); err != nil {
			return fmt.Errorf("insert entry %s: %w", entry.ID, err)
		}
	}

	return nil
}
