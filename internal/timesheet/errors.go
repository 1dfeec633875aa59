package timesheet

import (
	"errors"
	"fmt"
	"time"
)

// Error represents a failure of a timesheet operation.
//
// Operation errors include:
//   - Already open: clock-in while an entry is still running
//   - No open entry: clock-out with nothing running
//   - Invalid range: an end time earlier than the start time
//   - Empty log: delete-last on a log with no entries
//   - File access: I/O or database failure on load/save/export
//
// Error includes structured fields so callers can report which project or
// timestamps were involved without parsing the message.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Project identifies the affected project, when one is involved.
	Project string

	// Start and End carry the offending timestamps for range errors.
	Start time.Time
	End   time.Time

	// Err is the underlying cause (for file access errors).
	Err error
}

// ErrorCode categorizes timesheet operation errors.
type ErrorCode string

const (
	// ErrCodeAlreadyOpen indicates a clock-in while an entry is open.
	ErrCodeAlreadyOpen ErrorCode = "ALREADY_OPEN"

	// ErrCodeNoOpenEntry indicates a clock-out with no open entry.
	ErrCodeNoOpenEntry ErrorCode = "NO_OPEN_ENTRY"

	// ErrCodeInvalidRange indicates an end time before the start time.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"

	// ErrCodeEmptyLog indicates delete-last on an empty log.
	ErrCodeEmptyLog ErrorCode = "EMPTY_LOG"

	// ErrCodeFileAccess indicates an I/O failure on load, save, or export.
	ErrCodeFileAccess ErrorCode = "FILE_ACCESS"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	if e.Project != "" {
		return fmt.Sprintf("%s: %s (project=%s)", e.Code, e.Message, e.Project)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// codeIs reports whether err is (or wraps) an Error with the given code.
func codeIs(err error, code ErrorCode) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// IsAlreadyOpen returns true for clock-in-while-open errors.
// Uses errors.As to handle wrapped errors.
func IsAlreadyOpen(err error) bool { return codeIs(err, ErrCodeAlreadyOpen) }

// IsNoOpenEntry returns true for clock-out-with-nothing-open errors.
func IsNoOpenEntry(err error) bool { return codeIs(err, ErrCodeNoOpenEntry) }

// IsInvalidRange returns true for end-before-start errors.
func IsInvalidRange(err error) bool { return codeIs(err, ErrCodeInvalidRange) }

// IsEmptyLog returns true for delete-last-on-empty errors.
func IsEmptyLog(err error) bool { return codeIs(err, ErrCodeEmptyLog) }

// IsFileAccess returns true for load/save/export I/O errors.
func IsFileAccess(err error) bool { return codeIs(err, ErrCodeFileAccess) }

// NewAlreadyOpenError reports a clock-in attempt while project has been
// running since start.
func NewAlreadyOpenError(project string, start time.Time) *Error {
	return &Error{
		Code:    ErrCodeAlreadyOpen,
		Message: fmt.Sprintf("already clocked in since %s", start.Format("2006-01-02 15:04:05")),
		Project: project,
		Start:   start,
	}
}

// NewNoOpenEntryError reports a clock-out with no running entry.
func NewNoOpenEntryError() *Error {
	return &Error{
		Code:    ErrCodeNoOpenEntry,
		Message: "no open entry to clock out of",
	}
}

// NewInvalidRangeError reports an end time earlier than the start time.
func NewInvalidRangeError(project string, start, end time.Time) *Error {
	return &Error{
		Code:    ErrCodeInvalidRange,
		Message: "end time must not be earlier than start time",
		Project: project,
		Start:   start,
		End:     end,
	}
}

// NewEmptyLogError reports a delete-last on an empty log.
func NewEmptyLogError() *Error {
	return &Error{
		Code:    ErrCodeEmptyLog,
		Message: "timesheet log is empty",
	}
}

// NewFileAccessError wraps an I/O or database failure with context.
func NewFileAccessError(message string, err error) *Error {
	return &Error{
		Code:    ErrCodeFileAccess,
		Message: message,
		Err:     err,
	}
}
