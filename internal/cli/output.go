package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/readrawhex/logh/internal/timesheet"
)

// Exit codes for the CLI.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Engine-level failure (already open, no open entry, bad range, empty log, file access)
	ExitCommandError = 2 // Command error (invalid flags, unparseable timestamps, bad config)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from the command.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// outputEngineError emits an engine-level failure in the configured format
// and returns the ExitError carrying the timesheet error kind.
func outputEngineError(formatter *OutputFormatter, err error) error {
	var te *timesheet.Error
	if errors.As(err, &te) {
		msg := te.Message
		if te.Project != "" {
			msg = fmt.Sprintf("%s (project=%s)", te.Message, te.Project)
		}
		_ = formatter.Error(string(te.Code), msg)
		return &ExitError{Code: ExitFailure, Message: string(te.Code), Err: err}
	}
	return WrapExitError(ExitFailure, "operation failed", err)
}

// OutputFormatter handles JSON vs text output for the command.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // success payload
	Error  *CLIError   `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`    // timesheet error code, e.g. "ALREADY_OPEN"
	Message string `json:"message"` // human-readable message
}

// Success outputs a successful result in the configured format.
// In text mode, data is printed with its String/default formatting; callers
// building multi-line status views write to Writer directly instead.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}
