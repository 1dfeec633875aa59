package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/readrawhex/logh/internal/engine"
	"github.com/readrawhex/logh/internal/export"
	"github.com/readrawhex/logh/internal/store"
	"github.com/readrawhex/logh/internal/timesheet"
)

// RootOptions holds the flags for the logh command.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	ClockIn      bool
	ClockOut     bool
	Delete       bool
	ExportFile   string
	ExportFormat string
	StartTime    string
	EndTime      string
	Database     string

	// Now supplies the current time. Overridable for testing;
	// defaults to time.Now.
	Now func() time.Time
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// timeLayouts are the accepted --start-time/--end-time formats, tried in
// order. Local time is assumed when the input carries no offset.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewRootCommand creates the logh command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Now: time.Now}

	cmd := &cobra.Command{
		Use:   "logh [flags] [project] [description...]",
		Short: "log working hours against named projects",
		Long: `logh records working hours against named projects.

With -i/-o it runs a clock: clock in on a project, clock out when done.
With a project argument and no action flag it backfills a completed block
(--start-time/--end-time, defaulting to now). With no arguments it shows
the most recent entry per project.

Example:
  logh -i proj-a
  logh -o finished the release notes
  logh proj-b wrote docs --start-time "2026-08-20 09:00" --end-time "2026-08-20 11:30"
  logh -e timesheet.csv`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.ClockIn, "clock-in", "i", false, "mark current time as clock start")
	cmd.Flags().BoolVarP(&opts.ClockOut, "clock-out", "o", false, "mark current time as clock end")
	cmd.Flags().StringVarP(&opts.ExportFile, "export", "e", "", "export timesheet data to file")
	cmd.Flags().BoolVarP(&opts.Delete, "delete-clock-in", "d", false, "delete the most recent clock-in / hours")
	cmd.Flags().StringVar(&opts.StartTime, "start-time", "", "specify a specific starting time")
	cmd.Flags().StringVar(&opts.EndTime, "end-time", "", "specify a specific ending time")
	cmd.Flags().StringVar(&opts.ExportFormat, "export-format", "", "export format (csv|json)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to timesheet database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// run dispatches a single invocation: load the log, apply one operation,
// save the result. The engine stays pure; this is the only place that
// touches the store or the clock.
func run(opts *RootOptions, cmd *cobra.Command, args []string) error {
	configureLogging(opts.Verbose)

	formatter := &OutputFormatter{
		Format: opts.Format,
		Writer: cmd.OutOrStdout(),
	}

	if n := countActions(opts); n > 1 {
		return NewExitError(ExitCommandError, "at most one of -i, -o, -e, -d may be given")
	}

	start, err := parseTimeFlag(opts.StartTime, "--start-time")
	if err != nil {
		return err
	}
	end, err := parseTimeFlag(opts.EndTime, "--end-time")
	if err != nil {
		return err
	}

	var project, description string
	if len(args) > 0 {
		project = args[0]
		description = strings.TrimSpace(strings.Join(args[1:], " "))
	}

	cfgPath, err := ConfigPath()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to locate config", err)
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	dbPath, err := ResolveTimesheetPath(opts.Database, cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to resolve timesheet path", err)
	}

	slog.Debug("opening timesheet", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return outputEngineError(formatter, err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing timesheet", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	log, err := st.Load(ctx)
	if err != nil {
		return outputEngineError(formatter, err)
	}
	slog.Debug("timesheet loaded", "entries", len(log))

	switch {
	case opts.ExportFile != "":
		return runExport(opts, cfg, formatter, log, project, start, end)
	case opts.ClockIn:
		if project == "" {
			return NewExitError(ExitCommandError, "no project name was given")
		}
		at := timeOr(start, opts.Now)
		log, err = engine.ClockIn(log, project, description, at)
	case opts.ClockOut:
		at := timeOr(end, opts.Now)
		desc := strings.TrimSpace(project + " " + description)
		log, err = engine.ClockOut(log, desc, start, at)
	case opts.Delete:
		log, err = engine.DeleteLast(log)
	case project != "":
		entryStart := timeOr(start, opts.Now)
		entryEnd := timeOr(end, opts.Now)
		log, err = engine.LogEntry(log, project, description, entryStart, entryEnd)
	default:
		return runStatus(formatter, log, start, end)
	}
	if err != nil {
		return outputEngineError(formatter, err)
	}

	if err := st.Save(ctx, log); err != nil {
		return outputEngineError(formatter, err)
	}
	slog.Debug("timesheet saved", "entries", len(log))

	return formatter.Success("ok")
}

// countActions counts the mutually exclusive action flags.
func countActions(opts *RootOptions) int {
	n := 0
	for _, set := range []bool{opts.ClockIn, opts.ClockOut, opts.Delete, opts.ExportFile != ""} {
		if set {
			n++
		}
	}
	return n
}

// configureLogging sets up slog on stderr, debug level when verbose.
func configureLogging(verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// parseTimeFlag parses a --start-time/--end-time value.
// An empty value yields the zero time.
func parseTimeFlag(value, flag string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewExitError(ExitCommandError,
		fmt.Sprintf("unparseable %s value %q", flag, value))
}

// timeOr returns t unless it is zero, in which case now() is used.
func timeOr(t time.Time, now func() time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t
}

// runExport serializes the (optionally filtered) log and writes it to the
// export file. A pure read; the stored log is not modified.
func runExport(opts *RootOptions, cfg Config, formatter *OutputFormatter, log timesheet.Log, project string, start, end time.Time) error {
	format := export.Format(opts.ExportFormat)
	if format == "" {
		format = export.Format(cfg.ExportFormat)
	}
	if format == "" {
		format = export.FormatCSV
	}

	filtered := engine.Filter(log, engine.FilterOptions{
		Project: project,
		Start:   start,
		End:     end,
	})

	data, err := export.Export(filtered, format)
	if err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	if err := os.WriteFile(opts.ExportFile, data, 0o644); err != nil {
		return outputEngineError(formatter, timesheet.NewFileAccessError("write export file", err))
	}

	slog.Debug("timesheet exported", "file", opts.ExportFile, "format", format, "entries", len(filtered))
	return formatter.Success(fmt.Sprintf("exported %d entries to %s", len(filtered), opts.ExportFile))
}

// statusEntry is the JSON shape of one status line.
type statusEntry struct {
	Project     string `json:"project"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Open        bool   `json:"open"`
}

// runStatus prints the most recent entry per project.
func runStatus(formatter *OutputFormatter, log timesheet.Log, start, end time.Time) error {
	recents := engine.RecentByProject(engine.Filter(log, engine.FilterOptions{
		Start: start,
		End:   end,
	}))

	if formatter.Format == "json" {
		views := make([]statusEntry, 0, len(recents))
		for _, e := range recents {
			view := statusEntry{
				Project:     e.Project,
				Description: e.Description,
				Start:       e.Start.Format(time.RFC3339),
				Open:        e.Open(),
			}
			if d, ok := e.Duration(); ok {
				view.End = e.End.Format(time.RFC3339)
				view.Duration = d.String()
			}
			views = append(views, view)
		}
		return formatter.Success(views)
	}

	const stamp = "2006-01-02 15:04:05"
	for _, e := range recents {
		if e.Open() {
			fmt.Fprintf(formatter.Writer, "%-20s: %s <- clocked in\n", e.Project, e.Start.Format(stamp))
		} else {
			fmt.Fprintf(formatter.Writer, "%-20s: %s - %s\n", e.Project, e.Start.Format(stamp), e.End.Format(stamp))
		}
		if e.Description != "" {
			fmt.Fprintf(formatter.Writer, "└──%s\n", e.Description)
		}
	}
	return nil
}
