package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readrawhex/logh/internal/timesheet"
)

// setupWorkspace points the command at a fresh database and an empty config
// directory so tests never touch the user's real timesheet.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "timesheet.db")
	t.Setenv(EnvTimesheet, dbPath)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

// runLogh executes the root command with the given args, capturing output.
func runLogh(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Contains(t, cmd.Use, "logh")
	assert.Contains(t, cmd.Long, "clock")
}

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()

	shorthands := map[string]string{
		"clock-in":        "i",
		"clock-out":       "o",
		"export":          "e",
		"delete-clock-in": "d",
	}
	for name, short := range shorthands {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s should exist", name)
		assert.Equal(t, short, flag.Shorthand)
	}

	for _, name := range []string{"start-time", "end-time", "export-format", "db"} {
		require.NotNil(t, cmd.Flags().Lookup(name), "flag %s should exist", name)
	}

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConflictingActionFlags(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "-i", "-o", "proj-a")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestUnparseableTimeFlag(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "-i", "proj-a", "--start-time", "yesterday-ish")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClockIn_RequiresProject(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "-i")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestClockScenario(t *testing.T) {
	setupWorkspace(t)

	// Clock in at T0.
	_, err := runLogh(t, "-i", "proj-a", "--start-time", "2026-08-20 09:00")
	require.NoError(t, err)

	// Status shows the open entry.
	out, err := runLogh(t)
	require.NoError(t, err)
	assert.Contains(t, out, "proj-a")
	assert.Contains(t, out, "2026-08-20 09:00:00")
	assert.Contains(t, out, "<- clocked in")

	// Clocking in again fails with ALREADY_OPEN, exit code 1.
	_, err = runLogh(t, "-i", "proj-b")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, timesheet.IsAlreadyOpen(err))

	// Clock out at T1.
	_, err = runLogh(t, "-o", "wrote", "docs", "--end-time", "2026-08-20 11:30")
	require.NoError(t, err)

	// Status shows the closed range and the description.
	out, err = runLogh(t)
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-20 09:00:00 - 2026-08-20 11:30:00")
	assert.Contains(t, out, "└──wrote docs")
	assert.NotContains(t, out, "clocked in")

	// Delete-last empties the log.
	_, err = runLogh(t, "-d")
	require.NoError(t, err)
	out, err = runLogh(t)
	require.NoError(t, err)
	assert.NotContains(t, out, "proj-a")
}

func TestClockOut_NoOpenEntry(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "-o")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, timesheet.IsNoOpenEntry(err))
}

func TestClockOut_StartOverride(t *testing.T) {
	setupWorkspace(t)

	_, err := runLogh(t, "-i", "proj-a", "--start-time", "2026-08-20 09:00")
	require.NoError(t, err)

	// Correct the mis-recorded clock-in on the way out.
	_, err = runLogh(t, "-o",
		"--start-time", "2026-08-20 10:00",
		"--end-time", "2026-08-20 11:00")
	require.NoError(t, err)

	out, err := runLogh(t)
	require.NoError(t, err)
	assert.Contains(t, out, "2026-08-20 10:00:00 - 2026-08-20 11:00:00")
	assert.NotContains(t, out, "09:00:00")
}

func TestFailure_JSONFormat(t *testing.T) {
	setupWorkspace(t)

	out, err := runLogh(t, "--format", "json", "-o")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// The failure is reported as a structured JSON response.
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NO_OPEN_ENTRY", resp.Error.Code)
}

func TestFailure_TextFormat(t *testing.T) {
	setupWorkspace(t)

	out, err := runLogh(t, "-d")
	require.Error(t, err)
	assert.Contains(t, out, "Error [EMPTY_LOG]:")
}

func TestClockOut_EndBeforeStart(t *testing.T) {
	setupWorkspace(t)

	_, err := runLogh(t, "-i", "proj-a", "--start-time", "2026-08-20 09:00")
	require.NoError(t, err)

	_, err = runLogh(t, "-o", "--end-time", "2026-08-20 08:00")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, timesheet.IsInvalidRange(err))
}

func TestDeleteLast_EmptyLog(t *testing.T) {
	setupWorkspace(t)
	_, err := runLogh(t, "-d")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, timesheet.IsEmptyLog(err))
}

func TestBackfillAndExport(t *testing.T) {
	dir := setupWorkspace(t)

	_, err := runLogh(t, "proj-b", "wrote", "docs",
		"--start-time", "2026-08-20T09:00:00",
		"--end-time", "2026-08-20T11:30:00")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "timesheet.csv")
	out, err := runLogh(t, "-e", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 1 entries")

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "proj-b,wrote docs,")
	assert.Contains(t, string(data), "2h30m0s")
}

func TestExport_JSONFormat(t *testing.T) {
	dir := setupWorkspace(t)

	_, err := runLogh(t, "proj-b", "wrote", "docs",
		"--start-time", "2026-08-20T09:00:00",
		"--end-time", "2026-08-20T11:30:00")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "timesheet.json")
	_, err = runLogh(t, "-e", exportPath, "--export-format", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "proj-b", entries[0]["project"])
	assert.Equal(t, "2h30m0s", entries[0]["duration"])
}

func TestExport_FilterByProject(t *testing.T) {
	dir := setupWorkspace(t)

	_, err := runLogh(t, "proj-a", "docs",
		"--start-time", "2026-08-20T09:00:00", "--end-time", "2026-08-20T10:00:00")
	require.NoError(t, err)
	_, err = runLogh(t, "proj-b", "review",
		"--start-time", "2026-08-20T11:00:00", "--end-time", "2026-08-20T12:00:00")
	require.NoError(t, err)

	exportPath := filepath.Join(dir, "filtered.csv")
	_, err = runLogh(t, "-e", exportPath, "proj-a")
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "proj-a")
	assert.NotContains(t, string(data), "proj-b")
}

func TestExport_DoesNotMutateLog(t *testing.T) {
	dir := setupWorkspace(t)

	_, err := runLogh(t, "-i", "proj-a", "--start-time", "2026-08-20 09:00")
	require.NoError(t, err)

	_, err = runLogh(t, "-e", filepath.Join(dir, "out.csv"))
	require.NoError(t, err)

	// The open entry is still there.
	out, err := runLogh(t)
	require.NoError(t, err)
	assert.Contains(t, out, "<- clocked in")
}

func TestBackfill_InvalidRange(t *testing.T) {
	setupWorkspace(t)

	_, err := runLogh(t, "proj-b", "oops",
		"--start-time", "2026-08-20T11:00:00",
		"--end-time", "2026-08-20T09:00:00")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, timesheet.IsInvalidRange(err))
}

func TestStatus_JSON(t *testing.T) {
	setupWorkspace(t)

	_, err := runLogh(t, "-i", "proj-a", "reviewing", "--start-time", "2026-08-20 09:00")
	require.NoError(t, err)

	out, err := runLogh(t, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var views []statusEntry
	require.NoError(t, json.Unmarshal(data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, "proj-a", views[0].Project)
	assert.True(t, views[0].Open)
}

func TestDatabaseFlagOverridesEnv(t *testing.T) {
	dir := setupWorkspace(t)
	altDB := filepath.Join(dir, "alt.db")

	_, err := runLogh(t, "--db", altDB, "-i", "proj-a")
	require.NoError(t, err)

	// The env-resolved database saw nothing.
	out, err := runLogh(t)
	require.NoError(t, err)
	assert.NotContains(t, out, "proj-a")

	// The alternate database has the open entry.
	out, err = runLogh(t, "--db", altDB)
	require.NoError(t, err)
	assert.Contains(t, out, "proj-a")
}
