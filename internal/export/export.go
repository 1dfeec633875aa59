// Package export renders a timesheet log for external consumption.
//
// Export is a pure function of the log: no clocks, no maps in serialized
// order, no hidden state. Exporting the same log twice yields byte-identical
// output, which the golden tests pin.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/readrawhex/logh/internal/timesheet"
)

// Format selects the export serialization.
type Format string

const (
	// FormatCSV renders one row per entry with a header row.
	FormatCSV Format = "csv"

	// FormatJSON renders an indented JSON array of entry objects.
	FormatJSON Format = "json"
)

// ValidFormats lists the accepted export formats.
var ValidFormats = []string{string(FormatCSV), string(FormatJSON)}

// openMarker is rendered in place of an end time for open entries.
const openMarker = "open"

// timeLayout is the exported timestamp format.
const timeLayout = time.RFC3339

// Export serializes all entries of the log in insertion (chronological)
// order. Each entry carries project, description, start, end (or the
// "open" marker), and duration; duration is omitted for open entries.
func Export(log timesheet.Log, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return exportCSV(log)
	case FormatJSON:
		return exportJSON(log)
	default:
		return nil, fmt.Errorf("unknown export format %q: must be one of %v", format, ValidFormats)
	}
}

func exportCSV(log timesheet.Log) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"project", "description", "start", "end", "duration"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range log {
		end := openMarker
		duration := ""
		if d, ok := entry.Duration(); ok {
			end = entry.End.Format(timeLayout)
			duration = d.String()
		}
		record := []string{
			entry.Project,
			entry.Description,
			entry.Start.Format(timeLayout),
			end,
			duration,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// jsonEntry is the serialized shape of one entry. Field order here is the
// field order in the output.
type jsonEntry struct {
	Project     string `json:"project"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Duration    string `json:"duration,omitempty"`
}

func exportJSON(log timesheet.Log) ([]byte, error) {
	entries := make([]jsonEntry, 0, len(log))
	for _, entry := range log {
		je := jsonEntry{
			Project:     entry.Project,
			Description: entry.Description,
			Start:       entry.Start.Format(timeLayout),
			End:         openMarker,
		}
		if d, ok := entry.Duration(); ok {
			je.End = entry.End.Format(timeLayout)
			je.Duration = d.String()
		}
		entries = append(entries, je)
	}

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return append(out, '\n'), nil
}
