// Package formatter renders conformance runs and case results for the CLI
// in table, JSON or CSV form.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/darkace1998/vkconform/internal/db"
)

// Format represents an output format type
type Format string

const (
	// FormatTable is the default table format
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON
	FormatJSON Format = "json"
	// FormatCSV outputs data as CSV
	FormatCSV Format = "csv"
)

// ParseFormat parses a format string into a Format type
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "table", "":
		return FormatTable
	default:
		return FormatTable
	}
}

// Headers for the run and result tables.
var (
	RunHeaders    = []string{"RUN", "DEVICE", "STARTED", "FINISHED", "PASSED", "FAILED", "SKIPPED"}
	ResultHeaders = []string{"RUN", "CASE", "SUBTEST", "STATUS", "EXPECTED", "ACTUAL", "MESSAGE"}
)

const timeLayout = "2006-01-02 15:04:05"

// Timestamp renders an optional time, "" when unset.
func Timestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

// RunRows flattens persisted runs into table rows matching RunHeaders.
// An unfinished run gets an empty FINISHED cell.
func RunRows(runs []db.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID, r.DeviceName,
			r.StartedAt.Format(timeLayout), Timestamp(r.FinishedAt),
			strconv.Itoa(r.Passed), strconv.Itoa(r.Failed), strconv.Itoa(r.Skipped),
		})
	}
	return rows
}

// ResultRows flattens persisted case outcomes into table rows matching
// ResultHeaders.
func ResultRows(results []db.Result) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.RunID, r.CaseID, r.Subtest, r.Status, r.Expected, r.Actual, r.Message,
		})
	}
	return rows
}

// Output handles formatted output for the CLI
type Output struct {
	format Format
	writer io.Writer
}

// New creates a new Output formatter
func New(w io.Writer, format Format) *Output {
	return &Output{
		format: format,
		writer: w,
	}
}

// PrintJSON outputs data as formatted JSON
func (o *Output) PrintJSON(data any) error {
	encoder := json.NewEncoder(o.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// PrintTable outputs data as a formatted table
func (o *Output) PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(o.writer, headers, widths)
	printSeparator(o.writer, widths)
	for _, row := range rows {
		printRow(o.writer, row, widths)
	}
}

// PrintCSV outputs data as CSV
func (o *Output) PrintCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(o.writer)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// Print outputs data in the configured format
func (o *Output) Print(headers []string, rows [][]string, jsonData any) error {
	switch o.format {
	case FormatJSON:
		return o.PrintJSON(jsonData)
	case FormatCSV:
		return o.PrintCSV(headers, rows)
	default:
		o.PrintTable(headers, rows)
		return nil
	}
}

// PrintRuns outputs persisted runs in the configured format.
func (o *Output) PrintRuns(runs []db.Run) error {
	return o.Print(RunHeaders, RunRows(runs), runs)
}

// PrintResults outputs persisted case outcomes in the configured format.
func (o *Output) PrintResults(results []db.Result) error {
	return o.Print(ResultHeaders, ResultRows(results), results)
}

func printRow(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			_, _ = fmt.Fprintf(w, " | ")
		}
		width := 10
		if i < len(widths) {
			width = widths[i]
		}
		_, _ = fmt.Fprintf(w, "%-*s", width, cell)
	}
	_, _ = fmt.Fprintln(w)
}

func printSeparator(w io.Writer, widths []int) {
	for i, width := range widths {
		if i > 0 {
			_, _ = fmt.Fprintf(w, "-+-")
		}
		_, _ = fmt.Fprintf(w, "%s", strings.Repeat("-", width))
	}
	_, _ = fmt.Fprintln(w)
}
