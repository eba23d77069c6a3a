package commands

import (
	"flag"
	"log/slog"
	"os"

	"github.com/darkace1998/vkconform/commands/formatter"
	"github.com/darkace1998/vkconform/internal/db"
)

// Results queries persisted case outcomes from the results database.
func Results(args []string) {
	fs := flag.NewFlagSet("results", flag.ExitOnError)
	dbPath := fs.String("db", "vkconform.db", "Results database path")
	runID := fs.String("run", "", "Restrict to one run ID (default: all runs)")
	failed := fs.Bool("failed", false, "Show only failed cases")
	runs := fs.Bool("runs", false, "List runs instead of case results")
	format := fs.String("format", "table", "Output format: table, json, csv")
	_ = fs.Parse(args)

	tracker, err := db.New(*dbPath)
	if err != nil {
		slog.Error("Failed to open results database", "error", err, "path", *dbPath)
		os.Exit(1)
	}
	defer func() { _ = tracker.Close() }()

	out := formatter.New(os.Stdout, formatter.ParseFormat(*format))

	if *runs {
		displayRuns(tracker, out)
		return
	}
	displayResults(tracker, out, *runID, *failed)
}

func displayRuns(tracker *db.Tracker, out *formatter.Output) {
	allRuns, err := tracker.ListRuns()
	if err != nil {
		slog.Error("Failed to list runs", "error", err)
		os.Exit(1)
	}

	if err := out.PrintRuns(allRuns); err != nil {
		slog.Error("Failed to print runs", "error", err)
		os.Exit(1)
	}
}

func displayResults(tracker *db.Tracker, out *formatter.Output, runID string, failedOnly bool) {
	results, err := tracker.ListResults(runID, failedOnly)
	if err != nil {
		slog.Error("Failed to list results", "error", err)
		os.Exit(1)
	}

	if err := out.PrintResults(results); err != nil {
		slog.Error("Failed to print results", "error", err)
		os.Exit(1)
	}
}
