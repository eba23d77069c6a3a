package commands

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/darkace1998/vkconform/commands/formatter"
	"github.com/darkace1998/vkconform/internal/cases"
)

// List prints the enumerated case grid without touching a device.
func List(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	variant := fs.String("variant", "", "Filter by check variant tag")
	filter := fs.String("filter", "", "Filter by case identifier substring")
	format := fs.String("format", "table", "Output format: table, json, csv")
	_ = fs.Parse(args)

	if *variant != "" {
		if _, err := cases.ParseSubtest(*variant); err != nil {
			slog.Error("Invalid variant", "error", err)
			os.Exit(1)
		}
	}

	all := cases.Enumerate()

	type listEntry struct {
		ID      string `json:"id"`
		Format  string `json:"format"`
		Subtest string `json:"subtest"`
	}

	var entries []listEntry
	var rows [][]string
	for _, c := range all {
		if *variant != "" && c.Subtest.String() != *variant {
			continue
		}
		if *filter != "" && !strings.Contains(c.ID, *filter) {
			continue
		}
		entries = append(entries, listEntry{ID: c.ID, Format: c.Format.Name(), Subtest: c.Subtest.String()})
		rows = append(rows, []string{c.ID, c.Format.Name(), c.Subtest.String()})
	}

	out := formatter.New(os.Stdout, formatter.ParseFormat(*format))
	if err := out.Print([]string{"CASE", "FORMAT", "SUBTEST"}, rows, entries); err != nil {
		slog.Error("Failed to print cases", "error", err)
		os.Exit(1)
	}
	slog.Info("Enumerated cases", "total", len(all), "shown", len(rows))
}
