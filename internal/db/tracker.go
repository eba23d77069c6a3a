// Package db persists conformance runs and per-case results in SQLite.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/darkace1998/vkconform/internal/cases"
	"github.com/darkace1998/vkconform/internal/runner"
	// SQLite driver for database/sql
	_ "github.com/mattn/go-sqlite3"
)

// Tracker manages run and result state in a SQLite database.
type Tracker struct {
	db *sql.DB
}

// Run is one persisted conformance run.
type Run struct {
	ID         string     `json:"id"`
	DeviceName string     `json:"device_name"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Passed     int        `json:"passed"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
}

// Result is one persisted case outcome.
type Result struct {
	RunID    string `json:"run_id"`
	CaseID   string `json:"case_id"`
	Subtest  string `json:"subtest"`
	Status   string `json:"status"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Message  string `json:"message,omitempty"`
}

// New creates a new database tracker instance
func New(dbPath string) (*Tracker, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tracker := &Tracker{db: db}
	if err := tracker.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return tracker, nil
}

func (t *Tracker) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		device_name TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP,
		passed INTEGER DEFAULT 0,
		failed INTEGER DEFAULT 0,
		skipped INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL,
		case_id TEXT NOT NULL,
		subtest TEXT NOT NULL,
		status TEXT NOT NULL,
		expected TEXT,
		actual TEXT,
		message TEXT,
		PRIMARY KEY (run_id, case_id),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);
	`

	_, err := t.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// CreateRun inserts a new run row.
func (t *Tracker) CreateRun(runID, deviceName string, startedAt time.Time) error {
	_, err := t.db.Exec(`
		INSERT INTO runs (id, device_name, started_at) VALUES (?, ?, ?)
	`, runID, deviceName, startedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final statistics for a run.
func (t *Tracker) FinishRun(runID string, stats runner.Stats) error {
	_, err := t.db.Exec(`
		UPDATE runs SET finished_at = ?, passed = ?, failed = ?, skipped = ?
		WHERE id = ?
	`, stats.Finished, stats.Passed, stats.Failed, stats.Skipped, runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordResult inserts one case outcome. Implements runner.Recorder.
func (t *Tracker) RecordResult(runID string, c cases.Case, o runner.Outcome) error {
	_, err := t.db.Exec(`
		INSERT OR REPLACE INTO results (
			run_id, case_id, subtest, status, expected, actual, message
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, c.ID, c.Subtest.String(), string(o.Status),
		o.Expected.String(), o.Actual.String(), o.Message)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// GetRun retrieves one run by id.
func (t *Tracker) GetRun(runID string) (*Run, error) {
	var run Run
	var finishedAt sql.NullTime

	err := t.db.QueryRow(`
		SELECT id, device_name, started_at, finished_at, passed, failed, skipped
		FROM runs WHERE id = ?
	`, runID).Scan(&run.ID, &run.DeviceName, &run.StartedAt, &finishedAt,
		&run.Passed, &run.Failed, &run.Skipped)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run row: %w", err)
	}

	if finishedAt.Valid {
		run.FinishedAt = &finishedAt.Time
	}
	return &run, nil
}

// ListRuns returns all runs, most recent first.
func (t *Tracker) ListRuns() ([]Run, error) {
	rows, err := t.db.Query(`
		SELECT id, device_name, started_at, finished_at, passed, failed, skipped
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var finishedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.DeviceName, &run.StartedAt, &finishedAt,
			&run.Passed, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListResults returns the results of a run, optionally restricted to
// failures. An empty runID selects every run.
func (t *Tracker) ListResults(runID string, failedOnly bool) ([]Result, error) {
	query := `
		SELECT run_id, case_id, subtest, status,
			COALESCE(expected, ''), COALESCE(actual, ''), COALESCE(message, '')
		FROM results WHERE 1=1`
	var args []any

	if runID != "" {
		query += " AND run_id = ?"
		args = append(args, runID)
	}
	if failedOnly {
		query += " AND status = ?"
		args = append(args, string(runner.StatusFail))
	}
	query += " ORDER BY run_id, case_id"

	rows, err := t.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.RunID, &res.CaseID, &res.Subtest, &res.Status,
			&res.Expected, &res.Actual, &res.Message); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}
