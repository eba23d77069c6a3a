package commands

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/darkace1998/vkconform/internal/cases"
	"github.com/darkace1998/vkconform/internal/config"
	"github.com/darkace1998/vkconform/internal/db"
	"github.com/darkace1998/vkconform/internal/logger"
	"github.com/darkace1998/vkconform/internal/oracle"
	"github.com/darkace1998/vkconform/internal/runner"
)

// Run executes the conformance grid against the selected device and
// persists the outcomes. Exits non-zero when any case fails.
func Run(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	dbPath := fs.String("db", "", "Results database path (overrides config)")
	filter := fs.String("filter", "", "Only run cases whose identifier contains this substring")
	device := fs.String("device", "", "Preferred device name (overrides config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*configPath)
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *filter != "" {
		cfg.Run.Filter = *filter
	}
	if *device != "" {
		cfg.Device.Preferred = *device
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	vk, err := oracle.Open(oracle.Options{
		PreferredDevice:  cfg.Device.Preferred,
		EnableValidation: cfg.Device.EnableValidation,
	})
	if err != nil {
		slog.Error("Failed to open device oracle", "error", err)
		os.Exit(1)
	}
	defer vk.Close()

	tracker, err := db.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to open results database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = tracker.Close() }()

	runID := newRunID()
	started := time.Now()
	if err := tracker.CreateRun(runID, vk.DeviceName(), started); err != nil {
		slog.Error("Failed to create run", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting conformance run",
		"run_id", runID,
		"device", vk.DeviceName(),
		"filter", cfg.Run.Filter,
	)

	stats, err := runner.New(vk).Run(runID, cases.Enumerate(), cfg.Run.Filter, tracker)
	if err != nil {
		slog.Error("Conformance run aborted", "run_id", runID, "error", err)
		os.Exit(1)
	}

	if err := tracker.FinishRun(runID, stats); err != nil {
		slog.Error("Failed to finalize run", "run_id", runID, "error", err)
		os.Exit(1)
	}

	slog.Info("Conformance run finished",
		"run_id", runID,
		"total", stats.Total(),
		"passed", stats.Passed,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"duration", stats.Duration().String(),
	)

	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// newRunID builds a run identifier from the hostname and a short random
// suffix, matching how worker IDs are generated elsewhere.
func newRunID() string {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "run"
	}
	return hostname + "-" + uuid.New().String()[:8]
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	return cfg
}
