package commands

import (
	"flag"
	"log/slog"
	"os"

	"github.com/darkace1998/vkconform/internal/config"
)

// Validate validates a configuration file.
func Validate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("file", "", "Path to config file (required)")
	_ = fs.Parse(args)

	if *configPath == "" {
		slog.Error("Config file path is required")
		slog.Info("Usage: vkconform validate --file <config-file>")
		os.Exit(1)
	}

	if _, err := config.Load(*configPath); err != nil {
		slog.Error("Config file is invalid", "path", *configPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Config file is valid", "path", *configPath)
}
