// Package main implements the vkconform CLI application.
package main

import (
	"log/slog"
	"os"

	"github.com/darkace1998/vkconform/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	subArgs := os.Args[2:]

	switch cmd {
	case "run":
		commands.Run(subArgs)
	case "list":
		commands.List(subArgs)
	case "results":
		commands.Results(subArgs)
	case "detect":
		commands.Detect(subArgs)
	case "validate":
		commands.Validate(subArgs)
	case "help", "--help", "-h":
		printUsage()
	default:
		slog.Error("Unknown command", "command", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	slog.Info(`
vkconform - Vulkan image sample-count conformance checker

Usage:
  vkconform <command> [options]

Commands:
  run [options]          Run the conformance grid against a device
  list [options]         Print the enumerated case grid
  results [options]      Query persisted results
  detect [options]       Detect Vulkan devices and sample-count limits
  validate [options]     Validate a configuration file

Run Options:
  --config <path>        Config file (YAML)
  --db <path>            Results database path (overrides config)
  --filter <substr>      Only run cases whose identifier contains substr
  --device <name>        Preferred device name (overrides config)

List Options:
  --variant <tag>        Filter by check variant tag
  --filter <substr>      Filter by case identifier substring
  --format <format>      Output format: table, json, csv

Results Options:
  --db <path>            Results database path (default: vkconform.db)
  --run <id>             Restrict to one run ID
  --failed               Show only failed cases
  --runs                 List runs instead of case results
  --format <format>      Output format: table, json, csv

Validate Options:
  --file <path>          Path to config file (required)

Examples:
  vkconform list --variant USAGE_FLAGS --format json
  vkconform run --config config.yaml
  vkconform run --filter 2d/optimal/r8g8b8a8_unorm
  vkconform results --failed
  vkconform detect
  `)
}
