package probe

import (
	"fmt"
	"os"

	"github.com/okian/cowin/pkg/logger"
)

// SetupLogging initializes the global logger for the probe.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`CoWIN Dashboard Probe
=====================

Smoke test for a running dashboard service. It checks /healthz, opens a
dashboard and waits for it to settle, then calls /api/vaccination
concurrently and verifies every response is identical.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of /api/vaccination calls (default 20)
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/probe
  go run ./cmd/probe -url http://localhost:8080 -requests 50 -workers 8
`)
}
