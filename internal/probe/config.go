// Package probe implements a smoke test against a running dashboard service.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of /api/vaccination calls
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Enable verbose logging
}

// Stats holds the outcome of a probe run.
type Stats struct {
	Requests       int
	Succeeded      int
	Failed         int
	DistinctBodies int
	DashboardState string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}
