package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/okian/cowin/pkg/logger"
)

// ErrDashboardFailed is returned when the dashboard settles on the failure view.
var ErrDashboardFailed = errors.New("dashboard rendered the failure view")

var statusAttr = regexp.MustCompile(`data-status="([A-Z_]+)"`)

// Run executes the complete probe.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting cowin dashboard probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, cfg); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Open a dashboard and wait for it to settle
	state, err := probeDashboard(ctx, cfg)
	stats.DashboardState = state
	if err != nil {
		return stats, fmt.Errorf("dashboard probe failed: %w", err)
	}

	// Step 3: Concurrent JSON fetches
	results := fetchConcurrently(ctx, cfg, stats)

	// Step 4: Verify results
	if err := verifyResults(ctx, results, stats); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "probe completed successfully",
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.String("dashboard", stats.DashboardState),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	client := newHTTPClient(cfg.Timeout)
	status, _, _, err := client.Do(ctx, http.MethodGet, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status %d", status)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// probeDashboard mounts a view session, polls its page until the fetch
// resolves and then closes it. It returns the final status.
func probeDashboard(ctx context.Context, cfg *Config) (string, error) {
	client := newHTTPClient(cfg.Timeout)
	status, header, _, err := client.Do(ctx, http.MethodGet, cfg.BaseURL+"/")
	if err != nil {
		return "", err
	}
	location := header.Get("Location")
	if status != http.StatusSeeOther || location == "" {
		return "", fmt.Errorf("expected redirect from /, got status %d", status)
	}
	page := cfg.BaseURL + location

	deadline := time.Now().Add(PollTimeout)
	state := ""
	for {
		code, _, body, err := client.Do(ctx, http.MethodGet, page)
		if err != nil {
			return state, err
		}
		if code != http.StatusOK {
			return state, fmt.Errorf("dashboard page returned status %d", code)
		}
		if m := statusAttr.FindSubmatch(body); m != nil {
			state = string(m[1])
		}
		if state == "SUCCESS" || state == "FAILURE" {
			break
		}
		if time.Now().After(deadline) {
			return state, fmt.Errorf("dashboard still %s after %s", state, PollTimeout)
		}
		select {
		case <-ctx.Done():
			return state, ctx.Err()
		case <-time.After(PollInterval):
		}
	}

	if code, _, _, err := client.Do(ctx, http.MethodDelete, page); err != nil || code != http.StatusNoContent {
		logger.Get().Warn(ctx, "failed to close dashboard session", logger.String("page", page), logger.Int("status", code))
	}
	logger.Get().Info(ctx, "dashboard settled", logger.String("status", state))
	if state == "FAILURE" {
		return state, ErrDashboardFailed
	}
	return state, nil
}
