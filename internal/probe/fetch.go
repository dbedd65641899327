package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/pkg/logger"
)

// fetchResult is the outcome of one /api/vaccination call.
type fetchResult struct {
	status int
	body   []byte
	err    error
}

// fetchConcurrently issues cfg.Requests calls with cfg.Workers workers.
func fetchConcurrently(ctx context.Context, cfg *Config, stats *Stats) []fetchResult {
	log := logger.Get()
	log.Info(ctx, "fetching vaccination data", logger.Int("requests", cfg.Requests), logger.Int("workers", cfg.Workers))

	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/api/vaccination"
	results := make([]fetchResult, cfg.Requests)

	var done int64
	jobs := make(chan int, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				status, _, body, err := client.Do(ctx, http.MethodGet, url)
				results[idx] = fetchResult{status: status, body: body, err: err}
				n := atomic.AddInt64(&done, 1)
				if cfg.Verbose {
					log.Debug(ctx, "request finished", logger.Int("n", int(n)), logger.Int("status", status))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Requests; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	wg.Wait()

	stats.Requests = cfg.Requests
	for _, r := range results {
		if r.err == nil && r.status == http.StatusOK {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
	}
	return results
}

// verifyResults checks that every call succeeded with the same body and that
// no count is negative.
func verifyResults(ctx context.Context, results []fetchResult, stats *Stats) error {
	var (
		canonical [][]byte
		first     []byte
	)
	for i, r := range results {
		switch {
		case r.err != nil:
			return fmt.Errorf("request %d failed: %w", i, r.err)
		case r.status != http.StatusOK:
			return fmt.Errorf("request %d returned status %d: %s", i, r.status, bytes.TrimSpace(r.body))
		}

		var data model.VaccinationData
		if err := json.Unmarshal(r.body, &data); err != nil {
			return fmt.Errorf("request %d returned invalid JSON: %w", i, err)
		}
		if err := checkCounts(data); err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
		norm, err := json.Marshal(data)
		if err != nil {
			return err
		}
		if first == nil {
			first = norm
		}
		canonical = appendDistinct(canonical, norm)
	}
	stats.DistinctBodies = len(canonical)
	if len(canonical) > 1 {
		return fmt.Errorf("fetch is not idempotent: %d distinct responses", len(canonical))
	}
	logger.Get().Info(ctx, "responses verified", logger.Int("bytes", len(first)))
	return nil
}

func checkCounts(d model.VaccinationData) error {
	for _, day := range d.Days {
		if day.Dose1Count < 0 || day.Dose2Count < 0 {
			return fmt.Errorf("negative dose count on %s", day.Date)
		}
	}
	for _, a := range d.ByAge {
		if a.Count < 0 {
			return fmt.Errorf("negative count for age %s", a.AgeRange)
		}
	}
	for _, g := range d.ByGender {
		if g.Count < 0 {
			return fmt.Errorf("negative count for gender %s", g.Gender)
		}
	}
	return nil
}

func appendDistinct(set [][]byte, b []byte) [][]byte {
	for _, s := range set {
		if bytes.Equal(s, b) {
			return set
		}
	}
	return append(set, b)
}
