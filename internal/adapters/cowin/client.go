// Package cowin fetches vaccination statistics from the CoWIN data endpoint.
package cowin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/pkg/logger"
	"github.com/okian/cowin/pkg/metrics"
)

// DefaultURL is the public vaccination data endpoint.
const DefaultURL = "https://apis.ccbp.in/covid-vaccination-data"

// Client issues a single GET per call. It never retries and has no timeout
// of its own; cancellation comes from the caller's context.
type Client struct {
	url  string
	http *http.Client
	log  logger.Logger
}

// New creates a Client for DefaultURL unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		url:  DefaultURL,
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("cowin")
	}
	return c
}

// URL returns the endpoint the client requests.
func (c *Client) URL() string { return c.url }

// FetchVaccinationData requests the endpoint and maps the response. A non-OK
// status yields a *FetchError; transport and decode failures are wrapped.
func (c *Client) FetchVaccinationData(ctx context.Context) (model.VaccinationData, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return model.VaccinationData{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(ctx, metrics.OutcomeTransportError, start)
		return model.VaccinationData{}, fmt.Errorf("request %s: %w", c.url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn(ctx, "failed to close response body", logger.Error(cerr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.observe(ctx, metrics.OutcomeHTTPError, start)
		return model.VaccinationData{}, &FetchError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var body Wire
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.observe(ctx, metrics.OutcomeDecodeError, start)
		return model.VaccinationData{}, fmt.Errorf("decode vaccination data: %w", err)
	}

	data := Remap(body)
	c.observe(ctx, metrics.OutcomeSuccess, start)
	c.log.Debug(ctx, "vaccination data fetched",
		logger.Int("days", len(data.Days)),
		logger.Int("age_groups", len(data.ByAge)),
		logger.Int("genders", len(data.ByGender)))
	return data, nil
}

func (c *Client) observe(ctx context.Context, outcome string, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordFetch(outcome, float64(elapsed.Microseconds())/1000)
	if outcome != metrics.OutcomeSuccess {
		c.log.Warn(ctx, "vaccination fetch failed",
			logger.String("url", c.url),
			logger.String("outcome", outcome),
			logger.Duration("elapsed", elapsed))
	}
}
