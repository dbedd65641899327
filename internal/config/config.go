// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and COWIN_ env vars.
// - Errors returned by Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

import "time"

// DefaultAPIURL is the vaccination data endpoint the dashboard reads from.
const DefaultAPIURL = "https://apis.ccbp.in/covid-vaccination-data"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIURL is the upstream vaccination data endpoint.
	APIURL string `koanf:"api_url" validate:"required,url"`

	// LogoURL and FailureImageURL are the images shown in the page header
	// and in the failure view.
	LogoURL         string `koanf:"logo_url" validate:"omitempty,url"`
	FailureImageURL string `koanf:"failure_image_url" validate:"omitempty,url"`

	// SessionTTLSeconds bounds how long a mounted dashboard view is kept.
	SessionTTLSeconds int `koanf:"session_ttl_seconds" validate:"gt=0"`

	// MaxSessions caps the number of mounted dashboard views.
	MaxSessions int `koanf:"max_sessions" validate:"gt=0"`

	// LoadingRefreshSeconds is the reload interval of the loading page.
	LoadingRefreshSeconds int `koanf:"loading_refresh_seconds" validate:"gt=0,lte=60"`

	// APIRateLimitPerMinute caps /api requests per client IP.
	APIRateLimitPerMinute int `koanf:"api_rate_limit_per_minute" validate:"gt=0"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		APIURL:                DefaultAPIURL,
		LogoURL:               "https://assets.ccbp.in/frontend/react-js/cowin-logo.png",
		FailureImageURL:       "https://assets.ccbp.in/frontend/react-js/api-failure-view.png",
		SessionTTLSeconds:     300,
		MaxSessions:           10_000,
		LoadingRefreshSeconds: 1,
		APIRateLimitPerMinute: 60,
	}
}

// SessionTTL returns SessionTTLSeconds as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}
