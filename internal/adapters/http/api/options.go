package api

import (
	"github.com/okian/cowin/internal/view"
	"github.com/okian/cowin/pkg/logger"
)

// serverConfig holds values only needed while building handlers.
type serverConfig struct {
	page view.Page
}

// Option configures a Server.
type Option func(*Server, *serverConfig)

// WithPage sets the asset URLs and refresh delay used for dashboard pages.
func WithPage(p view.Page) Option {
	return func(_ *Server, c *serverConfig) {
		c.page = p
	}
}

// WithRateLimit sets the per-IP request budget per minute for /api routes.
func WithRateLimit(perMinute int) Option {
	return func(s *Server, _ *serverConfig) {
		if perMinute > 0 {
			s.rateLimit = perMinute
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server, _ *serverConfig) {
		if l != nil {
			s.log = l
		}
	}
}
