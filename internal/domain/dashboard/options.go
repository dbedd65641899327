package dashboard

import (
	"github.com/okian/cowin/internal/domain/status"
	"github.com/okian/cowin/pkg/logger"
)

// Option configures a Controller.
type Option func(*Controller)

// TransitionHook observes every applied status change.
type TransitionHook func(from, to status.FetchStatus)

// WithTransitionHook registers a hook called after each transition.
func WithTransitionHook(h TransitionHook) Option {
	return func(c *Controller) {
		if h != nil {
			c.hooks = append(c.hooks, h)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}
