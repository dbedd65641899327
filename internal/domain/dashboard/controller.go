// Package dashboard tracks the fetch lifecycle of one mounted dashboard.
package dashboard

import (
	"context"
	"sync"

	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/internal/domain/status"
	"github.com/okian/cowin/pkg/logger"
)

// Fetcher loads the vaccination data for a mount.
type Fetcher interface {
	FetchVaccinationData(ctx context.Context) (model.VaccinationData, error)
}

// State is a snapshot of the controller. Data is only meaningful in Success
// and Err only in Failure.
type State struct {
	Status status.FetchStatus
	Data   model.VaccinationData
	Err    error
}

// Controller drives a single fetch attempt through Idle -> Loading ->
// Success | Failure.
type Controller struct {
	fetcher Fetcher
	log     logger.Logger
	hooks   []TransitionHook

	mu        sync.RWMutex
	state     State
	mounted   bool
	unmounted bool
	done      chan struct{}
	doneOnce  sync.Once
}

// NewController returns an Idle controller for fetcher.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Named("dashboard")
	}
	return c
}

// Mount starts the attempt and blocks until the fetch resolves. It issues
// exactly one fetch per controller.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.unmounted:
		c.mu.Unlock()
		return ErrUnmounted
	case c.mounted:
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.transitionLocked(status.Loading, model.VaccinationData{}, nil)
	c.mu.Unlock()
	c.notify(status.Idle, status.Loading)

	data, err := c.fetcher.FetchVaccinationData(ctx)
	c.resolve(ctx, data, err)
	return nil
}

func (c *Controller) resolve(ctx context.Context, data model.VaccinationData, err error) {
	defer c.closeDone()

	to := status.Success
	if err != nil {
		to = status.Failure
		data = model.VaccinationData{}
	}

	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		c.log.Debug(ctx, "fetch resolved after unmount, result discarded", logger.String("status", to.String()))
		return
	}
	from := c.state.Status
	if !c.transitionLocked(to, data, err) {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.notify(from, to)

	if err != nil {
		c.log.Error(ctx, "vaccination fetch failed", logger.Error(err))
	}
}

// transitionLocked applies a legal transition. Callers hold c.mu.
func (c *Controller) transitionLocked(to status.FetchStatus, data model.VaccinationData, err error) bool {
	if !status.CanTransition(c.state.Status, to) {
		return false
	}
	c.state = State{Status: to, Data: data, Err: err}
	return true
}

func (c *Controller) notify(from, to status.FetchStatus) {
	for _, h := range c.hooks {
		h(from, to)
	}
}

func (c *Controller) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Unmount removes the controller. An in-flight fetch is not cancelled but its
// result will not be applied. An unmounted controller that was never mounted
// resolves immediately.
func (c *Controller) Unmount() {
	c.mu.Lock()
	c.unmounted = true
	mounted := c.mounted
	c.mu.Unlock()
	if !mounted {
		c.closeDone()
	}
}

// Unmounted reports whether Unmount was called.
func (c *Controller) Unmounted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unmounted
}

// Done is closed once the attempt is over, whether applied or discarded.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}
