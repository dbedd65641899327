// Package service owns the mounted dashboard view sessions and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/okian/cowin/internal/domain/dashboard"
	"github.com/okian/cowin/internal/domain/model"
	"github.com/okian/cowin/internal/domain/session"
	"github.com/okian/cowin/internal/domain/status"
	"github.com/okian/cowin/pkg/logger"
	"github.com/okian/cowin/pkg/metrics"
)

const fetchKey = "vaccination"

// Service mounts one dashboard controller per view session and keeps them
// until they are closed, evicted, or expire.
type Service struct {
	mu sync.RWMutex

	fetcher  dashboard.Fetcher
	sessions session.Registry
	group    singleflight.Group

	// Configuration
	sessionTTL   time.Duration
	maxSessions  int
	reapInterval time.Duration
	now          func() time.Time

	// State
	started bool
	baseCtx context.Context
	cancel  context.CancelFunc
	stopCh  chan struct{}
	mounts  sync.WaitGroup
	reaper  sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessionTTL:   5 * time.Minute,
		maxSessions:  10_000,
		reapInterval: 30 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the session registry and launches the expiry loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.fetcher == nil {
		return ErrNoFetcher
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	s.sessions = session.NewInMemoryRegistry(session.WithMaxSize(s.maxSessions))
	s.baseCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.stopCh = make(chan struct{})

	s.reaper.Add(1)
	go s.reapLoop(s.stopCh)

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Duration("sessionTTL", s.sessionTTL),
		logger.Int("maxSessions", s.maxSessions),
		logger.Duration("reapInterval", s.reapInterval),
	)
	return nil
}

// Stop unmounts every session and waits for in-flight mounts to return.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping dashboard service...")

	close(s.stopCh)
	s.started = false
	drained := s.sessions.Drain(ctx)
	s.mu.Unlock()

	s.reaper.Wait()
	s.unmountAll(drained, metrics.SessionClosed)
	s.cancel()
	s.mounts.Wait()

	s.logger.Info(ctx, "dashboard service stopped", logger.Int("unmounted", len(drained)))
}

// OpenView mounts a new view session and returns its ID. The fetch runs in
// the background; the caller renders whatever state the session is in.
func (s *Service) OpenView(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return "", ErrNotStarted
	}

	id := uuid.NewString()
	ctrl := dashboard.NewController(s.fetcher,
		dashboard.WithLogger(s.logger.Named("dashboard")),
		dashboard.WithTransitionHook(func(from, to status.FetchStatus) {
			metrics.RecordStatusTransition(from.String(), to.String())
		}),
	)

	evicted := s.sessions.Add(ctx, session.Entry{ID: id, Controller: ctrl, Created: s.now()})
	s.unmountAll(evicted, metrics.SessionEvicted)
	metrics.RecordSessionOpened()
	metrics.UpdateActiveSessions(int(s.sessions.Size()))

	s.mounts.Add(1)
	go func() {
		defer s.mounts.Done()
		if err := ctrl.Mount(s.baseCtx); err != nil {
			s.logger.Warn(s.baseCtx, "view session mount rejected", logger.String("session", id), logger.Error(err))
		}
	}()

	s.logger.Debug(ctx, "view session opened", logger.String("session", id))
	return id, nil
}

// View returns the current state of a view session.
func (s *Service) View(ctx context.Context, id string) (dashboard.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return dashboard.State{}, ErrNotStarted
	}
	e, ok := s.sessions.Get(ctx, id)
	if !ok {
		return dashboard.State{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e.Controller.State(), nil
}

// CloseView unmounts a view session. A fetch still running for it completes
// but its result is discarded.
func (s *Service) CloseView(ctx context.Context, id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	e, ok := s.sessions.Remove(ctx, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.unmountAll([]session.Entry{e}, metrics.SessionClosed)
	metrics.UpdateActiveSessions(int(s.sessions.Size()))
	s.logger.Debug(ctx, "view session closed", logger.String("session", id))
	return nil
}

// FetchVaccinationData fetches the mapped data directly. Concurrent callers
// share one upstream request; nothing is kept once it returns.
func (s *Service) FetchVaccinationData(ctx context.Context) (model.VaccinationData, error) {
	s.mu.RLock()
	fetcher, log := s.fetcher, s.logger
	s.mu.RUnlock()
	if fetcher == nil {
		return model.VaccinationData{}, ErrNoFetcher
	}

	resultChan := s.group.DoChan(fetchKey, func() (interface{}, error) {
		return fetcher.FetchVaccinationData(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return model.VaccinationData{}, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return model.VaccinationData{}, res.Err
		}
		if res.Shared && log != nil {
			log.Debug(ctx, "shared upstream fetch")
		}
		return res.Val.(model.VaccinationData), nil
	}
}

// ReapExpired unmounts sessions older than the TTL and returns how many were
// removed.
func (s *Service) ReapExpired(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	expired := s.sessions.Expire(ctx, s.now().Add(-s.sessionTTL))
	if len(expired) == 0 {
		return 0
	}
	s.unmountAll(expired, metrics.SessionExpired)
	metrics.UpdateActiveSessions(int(s.sessions.Size()))
	s.logger.Debug(ctx, "expired view sessions", logger.Int("count", len(expired)))
	return len(expired)
}

func (s *Service) reapLoop(stop <-chan struct{}) {
	defer s.reaper.Done()
	ticker := time.NewTicker(s.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.ReapExpired(context.Background())
		}
	}
}

func (s *Service) unmountAll(entries []session.Entry, reason string) {
	for _, e := range entries {
		e.Controller.Unmount()
		metrics.RecordSessionClosed(reason)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"maxSessions":       s.maxSessions,
		"sessionTTLSeconds": int(s.sessionTTL / time.Second),
	}
	if s.started {
		active := int(s.sessions.Size())
		stats["activeSessions"] = active
		metrics.UpdateActiveSessions(active)
	}
	return stats
}
