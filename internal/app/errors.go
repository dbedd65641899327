package service

import (
	"errors"

	"github.com/okian/cowin/internal/domain/session"
)

var (
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrNoFetcher is returned by Start when no data fetcher was configured.
	ErrNoFetcher = errors.New("no vaccination data fetcher configured")
	// ErrSessionNotFound is returned for unknown or expired view sessions.
	ErrSessionNotFound = session.ErrNotFound
)
