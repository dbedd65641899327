package session

import "errors"

// ErrNotFound is returned for unknown or expired view sessions.
var ErrNotFound = errors.New("view session not found")
