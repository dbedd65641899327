// Package status defines the lifecycle of a dashboard data fetch.
package status

import (
	"errors"
	"fmt"
)

// FetchStatus tracks one fetch attempt. Exactly one value holds at a time.
type FetchStatus int

const (
	Idle FetchStatus = iota
	Loading
	Success
	Failure
)

// ErrUnknownStatus is returned when parsing an unrecognised status name.
var ErrUnknownStatus = errors.New("unknown fetch status")

var names = [...]string{
	Idle:    "INITIAL",
	Loading: "IN_PROGRESS",
	Success: "SUCCESS",
	Failure: "FAILURE",
}

func (s FetchStatus) String() string {
	if s < Idle || s > Failure {
		return fmt.Sprintf("FetchStatus(%d)", int(s))
	}
	return names[s]
}

// Terminal reports whether the attempt has resolved.
func (s FetchStatus) Terminal() bool {
	return s == Success || s == Failure
}

// MarshalText implements encoding.TextMarshaler.
func (s FetchStatus) MarshalText() ([]byte, error) {
	if s < Idle || s > Failure {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, int(s))
	}
	return []byte(names[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *FetchStatus) UnmarshalText(text []byte) error {
	p, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = p
	return nil
}

// Parse converts a status name back into a FetchStatus.
func Parse(name string) (FetchStatus, error) {
	for i, n := range names {
		if n == name {
			return FetchStatus(i), nil
		}
	}
	return Idle, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// CanTransition reports whether from -> to is a legal step. Transitions are
// monotonic: Idle -> Loading -> Success | Failure.
func CanTransition(from, to FetchStatus) bool {
	switch from {
	case Idle:
		return to == Loading
	case Loading:
		return to == Success || to == Failure
	default:
		return false
	}
}
