package dashboard

import "errors"

var (
	// ErrAlreadyMounted is returned by a second Mount call.
	ErrAlreadyMounted = errors.New("dashboard already mounted")
	// ErrUnmounted is returned when mounting a controller that was removed.
	ErrUnmounted = errors.New("dashboard unmounted")
)
