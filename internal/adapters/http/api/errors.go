package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrRender   = errors.New("page render failed")
	ErrUpstream = errors.New("upstream unavailable")
)
