package cowin

import (
	"errors"
	"fmt"
)

// ErrFetch marks a non-OK response from the vaccination endpoint.
var ErrFetch = errors.New("vaccination data fetch failed")

// FetchError is returned when the upstream answers with a non-2xx status.
// The response body is never read in that case.
type FetchError struct {
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: upstream responded %s", ErrFetch.Error(), e.Status)
}

// Is lets errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
