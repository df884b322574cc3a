package index

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch matches every failure to retrieve the index document.
	ErrFetch = errors.New("index fetch failed")

	// ErrInvalidIndex is returned when the index document cannot be decoded.
	ErrInvalidIndex = errors.New("invalid index document")
)

// FetchError describes a failed index retrieval. StatusCode is set when the
// server answered with a non-success status, Err when the transport or the
// filesystem failed.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching index %s: unexpected status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("fetching index %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
