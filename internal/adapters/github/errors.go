package github

import (
	"errors"
	"fmt"
)

// Sentinel kinds for lookup errors.
var (
	ErrBadRepoRef = errors.New("could not parse repository reference")
)

// HTTPError represents a non-200 response from the API.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}
