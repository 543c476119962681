package bitbucket

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the Bitbucket API
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bitbucket API returned status %d for %s: %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("bitbucket API returned status %d for %s", e.StatusCode, e.URL)
}

// IsRateLimited reports whether err is a 429 from Bitbucket
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}

// IsUnauthorized reports whether Bitbucket rejected the caller's credentials
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsNotFound reports whether the workspace, repository or commit does not exist
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
