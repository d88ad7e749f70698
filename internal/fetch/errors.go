package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidURL is returned when the target is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid URL: must be an absolute http or https URL")

// StatusError is returned when the server answers with a status other than 200.
type StatusError struct {
	// URL is the requested address.
	URL string

	// StatusCode is the response status code.
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("website not accessible: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatusError reports whether err is or wraps a *StatusError and returns it.
func IsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
