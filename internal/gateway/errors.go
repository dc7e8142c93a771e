package gateway

import (
	"errors"
	"fmt"
)

// APIError is an application-level failure: the service was reachable
// but rejected the request. Detail carries the service's error text when
// the response included one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("assistant service error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("assistant service returned status %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError if one is in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport reports whether err is a transport failure (the service
// could not be reached at all) rather than an application error.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	_, ok := AsAPIError(err)
	return !ok
}
