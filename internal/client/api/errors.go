package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers network failures and request timeouts.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned after a 401 response. By the time the
	// caller sees it the session has already been torn down.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a non-2xx status and the backend's detail message, e.g.
// a validation failure rendered inline next to a form.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}
