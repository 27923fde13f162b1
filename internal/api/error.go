package api

import (
	"errors"
	"fmt"
)

// Error is the uniform failure signal for every backend call. Status 0 means
// the request never got a response (transport failure); anything else is the
// HTTP status the server answered with. Op is the semantic description the
// caller supplied ("fetch jobs"), not the raw response body.
type Error struct {
	Op     string
	Status int
	cause  error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: request failed: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.cause }

// IsStatus reports whether err is a backend *Error with the given status.
func IsStatus(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == status
}

// IsNetwork reports whether err is a transport-level failure (no response).
func IsNetwork(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == 0
}
