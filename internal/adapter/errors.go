package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")
	ErrServerUnavailable   = errors.New("server unavailable")
)

// ResponseError is a non-2xx reply. It unwraps to the sentinel matching
// StatusCode and carries the server's message, if the body had one.
type ResponseError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the "message" the server sent with a failed reply,
// or "" when err carries none.
func ServerMessage(err error) string {
	var responseErr *ResponseError
	if errors.As(err, &responseErr) {
		return responseErr.Message
	}
	return ""
}
