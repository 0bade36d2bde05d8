package server

import (
	"errors"
	"fmt"
)

// ErrServerClosed is returned by the accept loop once Close has been called.
var ErrServerClosed = errors.New("server closed")

// ErrNotListening is returned by Addr and serve before Listen succeeded.
var ErrNotListening = errors.New("server is not listening")

// ListenError is returned when the listening socket cannot be set up.
type ListenError struct {
	Addr string
	Err  error
}

// Error implements the [builtin.error] interface.
func (e *ListenError) Error() string {
	return fmt.Sprintf("failed to listen on %s: %s", e.Addr, e.Err)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *ListenError) Unwrap() error {
	return e.Err
}
