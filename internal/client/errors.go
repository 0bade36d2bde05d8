package client

import "fmt"

// TransportError reports a socket level failure: a refused connection, a
// host that does not resolve, a reset. Timeouts are not reported this way.
type TransportError struct {
	Op   string
	Addr string
	Err  error
}

// Error implements the [builtin.error] interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Addr, e.Err)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e *TransportError) Unwrap() error {
	return e.Err
}
