package request

import "errors"

var ErrIncorrectRequestLine = errors.New("incorrect request line")
var ErrIncompleteRequest = errors.New("incomplete request")

// ErrEmptyRequest is returned when the peer closes the connection before
// sending a single byte.
var ErrEmptyRequest = errors.New("empty request")
