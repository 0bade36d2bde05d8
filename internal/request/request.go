package request

import (
	"io"
	"regexp"

	"github.com/shravanasati/webfetch/internal/headers"
)

const (
	MethodGet  = "GET"
	MethodHead = "HEAD"
)

const protocol = "HTTP/1.1"

var crlf = []byte("\r\n")

type RequestLine struct {
	Method      string
	Target      string
	HTTPVersion string
}

// Request is the head of an inbound request. Bodies are never read.
type Request struct {
	RequestLine
	Headers *headers.Headers
}

// the method is any token, unknown verbs are rejected later by the dispatcher
var requestLineRegex = regexp.MustCompile(`^([a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+) (\S+) HTTP/(1\.[01])$`)

func parseRequestLine(reqLine []byte) (*RequestLine, error) {
	matches := requestLineRegex.FindSubmatch(reqLine)
	if len(matches) != 4 {
		return nil, ErrIncorrectRequestLine
	}

	return &RequestLine{
		Method:      string(matches[1]),
		Target:      string(matches[2]),
		HTTPVersion: string(matches[3]),
	}, nil
}

// ReadHead reads the request line and the field lines up to and including
// the blank line that ends them. It returns as soon as the blank line is
// seen and never waits for the peer to close.
func ReadHead(reader io.Reader) (*Request, error) {
	scanner := newHeadScanner(reader)

	var requestLine *RequestLine
	hs := headers.NewHeaders()

	for scanner.Scan() {
		token := scanner.Bytes()
		if requestLine == nil {
			rl, err := parseRequestLine(token)
			if err != nil {
				return nil, err
			}
			requestLine = rl
			continue
		}

		if len(token) == 0 {
			// blank line, head is over
			return &Request{RequestLine: *requestLine, Headers: hs}, nil
		}

		if err := hs.ParseLine(token); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if requestLine == nil {
		return nil, ErrEmptyRequest
	}
	return nil, ErrIncompleteRequest
}
