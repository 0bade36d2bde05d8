package response

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/shravanasati/webfetch/internal/headers"
)

var statusLineRegex = regexp.MustCompile(`^HTTP/(1\.[01]) ([0-9]{3})(?: (.*))?$`)

var headTerminator = []byte("\r\n\r\n")

// Head is the status line and header block of a received response.
type Head struct {
	HTTPVersion string
	StatusCode  StatusCode
	Reason      string
	Headers     *headers.Headers
	// BodyOffset is the index of the first body byte in the parsed data.
	BodyOffset int
}

// ParseHead parses the head at the start of data. ok is false while the
// blank line ending the header block has not arrived yet.
func ParseHead(data []byte) (head *Head, ok bool, err error) {
	end := bytes.Index(data, headTerminator)
	if end < 0 {
		return nil, false, nil
	}

	lines := bytes.Split(data[:end], []byte("\r\n"))
	m := statusLineRegex.FindSubmatch(lines[0])
	if m == nil {
		return nil, false, ErrMalformedStatusLine
	}
	code, _ := strconv.Atoi(string(m[2]))

	hs := headers.NewHeaders()
	for _, line := range lines[1:] {
		if err := hs.ParseLine(line); err != nil {
			return nil, false, err
		}
	}

	return &Head{
		HTTPVersion: string(m[1]),
		StatusCode:  StatusCode(code),
		Reason:      string(m[3]),
		Headers:     hs,
		BodyOffset:  end + len(headTerminator),
	}, true, nil
}

// ContentLength returns the declared body length, or -1 when the header is
// absent.
func (h *Head) ContentLength() (int, error) {
	v := h.Headers.Get("Content-Length")
	if v == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, ErrInvalidContentLength
	}
	return n, nil
}

// Complete reports whether data holds an entire response. bodyExpected is
// false for replies to HEAD. A response without Content-Length is never
// complete, its end is the peer closing the connection.
func Complete(data []byte, bodyExpected bool) bool {
	head, ok, err := ParseHead(data)
	if err != nil || !ok {
		return false
	}
	if !bodyExpected || !bodyAllowed(head.StatusCode) {
		return true
	}
	n, err := head.ContentLength()
	if err != nil || n < 0 {
		return false
	}
	return len(data)-head.BodyOffset >= n
}
