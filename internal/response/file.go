package response

import (
	"strconv"

	"github.com/shravanasati/webfetch/internal/headers"
)

// NewFileResponse wraps served file contents in a 200 response with the
// fixed header block: Content-Length, Content-type: text/html,
// Connection: close.
func NewFileResponse(content []byte) *Response {
	hs := headers.NewHeaders()
	hs.Add("Content-Length", strconv.Itoa(len(content)))
	hs.Add("Content-type", "text/html")
	hs.Add("Connection", "close")

	return &Response{
		StatusCode: StatusOK,
		Headers:    hs,
		Body:       content,
	}
}
