package response

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/shravanasati/webfetch/internal/headers"
)

// Response is a fully buffered response. Content-Length always matches Body.
type Response struct {
	StatusCode StatusCode
	// Reason overrides the standard reason phrase when set.
	Reason  string
	Headers *headers.Headers
	Body    []byte
}

// Write sends the response to w. When includeBody is false (HEAD) only the
// status line and headers are written.
func (r *Response) Write(w io.Writer, includeBody bool) error {
	rw := NewWriter(w)
	if err := r.WriteHead(rw); err != nil {
		return err
	}
	if includeBody && len(r.Body) > 0 {
		return rw.WriteBody(r.Body)
	}
	return nil
}

// WriteHead writes the status line and header block through rw, leaving
// the body to the caller.
func (r *Response) WriteHead(rw *Writer) error {
	if err := rw.WriteStatusLine(r.StatusCode, r.Reason); err != nil {
		return err
	}
	return rw.WriteHeaders(r.Headers)
}

const errorPageFormat = `<!DOCTYPE HTML>
<html lang="en">
    <head>
        <meta charset="utf-8">
        <title>Error response</title>
    </head>
    <body>
        <h1>Error response</h1>
        <p>Error code: %d</p>
        <p>Message: %s.</p>
        <p>Error code explanation: %d - %s.</p>
    </body>
</html>
`

// NewErrorResponse builds the conventional error response: message doubles
// as the reason phrase and is embedded in a small HTML page. Statuses that
// cannot carry a body get none.
func NewErrorResponse(code StatusCode, message string) *Response {
	if message == "" {
		message = GetStatusReason(code)
	}

	hs := headers.NewHeaders()
	hs.Add("Connection", "close")

	var body []byte
	if bodyAllowed(code) {
		body = fmt.Appendf(nil, errorPageFormat,
			code,
			html.EscapeString(message),
			code,
			html.EscapeString(GetStatusExplanation(code)),
		)
		hs.Add("Content-Type", "text/html;charset=utf-8")
		hs.Add("Content-Length", strconv.Itoa(len(body)))
	}

	return &Response{
		StatusCode: code,
		Reason:     message,
		Headers:    hs,
		Body:       body,
	}
}
