package response

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/shravanasati/webfetch/internal/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFileResponseWireFormat(t *testing.T) {
	var buf bytes.Buffer
	resp := NewFileResponse([]byte("<h1>Hi</h1>"))
	require.NoError(t, resp.Write(&buf, true))

	assert.Equal(t,
		"HTTP/1.1 200 OK\r\n"+
			"Content-Length: 11\r\n"+
			"Content-type: text/html\r\n"+
			"Connection: close\r\n"+
			"\r\n"+
			"<h1>Hi</h1>",
		buf.String())
}

func TestFileResponseWithoutBody(t *testing.T) {
	var get, head bytes.Buffer
	resp := NewFileResponse([]byte("hello"))
	require.NoError(t, resp.Write(&get, true))
	require.NoError(t, resp.Write(&head, false))

	assert.True(t, strings.HasPrefix(get.String(), head.String()))
	assert.Equal(t, "hello", strings.TrimPrefix(get.String(), head.String()))
	assert.True(t, strings.HasSuffix(head.String(), "\r\n\r\n"))
}

func TestFileResponseContentLengthIsByteLength(t *testing.T) {
	for _, body := range []string{"", "a", "héllo wörld", strings.Repeat("x", 70000)} {
		resp := NewFileResponse([]byte(body))
		assert.Equal(t, strconv.Itoa(len(body)), resp.Headers.Get("content-length"))
	}
}

func TestErrorResponse(t *testing.T) {
	resp := NewErrorResponse(StatusNotFound, "Not Found")
	var buf bytes.Buffer
	require.NoError(t, resp.Write(&buf, true))

	head, ok, err := ParseHead(buf.Bytes())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusNotFound, head.StatusCode)
	assert.Equal(t, "Not Found", head.Reason)
	assert.Equal(t, "close", head.Headers.Get("Connection"))
	assert.Equal(t, "text/html;charset=utf-8", head.Headers.Get("Content-Type"))

	body := buf.Bytes()[head.BodyOffset:]
	assert.Equal(t, strconv.Itoa(len(body)), head.Headers.Get("Content-Length"))
	assert.Contains(t, string(body), "<p>Error code: 404</p>")
	assert.Contains(t, string(body), "<p>Message: Not Found.</p>")
	assert.Contains(t, string(body), "Nothing matches the given URI")
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	resp := NewErrorResponse(StatusInternalServerError, "Server Error: <boom>\r\nX-Evil: 1")
	var buf bytes.Buffer
	require.NoError(t, resp.Write(&buf, true))

	statusLine, _, _ := strings.Cut(buf.String(), "\r\n")
	assert.Equal(t, "HTTP/1.1 500 Server Error: <boom>  X-Evil: 1", statusLine)
	assert.Contains(t, string(resp.Body), "Server Error: &lt;boom&gt;")

	head, ok, err := ParseHead(buf.Bytes())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", head.Headers.Get("X-Evil"))
}

func TestErrorResponseWithoutBodyStatus(t *testing.T) {
	resp := NewErrorResponse(StatusNotModified, "")
	assert.Empty(t, resp.Body)
	assert.Equal(t, "", resp.Headers.Get("Content-Length"))
	assert.Equal(t, "Not Modified", resp.Reason)
}

func TestWriterOrdering(t *testing.T) {
	var buf bytes.Buffer
	rw := NewWriter(&buf)

	assert.ErrorIs(t, rw.WriteHeaders(headers.NewHeaders()), ErrHeadersAlreadyWritten)
	assert.ErrorIs(t, rw.WriteBody([]byte("x")), ErrNoBodyState)
	assert.Empty(t, buf.String())

	require.NoError(t, rw.WriteStatusLine(StatusOK, ""))
	assert.ErrorIs(t, rw.WriteStatusLine(StatusOK, ""), ErrStatusLineAlreadyWritten)

	require.NoError(t, rw.WriteHeaders(headers.NewHeaders()))
	require.NoError(t, rw.WriteBody([]byte("x")))
	assert.ErrorIs(t, rw.WriteBody([]byte("y")), ErrNoBodyState)

	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\nx", buf.String())
}

func TestWriterPropagatesWriteErrors(t *testing.T) {
	err := NewFileResponse([]byte("x")).Write(failingWriter{}, true)
	assert.Error(t, err)
}

func TestParseHeadIncomplete(t *testing.T) {
	_, ok, err := ParseHead([]byte("HTTP/1.1 200 OK\r\nContent-Length: 3\r\n"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseHead([]byte("SPDY/3 200 OK\r\n\r\n"))
	assert.ErrorIs(t, err, ErrMalformedStatusLine)
}

func TestComplete(t *testing.T) {
	full := "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"
	assert.True(t, Complete([]byte(full), true))
	assert.False(t, Complete([]byte(full[:len(full)-1]), true))
	assert.False(t, Complete([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5"), true))

	// HEAD replies end with the header block
	assert.True(t, Complete([]byte("HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\n"), false))

	// no Content-Length: only the peer closing ends the response
	assert.False(t, Complete([]byte("HTTP/1.1 200 OK\r\n\r\nabc"), true))

	assert.True(t, Complete([]byte("HTTP/1.1 304 Not Modified\r\n\r\n"), true))
}

func TestContentLength(t *testing.T) {
	head, ok, err := ParseHead([]byte("HTTP/1.0 404 Not Found\r\ncontent-length: 12\r\n\r\n"))
	require.NoError(t, err)
	require.True(t, ok)
	n, err := head.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, "1.0", head.HTTPVersion)

	head, _, _ = ParseHead([]byte("HTTP/1.1 200 OK\r\nContent-Length: -1\r\n\r\n"))
	_, err = head.ContentLength()
	assert.ErrorIs(t, err, ErrInvalidContentLength)
}

func TestStatusReason(t *testing.T) {
	assert.Equal(t, "OK", GetStatusReason(StatusOK))
	assert.Equal(t, "Not Implemented", GetStatusReason(StatusNotImplemented))
	assert.Equal(t, "", GetStatusReason(StatusCode(299)))
}
