package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/shravanasati/webfetch/internal/headers"
)

// writePhase is the next part of the response a Writer accepts.
type writePhase uint8

const (
	phaseStatusLine writePhase = iota
	phaseHeaders
	phaseBody
	phaseDone
)

// Writer emits a response in order: status line, header block, body.
// Calls out of order fail without writing anything.
type Writer struct {
	conn  io.Writer
	phase writePhase
}

func NewWriter(conn io.Writer) *Writer {
	return &Writer{conn: conn}
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>". An empty reason falls
// back to the standard phrase for the code.
func (rw *Writer) WriteStatusLine(statusCode StatusCode, reason string) error {
	if rw.phase != phaseStatusLine {
		return ErrStatusLineAlreadyWritten
	}
	if reason == "" {
		reason = GetStatusReason(statusCode)
	}
	_, err := fmt.Fprintf(rw.conn, "HTTP/1.1 %03d %s\r\n", statusCode, sanitizeReason(reason))
	if err != nil {
		return err
	}

	rw.phase = phaseHeaders
	return nil
}

// WriteHeaders writes every header followed by the blank line ending the block.
func (rw *Writer) WriteHeaders(h *headers.Headers) error {
	if rw.phase != phaseHeaders {
		return ErrHeadersAlreadyWritten
	}

	var b strings.Builder
	for k, v := range h.All() {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	if _, err := io.WriteString(rw.conn, b.String()); err != nil {
		return err
	}

	rw.phase = phaseBody
	return nil
}

func (rw *Writer) WriteBody(body []byte) error {
	if rw.phase != phaseBody {
		return ErrNoBodyState
	}
	if _, err := rw.conn.Write(body); err != nil {
		return err
	}
	rw.phase = phaseDone
	return nil
}

// sanitizeReason keeps a reason phrase on a single line.
func sanitizeReason(reason string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' {
			return ' '
		}
		return r
	}, reason)
}
