package request

import (
	"bytes"
	"io"
	"net"
	"strconv"
)

// Message is an outbound request without a body.
type Message struct {
	Method string
	Path   string
	Host   string
	Port   int
}

// Bytes renders the message as
//
//	VERB SP path SP HTTP/1.1 CRLF Host: host:port CRLF CRLF
//
// The method is sent verbatim.
func (m Message) Bytes() []byte {
	path := m.Path
	if path == "" {
		path = "/"
	}

	var b bytes.Buffer
	b.WriteString(m.Method)
	b.WriteByte(' ')
	b.WriteString(path)
	b.WriteByte(' ')
	b.WriteString(protocol)
	b.Write(crlf)
	b.WriteString("Host: ")
	b.WriteString(net.JoinHostPort(m.Host, strconv.Itoa(m.Port)))
	b.Write(crlf)
	b.Write(crlf)
	return b.Bytes()
}

// WriteTo writes the rendered message in a single call to w.
func (m Message) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m.Bytes())
	return int64(n), err
}
