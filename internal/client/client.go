// Package client sends a single HTTP/1.1 request over a fresh TCP
// connection and returns the raw response text.
package client

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"time"

	"github.com/shravanasati/webfetch/internal/address"
	"github.com/shravanasati/webfetch/internal/request"
	"github.com/shravanasati/webfetch/internal/response"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds the connect and every read.
	DefaultTimeout = 300 * time.Millisecond

	// DefaultBufferSize caps how many response bytes are kept. Anything past
	// it is dropped.
	DefaultBufferSize = 10_000_000
)

const readChunkSize = 32 * 1024

type Client struct {
	timeout    time.Duration
	bufferSize int
	singleRead bool
	log        *zap.Logger

	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithBufferSize(n int) Option {
	return func(c *Client) {
		c.bufferSize = n
	}
}

// WithSingleRead makes the client return whatever the first read yields,
// without waiting for the rest of the response.
func WithSingleRead(enabled bool) Option {
	return func(c *Client) {
		c.singleRead = enabled
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		timeout:    DefaultTimeout,
		bufferSize: DefaultBufferSize,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bufferSize <= 0 {
		c.bufferSize = DefaultBufferSize
	}

	d := &net.Dialer{Timeout: c.timeout, Control: reuseAddr}
	c.dial = d.DialContext
	return c
}

// MakeRequest sends one verb request to addr ("host[:port][/path]") and
// returns the response text. ok is false when nothing arrived before the
// timeout, which is not an error. Refused connections and other transport
// failures are returned as *TransportError. No retries are made.
func (c *Client) MakeRequest(ctx context.Context, addr, verb string) (text string, ok bool, err error) {
	target, err := address.Parse(addr)
	if err != nil {
		return "", false, err
	}
	if verb == "" {
		verb = request.MethodGet
	}

	log := c.log.With(zap.String("addr", target.HostPort()), zap.String("method", verb))
	log.Debug("connecting")

	conn, err := c.dial(ctx, "tcp", target.HostPort())
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		if isTimeout(err) {
			log.Debug("connect timed out")
			return "", false, nil
		}
		return "", false, &TransportError{Op: "dial", Addr: target.HostPort(), Err: err}
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		conn.SetDeadline(time.Now())
	})
	defer stop()

	msg := request.Message{
		Method: verb,
		Path:   target.Path,
		Host:   target.Host,
		Port:   target.Port,
	}
	log.Debug("sending request", zap.ByteString("request", msg.Bytes()))
	if _, err := msg.WriteTo(conn); err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, &TransportError{Op: "write", Addr: target.HostPort(), Err: err}
	}

	data, err := c.collect(conn, verb != request.MethodHead)
	if ctx.Err() != nil {
		return "", false, ctx.Err()
	}
	if err != nil {
		return "", false, &TransportError{Op: "read", Addr: target.HostPort(), Err: err}
	}
	if len(data) == 0 {
		log.Debug("no response received")
		return "", false, nil
	}

	if tc, ok := conn.(interface{ CloseWrite() error }); ok {
		tc.CloseWrite()
	}
	log.Debug("received response", zap.Int("bytes", len(data)))
	return string(data), true, nil
}

// collect reads the response. In single read mode the first read is the
// response. Otherwise reads continue until the peer closes, a read times out,
// the Content-Length bounded body is in, or the buffer is full.
func (c *Client) collect(conn net.Conn, bodyExpected bool) ([]byte, error) {
	if c.singleRead {
		buf := make([]byte, c.bufferSize)
		conn.SetReadDeadline(time.Now().Add(c.timeout))
		n, err := conn.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err == nil || errors.Is(err, io.EOF) || isTimeout(err) {
			return nil, nil
		}
		return nil, err
	}

	var buf []byte
	chunk := make([]byte, min(readChunkSize, c.bufferSize))
	for len(buf) < c.bufferSize {
		conn.SetReadDeadline(time.Now().Add(c.timeout))
		n, err := conn.Read(chunk[:min(len(chunk), c.bufferSize-len(buf))])
		buf = append(buf, chunk[:n]...)

		if response.Complete(buf, bodyExpected) {
			return buf, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || isTimeout(err) || len(buf) > 0 {
				return buf, nil
			}
			return nil, err
		}
	}
	return buf, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
