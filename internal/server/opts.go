package server

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/shravanasati/webfetch/internal/response"
	"go.uber.org/zap"
)

// DefaultHost is the loopback address the server binds to unless told otherwise.
const DefaultHost = "127.0.0.1"

// Config is fixed at construction. Every connection handler receives a
// pointer to the same Config and only reads it.
type Config struct {
	// Host is the interface to bind to. Defaults to [DefaultHost].
	Host string

	// Port to listen on. 0 picks a free port, see [Server.Addr].
	Port int

	// Root is the directory whose files are served.
	Root string

	// ReadTimeout bounds reading the request head. Zero means no limit.
	ReadTimeout time.Duration
}

type Option func(*Server)

// WithLogger sets the logger used for lifecycle and access logs.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithColor styles the method and status of access log lines.
func WithColor(enabled bool) Option {
	return func(s *Server) {
		s.access.colored = enabled
	}
}

// WithFS serves files from fsys instead of the directory named by Config.Root.
func WithFS(fsys fs.FS) Option {
	return func(s *Server) {
		s.fsys = fsys
	}
}

// WithRecovery replaces the response written when handling a request panics.
// It receives the value returned by recover().
func WithRecovery(f func(any) *response.Response) Option {
	return func(s *Server) {
		s.recovery = f
	}
}

func defaultRecovery(r any) *response.Response {
	return response.NewErrorResponse(
		response.StatusInternalServerError,
		fmt.Sprintf("Server Error: %v", r),
	)
}
