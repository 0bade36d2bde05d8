package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/shravanasati/webfetch/internal/content"
	"github.com/shravanasati/webfetch/internal/response"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server serves files over HTTP/1.1, one connection at a time.
type Server struct {
	cfg      Config
	fsys     fs.FS
	log      *zap.Logger
	recovery func(any) *response.Response
	access   accessLog

	listener net.Listener
	closed   atomic.Bool

	mu     sync.Mutex
	active net.Conn
}

func New(cfg Config, opts ...Option) *Server {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}

	s := &Server{
		cfg:      cfg,
		log:      zap.NewNop(),
		recovery: defaultRecovery,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.access.log = s.log
	return s
}

// Listen binds the listening socket. Run calls it when it has not been
// called yet.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	if s.fsys == nil {
		st, err := os.Stat(s.cfg.Root)
		if err != nil {
			return &ListenError{Addr: addr, Err: err}
		}
		if !st.IsDir() {
			return &ListenError{Addr: addr, Err: fmt.Errorf("%s is not a directory", s.cfg.Root)}
		}
		s.fsys = os.DirFS(s.cfg.Root)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &ListenError{Addr: addr, Err: err}
	}
	s.listener = ln

	s.log.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("root", s.cfg.Root))
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run accepts and handles connections until ctx is cancelled or Close is
// called, in which case it returns nil. The listener is closed on return.
func (s *Server) Run(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.serve)
	g.Go(func() error {
		<-gctx.Done()
		return s.Close()
	})

	err := g.Wait()
	if err == nil || errors.Is(err, ErrServerClosed) {
		s.log.Info("server stopped")
		return nil
	}
	return err
}

// Close stops the accept loop and drops the connection being handled, if any.
// It is safe to call more than once.
func (s *Server) Close() error {
	if s.listener == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	if s.active != nil {
		s.active.Close()
	}
	s.mu.Unlock()

	return s.listener.Close()
}

func (s *Server) serve() error {
	if s.listener == nil {
		return ErrNotListening
	}

	resolver := content.NewResolver(s.fsys)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.log.Warn("unable to accept connection", zap.Error(err))
			continue
		}

		s.handle(conn, resolver)
	}
}

func (s *Server) handle(conn net.Conn, resolver *content.Resolver) {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.active = conn
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active = nil
		s.mu.Unlock()

		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.log.Debug("unable to close connection", zap.Error(err))
		}
	}()

	h := &connHandler{
		cfg:      &s.cfg,
		resolver: resolver,
		log:      s.log,
		recovery: s.recovery,
		access:   s.access,
	}
	h.serve(conn)
}
