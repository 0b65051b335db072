// Package httpserver runs an http.Handler with context-driven graceful
// shutdown. It backs both the management endpoint and the embedded web
// server of an application context.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bft-labs/appadmin/pkg/log"
)

// DefaultShutdownTimeout bounds graceful shutdown when Start's context ends.
const DefaultShutdownTimeout = 5 * time.Second

// Server wraps net/http.Server.
type Server struct {
	name   string
	server *http.Server
	logger log.Logger

	mu       sync.Mutex
	listener net.Listener

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a server for handler on addr. name identifies the server in
// log output.
func New(name, addr string, handler http.Handler, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Server{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Listen binds the listening socket. It is a no-op if already bound.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("%s listen %s: %w", s.name, s.server.Addr, err)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start listens (if needed) and serves until ctx is done, then shuts down
// gracefully. Returns nil on graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(s.name+" listening", log.String("addr", addr.String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		// ctx is already done; shut down on a fresh deadline
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("%s failed: %w", s.name, err)
	}
}

// Stop gracefully shuts the server down. Safe to call more than once.
func (s *Server) Stop(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			s.shutdownErr = fmt.Errorf("%s shutdown: %w", s.name, err)
			s.logger.Error(s.name+" shutdown error", log.Err(err))
			return
		}
		s.logger.Info(s.name + " stopped")
	})
	return s.shutdownErr
}
