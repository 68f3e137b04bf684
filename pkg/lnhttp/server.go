// Package lnhttp wraps http.Server so the listener is obtained from a
// pluggable ListenerProvider instead of net.Listen. The API and health
// servers use TCPProvider; tests can hand in any other provider.
package lnhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ListenerProvider creates the listener a Server accepts connections on.
// The context only bounds listener creation.
type ListenerProvider interface {
	Listen(ctx context.Context, network string, address string) (net.Listener, error)
}

// TCPProvider listens on plain TCP sockets.
type TCPProvider struct {
	lc net.ListenConfig
}

var _ ListenerProvider = &TCPProvider{}

func (p *TCPProvider) Listen(ctx context.Context, network string, address string) (net.Listener, error) {
	return p.lc.Listen(ctx, network, address)
}

// Server is an http.Server whose listener comes from Provider.
type Server struct {
	*http.Server

	Provider ListenerProvider

	// ready is closed once the listener is bound
	ready chan struct{}
	addr  net.Addr
}

// NewServer wraps s. A nil s is replaced by an empty http.Server and a nil
// provider by a TCPProvider.
func NewServer(s *http.Server, provider ListenerProvider) *Server {
	if s == nil {
		s = &http.Server{}
	}

	if provider == nil {
		provider = &TCPProvider{}
	}

	return &Server{Server: s, Provider: provider, ready: make(chan struct{})}
}

// Serve listens on Addr and serves handler until Shutdown or Close is called.
// A graceful shutdown returns nil.
func (s *Server) Serve(ctx context.Context, handler http.Handler) error {
	if s.Provider == nil {
		return fmt.Errorf("lnhttp: Provider is nil")
	}

	address := s.Addr
	if address == "" {
		address = ":http"
	}

	ln, err := s.Provider.Listen(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("lnhttp: listen on %s: %w", address, err)
	}

	s.addr = ln.Addr()
	if s.ready != nil {
		close(s.ready)
	}

	s.Handler = handler
	if err := s.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// ListenAddr blocks until the server is listening and returns its bound address.
func (s *Server) ListenAddr(ctx context.Context) (net.Addr, error) {
	if s.ready == nil {
		return nil, fmt.Errorf("lnhttp: server not created with NewServer")
	}

	select {
	case <-s.ready:
		return s.addr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
