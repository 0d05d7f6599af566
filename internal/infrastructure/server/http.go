package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"go-blog-api/internal/infrastructure/config"
	"go-blog-api/internal/infrastructure/logger"
)

type HTTPServer struct {
	srv    *http.Server
	logger logger.Logger

	mu       sync.Mutex
	listener net.Listener
}

var _ Server = (*HTTPServer)(nil)

func NewHTTPServer(handler http.Handler, cfg config.ServerConfig, log logger.Logger) *HTTPServer {
	return &HTTPServer{
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log.WithField("component", "http"),
	}
}

// Start listens on the configured address and serves until Stop is called.
// A clean shutdown returns nil.
func (h *HTTPServer) Start(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", h.srv.Addr)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.listener = ln
	h.mu.Unlock()

	h.logger.Infof("Server listening on %s", ln.Addr())
	if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr is the bound address, or nil before Start has listened.
func (h *HTTPServer) Addr() net.Addr {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

func (h *HTTPServer) Stop(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}
