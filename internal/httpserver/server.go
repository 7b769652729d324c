// Package httpserver provides the HTTP API for the events service.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/eventhive/events-service/internal/app"
	"github.com/eventhive/events-service/internal/config"
	"github.com/eventhive/events-service/internal/httpserver/handlers"
)

// Server is the HTTP server for the events API.
type Server struct {
	config     config.ServerConfig
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// ServerDeps contains dependencies for creating a new server.
type ServerDeps struct {
	Config config.ServerConfig
	Events *app.Service
	Logger *log.Logger
}

// NewServer creates a new HTTP server for the events API.
func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		config: deps.Config,
		logger: logger,
	}

	// Set handler context for dependency injection
	handlers.SetContext(&handlers.Context{
		Events: deps.Events,
	})

	s.router = s.setupRouter()

	s.httpServer = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.getReadTimeout(),
		WriteTimeout: s.getWriteTimeout(),
		IdleTimeout:  s.getIdleTimeout(),
	}

	return s
}

// Start starts the HTTP server and blocks until ctx is canceled or the
// server fails.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}

	s.logger.Info("http server listening", "address", listener.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		// Use a new context for shutdown since the original is canceled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx) //nolint:contextcheck // Intentionally new context for graceful shutdown
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}

// Address returns the server address.
func (s *Server) Address() string {
	return s.config.Address
}

// Router exposes the configured router, primarily for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// getReadTimeout returns the read timeout with default.
func (s *Server) getReadTimeout() time.Duration {
	if s.config.ReadTimeout > 0 {
		return s.config.ReadTimeout
	}
	return 15 * time.Second
}

// getWriteTimeout returns the write timeout with default.
func (s *Server) getWriteTimeout() time.Duration {
	if s.config.WriteTimeout > 0 {
		return s.config.WriteTimeout
	}
	return 15 * time.Second
}

// getIdleTimeout returns the idle timeout with default.
func (s *Server) getIdleTimeout() time.Duration {
	if s.config.IdleTimeout > 0 {
		return s.config.IdleTimeout
	}
	return 60 * time.Second
}
