package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morada-labs/morada/internal/logger"
)

// Server exposes the metrics registry on a standalone HTTP port.
type Server struct {
	server       *http.Server
	port         int
	shutdownOnce sync.Once
}

// NewServer creates a metrics HTTP server serving GET /metrics.
// Returns nil if metrics are not enabled.
func NewServer(port int) *Server {
	reg := GetRegistry()
	if reg == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		port: port,
	}
}

// Start serves the metrics endpoint and blocks until the context is
// cancelled or the server fails. A nil receiver returns immediately.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "port", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("metrics server failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times.
func (s *Server) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("metrics server shutdown error: %w", err)
		} else {
			logger.Info("metrics server stopped gracefully")
		}
	})
	return shutdownErr
}
