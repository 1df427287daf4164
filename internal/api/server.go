package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/morada-labs/morada/internal/api/auth"
	"github.com/morada-labs/morada/internal/logger"
	"github.com/morada-labs/morada/pkg/listing/store"
)

// Server provides the HTTP server for the REST API.
//
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	jwtService   *auth.JWTService
	store        store.Store
	config       APIConfig
	shutdownOnce sync.Once
}

// NewServer creates a new API HTTP server.
//
// The server is created in a stopped state. Call Start() to begin serving requests.
//
// The JWT service is created internally from the config. The signing
// secret must be configured via config.Auth.Secret or the
// MORADA_AUTH_SECRET environment variable; a missing or weak secret is
// a construction error, so the process refuses to start rather than
// run with guessable tokens.
func NewServer(config APIConfig, s store.Store, version string) (*Server, error) {
	config.ApplyDefaults()

	secret := config.GetAuthSecret()
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required; set via %s env var or config", EnvAuthSecret)
	}

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:        secret,
		Issuer:        "morada",
		TokenDuration: config.Auth.TokenDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	router := NewRouter(config, jwtService, s, version)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server:     server,
		jwtService: jwtService,
		store:      s,
		config:     config,
	}, nil
}

// Start starts the API HTTP server and blocks until the context is cancelled
// or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and returns.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("API server listening", "port", s.config.Port)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("API server shutdown signal received")
		// Don't use the cancelled ctx as it would cause immediate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("API server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the API server.
//
// Stop is safe to call multiple times and safe to call concurrently with Start().
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("API server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("API server shutdown error: %w", err)
			logger.Error("API server shutdown error", "error", err)
		} else {
			logger.Info("API server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	return s.config.Port
}
