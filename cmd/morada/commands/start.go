package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/morada-labs/morada/internal/api"
	"github.com/morada-labs/morada/internal/logger"
	"github.com/morada-labs/morada/internal/metrics"
	"github.com/morada-labs/morada/pkg/config"
	"github.com/morada-labs/morada/pkg/listing/store"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the morada server",
	Long: `Start the morada API server with the specified configuration.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/morada/config.yaml.

Examples:
  # Start with default config location
  morada start

  # Start with custom config file
  morada start --config /etc/morada/config.yaml

  # Start with environment variable overrides
  MORADA_LOGGING_LEVEL=DEBUG morada start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	// Initialize metrics before the store and router so request
	// instrumentation sees an enabled registry.
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		metricsServer = metrics.NewServer(cfg.Metrics.Port)
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Open the database and run migrations
	s, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}()
	logger.Info("Store initialized", "type", cfg.Database.Type)

	// A missing or weak JWT secret fails here, before anything listens.
	apiServer, err := api.NewServer(cfg.API, s, Version)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	logger.Info("API server configured", "port", cfg.API.Port)

	// Start servers in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}
