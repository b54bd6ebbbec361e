// Package cli provides the startup and shutdown plumbing shared by the
// commands under cmd/.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"expenses/internal/config"
	applog "expenses/internal/log"
)

// SetupLogger initializes structured logging on w at the given level.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(w io.Writer, level slog.Level) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Handler:   applog.NewTextHandler(w, level),
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration, sets up logging at the configured
// level on stderr and validates the configuration.
// Exits the process on validation failure.
func LoadAndValidateConfig() (*config.Config, *applog.Logger) {
	cfg := config.Load()
	logger := SetupLogger(os.Stderr, cfg.SlogLevel())
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			applog.FieldErrorType, applog.ErrorTypeConfiguration,
			applog.FieldError, err)
		os.Exit(1)
	}
	return cfg, logger
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// The returned context is cancelled on SIGINT or SIGTERM. The returned
// shutdown func cancels the context, runs cleanup at most once and waits up to
// timeout for it to finish.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func()) (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received",
				applog.FieldOperation, applog.OpShutdown,
				"signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			cancel()

			finished := make(chan struct{})
			go func() {
				if cleanup != nil {
					cleanup()
				}
				close(finished)
			}()

			select {
			case <-finished:
				logger.Info("Shutdown complete")
			case <-time.After(timeout):
				logger.Warn("Shutdown timeout reached")
			}
		})
	}

	return ctx, shutdown
}
