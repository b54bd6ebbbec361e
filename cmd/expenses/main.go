package main

import (
	"context"
	"errors"
	"os"
	"time"

	"expenses/internal/backend"
	"expenses/internal/cli"
	"expenses/internal/console"
	"expenses/internal/export"
	"expenses/internal/ledger"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

func main() {
	// Load .env file if present (for local development)
	cli.LoadEnvFile()

	cfg, logger := cli.LoadAndValidateConfig()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid sink configuration", applog.FieldError, err)
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.ExportTimeout)
	factory := backend.NewFactory(logger.Logger.With(applog.FieldComponent, applog.ComponentBackend))
	sinks, err := factory.CreateSinks(startCtx, backendCfg)
	cancelStart()
	if err != nil {
		logger.Error("Failed to initialize export sinks", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, shutdown := cli.GracefulShutdown(logger, 10*time.Second, func() {
		if err := sinks.Cleanup(); err != nil {
			logger.Error("Failed to close export sinks", applog.FieldError, err)
		}
	})
	defer shutdown()
	ctx = applog.NewContext(ctx, logger)

	exporter := export.NewExporter(cfg.ExportTimeout, sinks.Sinks...)
	manager := services.NewExpenseManager(ledger.New(), exporter, logger)

	logger.Info("Expense tracker started",
		applog.FieldOperation, applog.OpStartup,
		"sinks", exporter.Sinks())

	term := console.New(manager, os.Stdin, os.Stdout, cfg.ChartWidth)
	if err := term.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Console stopped", applog.FieldError, err)
	}
}
