package backend

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/amqp"
	"expenses/internal/export"
	gsheet "expenses/internal/sheets/google"
	"expenses/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new sink factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateSinks implements Factory.CreateSinks. If any sink fails to open, the
// ones already opened are cleaned up before the error is returned.
func (f *DefaultFactory) CreateSinks(ctx context.Context, config Config) (*SinkResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		sinks    []export.Sink
		cleanups []CleanupFunc
	)
	for _, st := range config.Sinks {
		sink, cleanup, err := f.createSink(ctx, st, config)
		if err != nil {
			if cerr := joinCleanups(cleanups)(); cerr != nil {
				f.logger.Warn("Failed to clean up sinks", "error", cerr)
			}
			return nil, fmt.Errorf("create %s sink: %w", st, err)
		}
		sinks = append(sinks, sink)
		if cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}

	return &SinkResult{
		Sinks:   sinks,
		Cleanup: joinCleanups(cleanups),
	}, nil
}

func (f *DefaultFactory) createSink(ctx context.Context, st SinkType, config Config) (export.Sink, CleanupFunc, error) {
	switch st {
	case CSVSink:
		return f.createCSVSink(config)
	case SQLiteSink:
		return f.createSQLiteSink(config)
	case SheetsSink:
		return f.createSheetsSink(ctx, config)
	case AMQPSink:
		return f.createAMQPSink(config)
	default:
		return nil, nil, fmt.Errorf("unsupported sink type: %s", st)
	}
}

func (f *DefaultFactory) createCSVSink(config Config) (export.Sink, CleanupFunc, error) {
	sink := export.NewCSVSink(config.CSVExportPath)

	f.logger.Info("Initialized CSV sink", "path", sink.Path())

	return sink, nil, nil
}

func (f *DefaultFactory) createSQLiteSink(config Config) (export.Sink, CleanupFunc, error) {
	sqliteRepo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite sink", "db_path", config.SQLiteDBPath)

	return sqliteRepo, sqliteRepo.Close, nil
}

func (f *DefaultFactory) createSheetsSink(ctx context.Context, config Config) (export.Sink, CleanupFunc, error) {
	cli, err := gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   config.GoogleSpreadsheetID,
		SheetName:       config.GoogleSheetName,
		CredentialsJSON: config.GoogleServiceAccountJSON,
		CredentialsFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets sink",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"sheet", config.GoogleSheetName)

	// No cleanup needed for sheets sink
	return cli, nil, nil
}

func (f *DefaultFactory) createAMQPSink(config Config) (export.Sink, CleanupFunc, error) {
	amqpClient, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize AMQP client: %w", err)
	}

	f.logger.Info("Initialized AMQP sink",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	return amqpClient, amqpClient.Close, nil
}
