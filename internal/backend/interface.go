package backend

import (
	"context"
	"errors"

	"expenses/internal/export"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// SinkResult contains the configured sinks and a cleanup releasing their resources
type SinkResult struct {
	Sinks   []export.Sink
	Cleanup CleanupFunc
}

// Factory creates export sinks based on configuration
type Factory interface {
	// CreateSinks opens every sink listed in config, in order
	CreateSinks(ctx context.Context, config Config) (*SinkResult, error)
}

// Config holds configuration for sink creation
type Config struct {
	Sinks []SinkType

	// CSV specific
	CSVExportPath string

	// SQLite specific
	SQLiteDBPath string

	// AMQP specific
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
}

// SinkType represents the type of export sink
type SinkType string

const (
	CSVSink    SinkType = "csv"
	SQLiteSink SinkType = "sqlite"
	SheetsSink SinkType = "sheets"
	AMQPSink   SinkType = "amqp"
)

// String implements fmt.Stringer
func (st SinkType) String() string {
	return string(st)
}

// IsValid returns true if the sink type is valid
func (st SinkType) IsValid() bool {
	switch st {
	case CSVSink, SQLiteSink, SheetsSink, AMQPSink:
		return true
	default:
		return false
	}
}

// joinCleanups runs every cleanup in reverse order and joins their errors.
func joinCleanups(fns []CleanupFunc) CleanupFunc {
	return func() error {
		var errs []error
		for i := len(fns) - 1; i >= 0; i-- {
			if err := fns[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
