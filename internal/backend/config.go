package backend

import (
	"fmt"

	"expenses/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	sinks := make([]SinkType, 0, len(appConfig.ExportSinks))
	for _, name := range appConfig.ExportSinks {
		st := SinkType(name)
		if !st.IsValid() {
			return Config{}, fmt.Errorf("invalid sink type in config: %s", name)
		}
		sinks = append(sinks, st)
	}

	credsFile := appConfig.GoogleServiceAccountFile
	if credsFile == "" {
		credsFile = appConfig.GoogleApplicationCredsFile
	}

	return Config{
		Sinks: sinks,

		CSVExportPath: appConfig.CSVExportPath,

		SQLiteDBPath: appConfig.SQLiteDBPath,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleSheetName:          appConfig.GoogleSheetName,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: credsFile,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if len(c.Sinks) == 0 {
		return fmt.Errorf("no export sinks configured")
	}

	for _, st := range c.Sinks {
		if !st.IsValid() {
			return fmt.Errorf("invalid sink type: %s", st)
		}

		switch st {
		case CSVSink:
			if c.CSVExportPath == "" {
				return fmt.Errorf("CSV export path is required for csv sink")
			}
		case SQLiteSink:
			if c.SQLiteDBPath == "" {
				return fmt.Errorf("SQLite database path is required for sqlite sink")
			}
		case AMQPSink:
			if c.AMQPURL == "" {
				return fmt.Errorf("AMQP URL is required for amqp sink")
			}
		case SheetsSink:
			if c.GoogleSpreadsheetID == "" {
				return fmt.Errorf("Google Spreadsheet ID is required for sheets sink")
			}
		}
	}

	return nil
}

// GetSinkTypes returns all valid sink types
func GetSinkTypes() []SinkType {
	return []SinkType{CSVSink, SQLiteSink, SheetsSink, AMQPSink}
}
