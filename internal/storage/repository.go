package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"expenses/internal/core"
	"expenses/internal/export"
	applog "expenses/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores export snapshots in a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ export.Sink = (*SQLiteRepository)(nil)

// ExportInfo describes one stored snapshot.
type ExportInfo struct {
	ID          string
	CreatedAt   time.Time
	RecordCount int
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Name() string { return "sqlite" }

// Write implements export.Sink. The whole batch is stored in one transaction.
func (r *SQLiteRepository) Write(ctx context.Context, b export.Batch) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exports (id, created_at, record_count) VALUES (?, ?, ?)`,
		b.ID, b.CreatedAt, len(b.Records)); err != nil {
		return "", fmt.Errorf("insert export: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO export_records (export_id, position, date, description, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range b.Records {
		if _, err := stmt.ExecContext(ctx, b.ID, i, e.Date, e.Description, e.Amount); err != nil {
			return "", fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit export: %w", err)
	}

	slog.InfoContext(ctx, "Export saved to SQLite",
		applog.FieldComponent, applog.ComponentStorage,
		"export_id", b.ID,
		"records", len(b.Records))

	return b.ID, nil
}

// ListExports returns the stored snapshots, newest first.
func (r *SQLiteRepository) ListExports(ctx context.Context) ([]ExportInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, record_count FROM exports ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []ExportInfo
	for rows.Next() {
		var info ExportInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.RecordCount); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// ExportRecords returns the records of one snapshot in ledger order. Rows that
// no longer satisfy the record invariants are reported as errors.
func (r *SQLiteRepository) ExportRecords(ctx context.Context, exportID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, description, amount FROM export_records WHERE export_id = ? ORDER BY position`,
		exportID)
	if err != nil {
		return nil, fmt.Errorf("get export records: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.Date, &e.Description, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan export record: %w", err)
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("export %s record %d: %w", exportID, len(out), err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
