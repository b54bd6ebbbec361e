package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expenses/internal/analysis"
	"expenses/internal/core"
	"expenses/internal/export"
	"expenses/internal/ledger"
	applog "expenses/internal/log"
)

// Exporter writes a snapshot of records to the configured sinks.
type Exporter interface {
	Export(ctx context.Context, records []core.Expense) ([]export.Result, error)
}

// Report is what the display action shows: the two statistics and the chart projection.
type Report struct {
	Summary core.Summary
	Chart   core.ChartData
}

// ExpenseManager orchestrates the ledger, the analyzer and the exporter for one
// user session. Like the ledger it wraps, it is not safe for concurrent use.
type ExpenseManager struct {
	ledger   *ledger.Ledger
	exporter Exporter
	logger   *applog.Logger
}

func NewExpenseManager(l *ledger.Ledger, exporter Exporter, logger *applog.Logger) *ExpenseManager {
	if l == nil {
		l = ledger.New()
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &ExpenseManager{
		ledger:   l,
		exporter: exporter,
		logger:   logger.WithComponent(applog.ComponentLedger),
	}
}

// Add validates the raw input and appends the record.
func (m *ExpenseManager) Add(ctx context.Context, date, description, amount string) (core.Expense, error) {
	e, err := m.ledger.Add(date, description, amount)
	if err != nil {
		m.logger.Fields(ctx, slog.LevelWarn, "Rejected expense",
			applog.NewFields().
				WithOperation(applog.OpAdd).
				WithExpense(date, description, amount).
				WithErrorType(applog.ErrorTypeValidation).
				WithError(err))
		return core.Expense{}, err
	}

	m.logger.InfoContext(ctx, "Expense added",
		applog.FieldDate, e.Date,
		applog.FieldDescription, e.Description,
		applog.FieldAmount, e.Amount,
		applog.FieldCount, m.ledger.Len())
	return e, nil
}

// Delete removes the record at the zero-based position shown by Records.
// A negative or out of range index means nothing was selected.
func (m *ExpenseManager) Delete(ctx context.Context, index int) (core.Expense, error) {
	if index < 0 || index >= m.ledger.Len() {
		m.logger.WarnContext(ctx, "No expense selected for deletion",
			applog.FieldOperation, applog.OpDelete,
			applog.FieldErrorType, applog.ErrorTypeNoSelection,
			applog.FieldIndex, index,
			applog.FieldCount, m.ledger.Len())
		return core.Expense{}, fmt.Errorf("index %d: %w", index, core.ErrNoSelection)
	}

	e, _ := m.ledger.RemoveAt(index)
	m.logger.InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldIndex, index,
		applog.FieldDescription, e.Description,
		applog.FieldCount, m.ledger.Len())
	return e, nil
}

// Records returns a copy of the ledger in insertion order.
func (m *ExpenseManager) Records() []core.Expense {
	m.logger.Debug("Expenses listed",
		applog.FieldOperation, applog.OpList,
		applog.FieldCount, m.ledger.Len())
	return m.ledger.List()
}

// Display computes the summary and the chart projection.
func (m *ExpenseManager) Display(ctx context.Context) (Report, error) {
	if m.ledger.IsEmpty() {
		m.logger.InfoContext(ctx, "Nothing to display",
			applog.FieldOperation, applog.OpDisplay,
			applog.FieldErrorType, applog.ErrorTypeNoData)
		return Report{}, core.ErrNoData
	}

	records := m.ledger.List()
	summary, err := analysis.Summarize(records)
	if err != nil {
		return Report{}, fmt.Errorf("summarize: %w", err)
	}
	chart, err := analysis.ProjectForCharts(records)
	if err != nil {
		return Report{}, fmt.Errorf("project charts: %w", err)
	}

	m.logger.WithComponent(applog.ComponentAnalysis).DebugContext(ctx, "Report computed",
		applog.FieldOperation, applog.OpDisplay,
		applog.FieldCount, summary.Count,
		applog.FieldTotal, summary.Total)
	return Report{Summary: summary, Chart: chart}, nil
}

// Save exports the current ledger to every configured sink.
func (m *ExpenseManager) Save(ctx context.Context) ([]export.Result, error) {
	if m.ledger.IsEmpty() {
		m.logger.InfoContext(ctx, "Nothing to save",
			applog.FieldOperation, applog.OpSave,
			applog.FieldErrorType, applog.ErrorTypeNoData)
		return nil, core.ErrNoData
	}
	if m.exporter == nil {
		return nil, errors.New("no exporter configured")
	}

	records := m.ledger.List()
	results, err := m.exporter.Export(ctx, records)
	if err != nil {
		errType := applog.ErrorTypeExport
		if errors.Is(err, context.DeadlineExceeded) {
			errType = applog.ErrorTypeTimeout
		}
		m.logger.Fields(ctx, slog.LevelError, "Export failed",
			applog.NewFields().
				WithOperation(applog.OpSave).
				WithErrorType(errType).
				WithError(err))
		return nil, fmt.Errorf("save: %w", err)
	}

	for _, r := range results {
		m.logger.InfoContext(ctx, "Expenses exported",
			applog.FieldSink, r.Sink,
			applog.FieldSinkRef, r.Ref,
			applog.FieldCount, len(records))
	}
	return results, nil
}
