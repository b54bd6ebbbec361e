package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"expenses/internal/core"
	"expenses/internal/export"
	"expenses/internal/ledger"
	applog "expenses/internal/log"
)

type fakeExporter struct {
	calls   int
	records []core.Expense
	err     error
}

func (f *fakeExporter) Export(ctx context.Context, records []core.Expense) ([]export.Result, error) {
	f.calls++
	f.records = records
	if f.err != nil {
		return nil, f.err
	}
	return []export.Result{{Sink: "fake", Ref: "ref-1"}}, nil
}

func newTestManager(t *testing.T, x Exporter) (*ExpenseManager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Handler: applog.NewTextHandler(&buf, slog.LevelDebug)})
	return NewExpenseManager(ledger.New(), x, logger), &buf
}

func TestExpenseManager_Add(t *testing.T) {
	tests := []struct {
		name                string
		date, desc, amount string
		wantErr             error
	}{
		{"valid", "2024-01-01", "Groceries", "50", nil},
		{"blank description", "2024-01-01", "   ", "50", core.ErrEmptyField},
		{"bad date", "01/01/2024", "Groceries", "50", core.ErrInvalidDateFormat},
		{"bad amount", "2024-01-01", "Groceries", "fifty", core.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, logs := newTestManager(t, nil)
			e, err := m.Add(context.Background(), tt.date, tt.desc, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Add() error = %v, want %v", err, tt.wantErr)
				}
				if len(m.Records()) != 0 {
					t.Fatalf("ledger changed on failed add")
				}
				if !strings.Contains(logs.String(), "level=WARN") {
					t.Errorf("expected warn log, got %q", logs.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("Add() unexpected error = %v", err)
			}
			want := core.Expense{Date: "2024-01-01", Description: "Groceries", Amount: 50}
			if e != want || len(m.Records()) != 1 {
				t.Fatalf("Add() = %+v, records %v", e, m.Records())
			}
		})
	}
}

func TestExpenseManager_Delete(t *testing.T) {
	m, logs := newTestManager(t, nil)
	ctx := context.Background()
	m.Add(ctx, "2024-01-01", "Groceries", "50")
	m.Add(ctx, "2024-01-02", "Transport", "20")

	for _, idx := range []int{-1, 2} {
		if _, err := m.Delete(ctx, idx); !errors.Is(err, core.ErrNoSelection) {
			t.Errorf("Delete(%d) error = %v, want ErrNoSelection", idx, err)
		}
	}
	if len(m.Records()) != 2 {
		t.Fatalf("ledger changed on failed delete")
	}
	if !strings.Contains(logs.String(), "error_type=no_selection") || !strings.Contains(logs.String(), "operation=delete") {
		t.Errorf("expected tagged no-selection warning, got %q", logs.String())
	}

	removed, err := m.Delete(ctx, 0)
	if err != nil {
		t.Fatalf("Delete(0) error = %v", err)
	}
	if removed.Description != "Groceries" {
		t.Errorf("removed %+v", removed)
	}
	records := m.Records()
	if len(records) != 1 || records[0].Description != "Transport" {
		t.Errorf("remaining records %v", records)
	}
}

func TestExpenseManager_DisplayEmpty(t *testing.T) {
	m, logs := newTestManager(t, nil)
	if _, err := m.Display(context.Background()); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("Display() error = %v, want ErrNoData", err)
	}
	if !strings.Contains(logs.String(), "error_type=no_data") {
		t.Errorf("expected no-data log, got %q", logs.String())
	}
}

func TestExpenseManager_Display(t *testing.T) {
	m, logs := newTestManager(t, nil)
	ctx := context.Background()
	m.Add(ctx, "2024-01-01", "Groceries", "50")
	m.Add(ctx, "2024-01-02", "Transport", "20")

	r, err := m.Display(ctx)
	if err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if r.Summary.Total != 70 || r.Summary.Average != 35 || r.Summary.Count != 2 {
		t.Errorf("summary = %+v", r.Summary)
	}
	if len(r.Chart.Categories) != 2 || r.Chart.Categories[1] != "Transport" || r.Chart.AmountsOverTime[0] != 50 {
		t.Errorf("chart = %+v", r.Chart)
	}
	if !strings.Contains(logs.String(), "component=analysis") {
		t.Errorf("expected analysis log, got %q", logs.String())
	}
}

func TestExpenseManager_SaveEmpty(t *testing.T) {
	x := &fakeExporter{}
	m, _ := newTestManager(t, x)
	if _, err := m.Save(context.Background()); !errors.Is(err, core.ErrNoData) {
		t.Fatalf("Save() error = %v, want ErrNoData", err)
	}
	if x.calls != 0 {
		t.Fatalf("exporter called on empty ledger")
	}
}

func TestExpenseManager_SaveError(t *testing.T) {
	x := &fakeExporter{err: errors.New("csv sink: disk full")}
	m, logs := newTestManager(t, x)
	ctx := context.Background()
	m.Add(ctx, "2024-01-01", "Groceries", "50")

	if _, err := m.Save(ctx); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.Contains(logs.String(), "error_type=export_error") {
		t.Errorf("expected export error log, got %q", logs.String())
	}
}

func TestExpenseManager_SaveWritesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	m, _ := newTestManager(t, export.NewExporter(5*time.Second, export.NewCSVSink(path)))
	ctx := context.Background()
	m.Add(ctx, "2024-01-01", "Groceries", "50")
	m.Add(ctx, "2024-01-02", "Transport", "20")

	results, err := m.Save(ctx)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(results) != 1 || results[0].Sink != "csv" || results[0].Ref != path {
		t.Fatalf("results = %+v", results)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "Date,Description,Amount\r\n2024-01-01,Groceries,50.0\r\n2024-01-02,Transport,20.0\r\n"
	if string(data) != want {
		t.Errorf("csv = %q, want %q", data, want)
	}
}
