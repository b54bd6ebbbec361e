package console

import (
	"bytes"
	"context"
	"errors"
	"io"
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
	"expenses/internal/services"
)

func newTestConsole(t *testing.T, input string) (*Console, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.csv")
	logger := applog.New(applog.Config{Handler: applog.NewTextHandler(io.Discard, slog.LevelDebug)})
	mgr := services.NewExpenseManager(ledger.New(), export.NewExporter(5*time.Second, export.NewCSVSink(path)), logger)

	var out bytes.Buffer
	return New(mgr, strings.NewReader(input), &out, 20), &out, path
}

func TestConsoleSession(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"display",
		"save",
		"add", "2024-01-01", "Groceries", "50",
		"add", "bad", "x", "1",
		"add", "2024-01-02", "   ", "5",
		"add", "2024-01-02", "Transport", "abc",
		"add", "2024-01-02", "Transport", "20",
		"list",
		"delete",
		"delete 9",
		"delete 1",
		"display",
		"save",
		"frobnicate",
		"quit",
		"add",
	}, "\n") + "\n"

	c, out, path := newTestConsole(t, input)
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	transcript := out.String()
	wants := []string{
		"Commands:",
		"No expenses to display.",
		"No expenses to save.",
		"Added: 2024-01-01  Groceries  50.0",
		"Input Error: Invalid date format!",
		"Input Error: All fields are required!",
		"Input Error: Amount must be a number!",
		"Added: 2024-01-02  Transport  20.0",
		"Delete Error: No expense selected!",
		"Deleted: 2024-01-01  Groceries  50.0",
		"Total Expenses: 20.0",
		"Average Expense: 20.0",
		"100.0%",
		"Expenses Over Time",
		"Expenses saved to " + path + " (csv)",
		`Unknown command "frobnicate"`,
		"Bye.",
	}
	last := -1
	for _, want := range wants {
		idx := strings.Index(transcript, want)
		if idx < 0 {
			t.Errorf("transcript missing %q", want)
			continue
		}
		if idx < last {
			t.Errorf("%q printed out of order", want)
		}
		last = idx
	}
	if strings.Count(transcript, "Delete Error: No expense selected!") != 2 {
		t.Errorf("expected two no-selection warnings:\n%s", transcript)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "Date,Description,Amount\r\n2024-01-02,Transport,20.0\r\n" {
		t.Errorf("csv = %q", data)
	}
}

func TestConsoleEndOfInput(t *testing.T) {
	c, out, _ := newTestConsole(t, "add\n2024-01-01\n")
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out.String(), "Added:") {
		t.Errorf("partial add should not record anything:\n%s", out)
	}
}

func TestConsoleCancellation(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	logger := applog.New(applog.Config{Handler: applog.NewTextHandler(io.Discard, slog.LevelInfo)})
	mgr := services.NewExpenseManager(nil, nil, logger)
	c := New(mgr, pr, io.Discard, 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrEmptyField, "All fields are required!"},
		{core.ErrInvalidDateFormat, "Invalid date format!"},
		{core.ErrInvalidAmount, "Amount must be a number!"},
		{core.ErrNoSelection, "No expense selected!"},
		{errors.New("csv sink: disk full"), "Error: csv sink: disk full"},
	}
	for _, tt := range tests {
		if got := userMessage(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("userMessage(%v) = %q, want containing %q", tt.err, got, tt.want)
		}
	}
}
