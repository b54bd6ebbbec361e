package report

import (
	"strings"
	"testing"

	"expenses/internal/analysis"
	"expenses/internal/core"
)

func TestTable(t *testing.T) {
	out := Table([]core.Expense{
		{Date: "2024-01-01", Description: "Groceries", Amount: 50},
		{Date: "2024-01-02", Description: "Transport", Amount: 12.5},
	})

	for _, want := range []string{"Date", "Description", "Amount", "2024-01-01", "Groceries", "50.0", "Transport", "12.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Groceries") > strings.Index(out, "Transport") {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	out := Summary(core.Summary{Count: 2, Total: 70, Average: 35})
	if !strings.Contains(out, "Total Expenses: 70.0") || !strings.Contains(out, "Average Expense: 35.0") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestPie(t *testing.T) {
	out := Pie([]analysis.Slice{
		{Label: "Groceries", Amount: 75, Percent: 75},
		{Label: "Transport", Amount: 25, Percent: 25},
	}, 20)

	if !strings.Contains(out, "75.0%") || !strings.Contains(out, "25.0%") {
		t.Errorf("pie missing percentages:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title + 2 lines, got %d:\n%s", len(lines), out)
	}
	if got := strings.Count(lines[1], "█"); got != 15 {
		t.Errorf("groceries bar = %d cells, want 15", got)
	}
	if got := strings.Count(lines[2], "█"); got != 5 {
		t.Errorf("transport bar = %d cells, want 5", got)
	}
}

func TestBars(t *testing.T) {
	out := Bars(core.ChartData{
		Dates:           []string{"2024-01-01", "2024-01-02", "2024-01-02"},
		AmountsOverTime: []float64{50, 25, -10},
	}, 10)

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "Expenses Over Time") {
		t.Errorf("missing title: %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("expected one line per record, got:\n%s", out)
	}
	if strings.Count(lines[1], "█") != 10 || strings.Count(lines[2], "█") != 5 {
		t.Errorf("bars not scaled to peak:\n%s", out)
	}
	if strings.Count(lines[3], "░") != 2 || !strings.Contains(lines[3], "-10.0") {
		t.Errorf("negative bar wrong: %q", lines[3])
	}
}

func TestBarsAllZero(t *testing.T) {
	out := Bars(core.ChartData{Dates: []string{"2024-01-01"}, AmountsOverTime: []float64{0}}, 0)
	if strings.Contains(out, "█") || !strings.Contains(out, "0.0") {
		t.Errorf("unexpected zero chart:\n%s", out)
	}
}

func TestSummaryOverflow(t *testing.T) {
	large := 1e308
	out := Summary(core.Summary{Count: 2, Total: large + large, Average: large + large})
	if !strings.Contains(out, "Total Expenses: inf") || strings.Contains(out, "inf.0") {
		t.Errorf("unexpected overflow summary:\n%s", out)
	}
}
