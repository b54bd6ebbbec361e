// Package report renders ledger snapshots, statistics and text charts for the console.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"expenses/internal/analysis"
	"expenses/internal/core"
)

// DefaultWidth is the bar length used when a non-positive width is given.
const DefaultWidth = 40

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	summaryStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// Table renders the records with 1-based positions, the handles accepted by
// the console's delete command.
func Table(records []core.Expense) string {
	rows := make([][]string, len(records))
	for i, e := range records {
		rows[i] = []string{strconv.Itoa(i + 1), e.Date, e.Description, core.FormatAmount(e.Amount)}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Date", "Description", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 || col == 3 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	return t.String()
}

// Summary renders the two statistics of the display action.
func Summary(s core.Summary) string {
	body := fmt.Sprintf("Total Expenses: %s\nAverage Expense: %s",
		core.FormatAmount(s.Total), core.FormatAmount(s.Average))
	return summaryStyle.Render(body)
}

// Pie renders the share of each description as a percentage and a bar.
func Pie(slices []analysis.Slice, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	labels := make([]string, len(slices))
	for i, s := range slices {
		labels[i] = s.Label
	}
	pad := labelWidth(labels)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Expenses by Category"))
	for _, s := range slices {
		n := int(math.Round(s.Percent / 100 * float64(width)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(padRight(s.Label, pad)))
		b.WriteString(fmt.Sprintf(" %6.1f%% ", s.Percent))
		b.WriteString(positiveStyle.Render(strings.Repeat("█", n)))
	}
	return b.String()
}

// Bars renders one bar per record in ledger order, scaled to the largest
// absolute amount. Negative amounts are drawn in a separate style.
func Bars(cd core.ChartData, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	peak := 0.0
	for _, a := range cd.AmountsOverTime {
		peak = math.Max(peak, math.Abs(a))
	}
	pad := labelWidth(cd.Dates)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Expenses Over Time"))
	for i, date := range cd.Dates {
		amount := cd.AmountsOverTime[i]
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(amount) / peak * float64(width)))
		}
		style, glyph := positiveStyle, "█"
		if amount < 0 {
			style, glyph = negativeStyle, "░"
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(padRight(date, pad)))
		b.WriteString(" ")
		b.WriteString(style.Render(strings.Repeat(glyph, n)))
		b.WriteString(" ")
		b.WriteString(core.FormatAmount(amount))
	}
	return b.String()
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return w
}

func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
