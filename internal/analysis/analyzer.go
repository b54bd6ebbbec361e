// Package analysis computes statistics and chart series from a ledger snapshot.
//
// Every function expects a non-empty snapshot; callers should check
// Ledger.IsEmpty first. An empty input is reported as core.ErrNoData.
package analysis

import (
	"errors"

	"expenses/internal/core"
)

// ErrNegativeWedge is returned when a pie chart is requested for negative amounts.
var ErrNegativeWedge = errors.New("pie chart requires non-negative amounts")

// Slice is one pie wedge.
type Slice struct {
	Label   string
	Amount  float64
	Percent float64
}

// Summarize returns the sum and arithmetic mean of the amounts.
func Summarize(records []core.Expense) (core.Summary, error) {
	if len(records) == 0 {
		return core.Summary{}, core.ErrNoData
	}
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return core.Summary{
		Count:   len(records),
		Total:   total,
		Average: total / float64(len(records)),
	}, nil
}

// ProjectForCharts splits the snapshot into the pie series (description as
// label) and the time series, both in ledger order. Dates are neither sorted
// nor merged.
func ProjectForCharts(records []core.Expense) (core.ChartData, error) {
	if len(records) == 0 {
		return core.ChartData{}, core.ErrNoData
	}
	cd := core.ChartData{
		Categories:      make([]string, len(records)),
		Amounts:         make([]float64, len(records)),
		Dates:           make([]string, len(records)),
		AmountsOverTime: make([]float64, len(records)),
	}
	for i, r := range records {
		cd.Categories[i] = r.Description
		cd.Amounts[i] = r.Amount
		cd.Dates[i] = r.Date
		cd.AmountsOverTime[i] = r.Amount
	}
	return cd, nil
}

// PieSlices converts the pie series into percentage wedges.
func PieSlices(cd core.ChartData) ([]Slice, error) {
	if len(cd.Amounts) == 0 {
		return nil, core.ErrNoData
	}
	var total float64
	for _, a := range cd.Amounts {
		if a < 0 {
			return nil, ErrNegativeWedge
		}
		total += a
	}
	if total == 0 {
		return nil, core.ErrNoData
	}
	out := make([]Slice, len(cd.Amounts))
	for i, a := range cd.Amounts {
		out[i] = Slice{Label: cd.Categories[i], Amount: a, Percent: a / total * 100}
	}
	return out, nil
}
