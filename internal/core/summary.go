package core

// Summary holds the aggregate statistics of a ledger snapshot.
type Summary struct {
	Count   int
	Total   float64
	Average float64
}

// ChartData is the chart-ready projection of a ledger snapshot.
// Categories are the record descriptions; both series follow ledger order.
type ChartData struct {
	Categories      []string
	Amounts         []float64
	Dates           []string
	AmountsOverTime []float64
}
