package export

import (
	"context"
	"time"

	"github.com/google/uuid"

	"expenses/internal/core"
)

// Ports for outbound adapters.
type (
	// Sink writes one export batch somewhere outside the process.
	Sink interface {
		// Name identifies the sink in logs and results ("csv", "sqlite", ...).
		Name() string
		// Write stores the batch and returns a sink-specific reference.
		Write(ctx context.Context, b Batch) (ref string, err error)
	}

	// Batch is an immutable snapshot of the ledger taken for one export run.
	Batch struct {
		ID        string
		CreatedAt time.Time
		Records   []core.Expense
	}

	// Result reports where a sink put the batch.
	Result struct {
		Sink string
		Ref  string
	}
)

// NewBatch copies records into a new batch with a fresh ID.
func NewBatch(records []core.Expense) (Batch, error) {
	if len(records) == 0 {
		return Batch{}, core.ErrNoData
	}
	return Batch{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   append([]core.Expense(nil), records...),
	}, nil
}

// Header is the column header shared by tabular sinks.
var Header = []string{"Date", "Description", "Amount"}

// Row renders a record as the three text columns of tabular sinks.
func Row(e core.Expense) []string {
	return []string{e.Date, e.Description, core.FormatAmount(e.Amount)}
}
