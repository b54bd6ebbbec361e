package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"expenses/internal/core"
	applog "expenses/internal/log"
)

// Exporter fans a ledger snapshot out to every configured sink.
type Exporter struct {
	sinks   []Sink
	timeout time.Duration
}

func NewExporter(timeout time.Duration, sinks ...Sink) *Exporter {
	return &Exporter{sinks: sinks, timeout: timeout}
}

// Sinks returns the configured sink names in order.
func (x *Exporter) Sinks() []string {
	names := make([]string, len(x.sinks))
	for i, s := range x.sinks {
		names[i] = s.Name()
	}
	return names
}

// Export writes one batch to all sinks concurrently. Results are returned in
// sink order. The first failing sink cancels the others.
func (x *Exporter) Export(ctx context.Context, records []core.Expense) ([]Result, error) {
	b, err := NewBatch(records)
	if err != nil {
		return nil, err
	}
	if len(x.sinks) == 0 {
		return nil, fmt.Errorf("no export sinks configured")
	}

	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	results := make([]Result, len(x.sinks))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range x.sinks {
		g.Go(func() error {
			start := time.Now()
			ref, err := s.Write(gctx, b)
			if err != nil {
				return fmt.Errorf("%s sink: %w", s.Name(), err)
			}
			results[i] = Result{Sink: s.Name(), Ref: ref}
			slog.DebugContext(gctx, "Export batch written",
				applog.FieldComponent, applog.ComponentExport,
				applog.FieldSink, s.Name(),
				applog.FieldSinkRef, ref,
				applog.FieldExportID, b.ID,
				applog.FieldCount, len(b.Records),
				applog.FieldDuration, time.Since(start).Milliseconds())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
