package report

import (
	"context"

	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// Sink receives the three result tables of a run. Every write replaces what the
// destination held before.
type Sink interface {
	WriteLatestSnapshot(ctx context.Context, rows []SnapshotRow) error
	WriteSummary(ctx context.Context, rows []SummaryRow) error
	WriteMLResults(ctx context.Context, rows []MLResultRow) error
}

// MultiSink writes every table to each of its sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink fans writes out to sinks in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Len returns the number of sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}

// WriteLatestSnapshot implements Sink. A failing sink does not stop the others.
func (m *MultiSink) WriteLatestSnapshot(ctx context.Context, rows []SnapshotRow) error {
	return m.each(func(s Sink) error { return s.WriteLatestSnapshot(ctx, rows) })
}

// WriteSummary implements Sink.
func (m *MultiSink) WriteSummary(ctx context.Context, rows []SummaryRow) error {
	return m.each(func(s Sink) error { return s.WriteSummary(ctx, rows) })
}

// WriteMLResults implements Sink.
func (m *MultiSink) WriteMLResults(ctx context.Context, rows []MLResultRow) error {
	return m.each(func(s Sink) error { return s.WriteMLResults(ctx, rows) })
}

func (m *MultiSink) each(write func(Sink) error) error {
	var errs []error

	for _, s := range m.sinks {
		if err := write(s); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
