package report

import (
	"context"

	"netaudit/internal/domain"
)

// Buffer collects records in memory. Used by the CLI for offline runs and
// by tests to assert on emitted records.
type Buffer struct {
	records []domain.Record
}

// NewBuffer creates an empty buffer reporter
func NewBuffer() *Buffer {
	return &Buffer{records: make([]domain.Record, 0)}
}

// Report implements Reporter
func (b *Buffer) Report(_ context.Context, rec domain.Record) error {
	b.records = append(b.records, rec)
	return nil
}

// Records returns the collected records in emission order
func (b *Buffer) Records() []domain.Record {
	return b.records
}

// Len returns the number of collected records
func (b *Buffer) Len() int {
	return len(b.records)
}
