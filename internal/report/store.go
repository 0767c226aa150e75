package report

import (
	"context"
	"fmt"

	"netaudit/internal/domain"
)

// RecordAppender persists verdict records; implemented by the SQLite
// repository.
type RecordAppender interface {
	AppendRecord(ctx context.Context, rec domain.Record) error
}

// StoreReporter persists each record as it is emitted. Records must
// already carry their run ID and sequence number; see SequenceReporter.
type StoreReporter struct {
	store RecordAppender
}

// NewStore creates a store-backed reporter
func NewStore(store RecordAppender) *StoreReporter {
	return &StoreReporter{store: store}
}

// Report implements Reporter
func (s *StoreReporter) Report(ctx context.Context, rec domain.Record) error {
	if err := s.store.AppendRecord(ctx, rec); err != nil {
		return fmt.Errorf("append record %d for run %s: %w", rec.Seq, rec.RunID, err)
	}
	return nil
}

// SequenceReporter stamps each record with its run ID and a 1-based
// sequence number before handing it on, so every downstream consumer
// (store, log, event bus) sees the same record identity.
type SequenceReporter struct {
	next  Reporter
	runID string
	seq   int
}

// NewSequence wraps a reporter with run ID and sequence stamping
func NewSequence(runID string, next Reporter) *SequenceReporter {
	return &SequenceReporter{next: next, runID: runID}
}

// Count returns the number of records reported so far
func (s *SequenceReporter) Count() int {
	return s.seq
}

// Report implements Reporter
func (s *SequenceReporter) Report(ctx context.Context, rec domain.Record) error {
	rec.RunID = s.runID
	s.seq++
	rec.Seq = s.seq
	return s.next.Report(ctx, rec)
}
