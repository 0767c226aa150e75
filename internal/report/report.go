// Package report delivers verdict records to their consumers.
//
// Checks compute verdicts; they never decide where verdicts go. A
// Reporter receives one Record per inspected item and forwards it to a
// backend: the structured process log (zap), the results store (SQLite),
// an in-memory buffer, or several of these combined.
package report

import (
	"context"

	"netaudit/internal/domain"
)

// Reporter consumes verdict records as a check emits them. A Reporter
// error is fatal for the run in progress: no recovery policy is defined
// for a verdict that cannot be recorded.
type Reporter interface {
	Report(ctx context.Context, rec domain.Record) error
}

// ReporterFunc adapts a function into a Reporter
type ReporterFunc func(ctx context.Context, rec domain.Record) error

// Report implements Reporter
func (f ReporterFunc) Report(ctx context.Context, rec domain.Record) error {
	return f(ctx, rec)
}

// Multi fans a record out to several reporters in order, stopping at the
// first error.
func Multi(reporters ...Reporter) Reporter {
	return ReporterFunc(func(ctx context.Context, rec domain.Record) error {
		for _, r := range reporters {
			if err := r.Report(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Discard drops every record. Useful when a caller only wants the run's
// error outcome.
var Discard Reporter = ReporterFunc(func(context.Context, domain.Record) error {
	return nil
})
