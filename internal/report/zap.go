package report

import (
	"context"

	"go.uber.org/zap"

	"netaudit/internal/domain"
)

// ZapReporter writes verdict records to a zap logger. Passing verdicts
// log at Info, failing verdicts at Warn.
type ZapReporter struct {
	log *zap.Logger
}

// NewZap creates a zap-backed reporter
func NewZap(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log}
}

// Report implements Reporter
func (z *ZapReporter) Report(_ context.Context, rec domain.Record) error {
	fields := []zap.Field{
		zap.String("check", rec.Check),
		zap.String("subject_kind", string(rec.Subject.Kind)),
		zap.String("subject", rec.Subject.Name),
		zap.String("verdict", string(rec.Verdict)),
	}
	if rec.RunID != "" {
		fields = append(fields, zap.String("run_id", rec.RunID))
	}

	switch rec.Severity {
	case domain.SeverityWarning:
		z.log.Warn(rec.Message, fields...)
	default:
		z.log.Info(rec.Message, fields...)
	}
	return nil
}
