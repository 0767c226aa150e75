package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"netaudit/internal/domain"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullToTimePtr safely converts sql.NullTime to *time.Time
func nullToTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// timePtrToNull safely converts *time.Time to sql.NullTime
func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ============================================================================
// Device Write Helpers
// ============================================================================

// deviceInsertArgs prepares arguments for device INSERT.
// Returns: id, name, location_id, location_name, role_id, role_name,
// type_id, type_name, data
func deviceInsertArgs(device *domain.Device) ([]interface{}, error) {
	data, err := json.Marshal(device)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal device %s: %w", device.Name, err)
	}

	return []interface{}{
		device.ID,
		device.Name,
		stringToNull(device.Location.ID),
		stringToNull(device.Location.Name),
		stringToNull(device.Role.ID),
		stringToNull(device.Role.Name),
		stringToNull(device.Type.ID),
		stringToNull(device.Type.Name),
		data,
	}, nil
}

// ============================================================================
// Run Row Scanner
// ============================================================================

// runRow holds all columns from a run query for scanning
type runRow struct {
	ID          string
	Check       string
	Params      sql.NullString
	Status      string
	StartedAt   time.Time
	FinishedAt  sql.NullTime
	RecordCount int
	Error       sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan().
// MUST match runColumns order exactly.
func (r *runRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Check,
		&r.Params,
		&r.Status,
		&r.StartedAt,
		&r.FinishedAt,
		&r.RecordCount,
		&r.Error,
	}
}

// toDomain converts the scanned row to a domain.Run
func (r *runRow) toDomain() *domain.Run {
	return &domain.Run{
		ID:          r.ID,
		Check:       r.Check,
		Params:      nullToString(r.Params),
		Status:      domain.RunStatus(r.Status),
		StartedAt:   r.StartedAt,
		FinishedAt:  nullToTimePtr(r.FinishedAt),
		RecordCount: r.RecordCount,
		Error:       nullToString(r.Error),
	}
}

// runColumns is the SELECT column list for run queries
const runColumns = `id, check_name, params, status, started_at, finished_at, record_count, error`

// ============================================================================
// Record Row Scanner
// ============================================================================

// recordRow holds all columns from a record query for scanning
type recordRow struct {
	RunID       string
	Seq         int
	Check       string
	SubjectKind string
	SubjectID   string
	SubjectName string
	Verdict     string
	Severity    string
	Message     string
	CreatedAt   time.Time
}

// scanArgs returns pointers to all fields for sql.Scan().
// MUST match recordColumns order exactly.
func (r *recordRow) scanArgs() []interface{} {
	return []interface{}{
		&r.RunID,
		&r.Seq,
		&r.Check,
		&r.SubjectKind,
		&r.SubjectID,
		&r.SubjectName,
		&r.Verdict,
		&r.Severity,
		&r.Message,
		&r.CreatedAt,
	}
}

// toDomain converts the scanned row to a domain.Record
func (r *recordRow) toDomain() domain.Record {
	return domain.Record{
		RunID: r.RunID,
		Seq:   r.Seq,
		Check: r.Check,
		Subject: domain.Subject{
			Kind: domain.SubjectKind(r.SubjectKind),
			ID:   r.SubjectID,
			Name: r.SubjectName,
		},
		Verdict:   domain.Verdict(r.Verdict),
		Severity:  domain.Severity(r.Severity),
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

// recordColumns is the SELECT column list for record queries
const recordColumns = `run_id, seq, check_name, subject_kind, subject_id, subject_name, verdict, severity, message, created_at`
