package domain

import "time"

// Verdict is the outcome of one predicate applied to one inventory item
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Severity classifies a record for log output: passing items are
// informational, failing items are warnings. Structural errors that
// abort a run carry no record; they live in the run's error field.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// SeverityFor returns the log severity for a verdict
func SeverityFor(v Verdict) Severity {
	if v == VerdictPass {
		return SeverityInfo
	}
	return SeverityWarning
}

// SubjectKind identifies the inventory entity type a record is about
type SubjectKind string

const (
	SubjectDevice  SubjectKind = "device"
	SubjectCircuit SubjectKind = "circuit"
)

// Subject is the inventory item a verdict record refers to
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   string      `json:"id"`
	Name string      `json:"name"`
}

// Record is one structured verdict emitted by a check: exactly one per
// inspected item per predicate stage, never aggregated.
type Record struct {
	RunID     string    `json:"run_id"`
	Seq       int       `json:"seq"`
	Check     string    `json:"check"`
	Subject   Subject   `json:"subject"`
	Verdict   Verdict   `json:"verdict"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
