package domain

import "time"

// RunStatus is the lifecycle state of a check run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one execution of one check over one inventory snapshot. Runs are
// independent and stateless between invocations; a failed run records its
// error and keeps whatever records were emitted before the failure.
type Run struct {
	ID          string     `json:"id"`
	Check       string     `json:"check"`
	Params      string     `json:"params,omitempty"` // JSON-encoded check parameters
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	RecordCount int        `json:"record_count"`
	Error       string     `json:"error,omitempty"`
}

// IsFinished returns true once the run has a terminal status
func (r *Run) IsFinished() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}
