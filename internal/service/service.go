package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"netaudit/internal/check"
	"netaudit/internal/domain"
	"netaudit/internal/report"
	"netaudit/internal/repository"
)

// CheckInfo describes an available check for the API and CLI
type CheckInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunService orchestrates check runs: it loads the inventory snapshot,
// executes the requested check, and fans verdict records out to the
// results store, the process log, and the event bus.
type RunService struct {
	repo repository.Repository
	bus  *EventBus
	log  *zap.Logger
}

// NewRunService creates a new run service
func NewRunService(repo repository.Repository, bus *EventBus, log *zap.Logger) *RunService {
	return &RunService{repo: repo, bus: bus, log: log}
}

// ListChecks returns every available check
func (s *RunService) ListChecks() []CheckInfo {
	infos := make([]CheckInfo, 0, 5)
	for _, c := range check.All(s.log) {
		infos = append(infos, CheckInfo{Name: c.Name(), Description: c.Description()})
	}
	return infos
}

// Run executes one check over the current snapshot. The returned run
// carries the terminal status; if the check aborted on a structural
// inventory error, the run is marked failed and the error is returned.
func (s *RunService) Run(ctx context.Context, checkName string, params check.Params) (*domain.Run, error) {
	chk, err := check.ByName(s.log, checkName)
	if err != nil {
		return nil, err
	}
	if err := chk.Validate(params); err != nil {
		return nil, fmt.Errorf("invalid params for %s: %w", checkName, err)
	}

	inv, err := s.repo.GetInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	run := &domain.Run{
		ID:        uuid.NewString(),
		Check:     checkName,
		Params:    string(paramsJSON),
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	s.log.Info("check run started",
		zap.String("run_id", run.ID),
		zap.String("check", checkName),
		zap.Int("devices", len(inv.Devices)),
		zap.Int("circuits", len(inv.Circuits)))
	// Bus payloads are value snapshots: subscribers marshal them on their
	// own goroutines while this one keeps mutating run.
	s.bus.Publish(Event{Type: EventRunStarted, Payload: *run})

	// Sequence stamps run ID and seq once, so the store and the bus see
	// the same record identity.
	rep := report.NewSequence(run.ID,
		report.Multi(report.NewStore(s.repo), report.NewZap(s.log), s.busReporter()))

	runErr := chk.Run(ctx, inv, params, rep)

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.RecordCount = rep.Count()
	if runErr != nil {
		run.Status = domain.RunStatusFailed
		run.Error = runErr.Error()
		s.log.Error("check run failed",
			zap.String("run_id", run.ID),
			zap.String("check", checkName),
			zap.Error(runErr))
	} else {
		run.Status = domain.RunStatusCompleted
		s.log.Info("check run completed",
			zap.String("run_id", run.ID),
			zap.String("check", checkName),
			zap.Int("records", run.RecordCount))
	}

	if err := s.repo.FinishRun(ctx, run); err != nil {
		return run, fmt.Errorf("finish run %s: %w", run.ID, err)
	}
	s.bus.Publish(Event{Type: EventRunFinished, Payload: *run})

	return run, runErr
}

// busReporter publishes each verdict record to the event bus
func (s *RunService) busReporter() report.Reporter {
	return report.ReporterFunc(func(_ context.Context, rec domain.Record) error {
		s.bus.Publish(Event{Type: EventRecordEmitted, Payload: rec})
		return nil
	})
}

// GetRun returns a single run
func (s *RunService) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

// ListRuns returns the most recent runs
func (s *RunService) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	return s.repo.ListRuns(ctx, limit)
}

// ListRecords returns a run's verdict records
func (s *RunService) ListRecords(ctx context.Context, runID string) ([]domain.Record, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(ctx, runID)
}

// InventoryService manages the inventory snapshot
type InventoryService struct {
	repo repository.Repository
	bus  *EventBus
	log  *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repository.Repository, bus *EventBus, log *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, bus: bus, log: log}
}

// Summary returns snapshot counts
func (s *InventoryService) Summary(ctx context.Context) (domain.Summary, error) {
	inv, err := s.repo.GetInventory(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return inv.Summarize(), nil
}

// ListDevices returns the snapshot's devices
func (s *InventoryService) ListDevices(ctx context.Context) ([]domain.Device, error) {
	return s.repo.ListDevices(ctx)
}

// ListCircuits returns the snapshot's circuits
func (s *InventoryService) ListCircuits(ctx context.Context) ([]domain.Circuit, error) {
	return s.repo.ListCircuits(ctx)
}

// Replace swaps in a new snapshot and announces it
func (s *InventoryService) Replace(ctx context.Context, inv *domain.Inventory) (repository.ImportCounts, error) {
	counts, err := s.repo.ReplaceInventory(ctx, inv)
	if err != nil {
		return counts, err
	}

	s.log.Info("inventory replaced",
		zap.Int("devices", counts.Devices),
		zap.Int("circuits", counts.Circuits))
	s.bus.Publish(Event{Type: EventInventoryImported, Payload: counts})

	return counts, nil
}
