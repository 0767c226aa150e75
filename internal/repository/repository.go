package repository

import (
	"context"

	"netaudit/internal/domain"
)

// ImportCounts reports what an inventory import wrote
type ImportCounts struct {
	Devices  int `json:"devices"`
	Circuits int `json:"circuits"`
}

// Repository defines data access for netaudit. The inventory side is a
// snapshot store: imports replace the snapshot wholesale, checks only
// read it. The run side records check executions and their verdicts.
type Repository interface {
	// Inventory snapshot (read)
	GetInventory(ctx context.Context) (*domain.Inventory, error)
	ListDevices(ctx context.Context) ([]domain.Device, error)
	ListCircuits(ctx context.Context) ([]domain.Circuit, error)

	// Inventory snapshot (replace)
	ReplaceInventory(ctx context.Context, inv *domain.Inventory) (ImportCounts, error)

	// Check runs
	CreateRun(ctx context.Context, run *domain.Run) error
	FinishRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// Verdict records
	AppendRecord(ctx context.Context, rec domain.Record) error
	ListRecords(ctx context.Context, runID string) ([]domain.Record, error)

	// Close releases resources
	Close() error
}
