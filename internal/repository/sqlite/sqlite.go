package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"netaudit/internal/domain"
	"netaudit/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// compile-time interface check
var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL for concurrent readers, busy timeout so the server and CLI can
	// share a database file.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS devices (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		location_id TEXT,
		location_name TEXT,
		role_id TEXT,
		role_name TEXT,
		type_id TEXT,
		type_name TEXT,
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS circuits (
		id TEXT PRIMARY KEY,
		cid TEXT NOT NULL,
		data JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		check_name TEXT NOT NULL,
		params JSON,
		status TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		record_count INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);

	CREATE TABLE IF NOT EXISTS records (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		check_name TEXT NOT NULL,
		subject_kind TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		subject_name TEXT NOT NULL,
		verdict TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (run_id, seq),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_devices_location ON devices(location_name);
	CREATE INDEX IF NOT EXISTS idx_devices_role ON devices(role_name);
	CREATE INDEX IF NOT EXISTS idx_devices_type ON devices(type_name);
	CREATE INDEX IF NOT EXISTS idx_runs_check ON runs(check_name, started_at);
	CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id, seq);
	`

	_, err := r.db.Exec(schema)
	return err
}

// GetInventory loads the complete inventory snapshot
func (r *Repository) GetInventory(ctx context.Context) (*domain.Inventory, error) {
	inv := domain.NewInventory()

	devices, err := r.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	inv.Devices = devices

	circuits, err := r.ListCircuits(ctx)
	if err != nil {
		return nil, err
	}
	inv.Circuits = circuits

	return inv, nil
}

// ListDevices returns every device in the snapshot, ordered by name
func (r *Repository) ListDevices(ctx context.Context) ([]domain.Device, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, data FROM devices ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	devices := make([]domain.Device, 0)
	for rows.Next() {
		var (
			id, name string
			data     []byte
		)
		if err := rows.Scan(&id, &name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}

		var device domain.Device
		if err := json.Unmarshal(data, &device); err != nil {
			return nil, fmt.Errorf("failed to unmarshal device data: %w", err)
		}

		// Indexed columns win over the JSON document
		device.ID = id
		device.Name = name

		devices = append(devices, device)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating devices: %w", err)
	}
	return devices, nil
}

// ListCircuits returns every circuit in the snapshot, ordered by CID
func (r *Repository) ListCircuits(ctx context.Context) ([]domain.Circuit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, cid, data FROM circuits ORDER BY cid, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}
	defer rows.Close()

	circuits := make([]domain.Circuit, 0)
	for rows.Next() {
		var (
			id, cid string
			data    []byte
		)
		if err := rows.Scan(&id, &cid, &data); err != nil {
			return nil, fmt.Errorf("failed to scan circuit: %w", err)
		}

		var circuit domain.Circuit
		if err := json.Unmarshal(data, &circuit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal circuit data: %w", err)
		}

		circuit.ID = id
		circuit.CID = cid

		circuits = append(circuits, circuit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating circuits: %w", err)
	}
	return circuits, nil
}

// ReplaceInventory atomically replaces the snapshot with the given one
func (r *Repository) ReplaceInventory(ctx context.Context, inv *domain.Inventory) (repository.ImportCounts, error) {
	var counts repository.ImportCounts

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM devices`); err != nil {
		return counts, fmt.Errorf("failed to clear devices: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM circuits`); err != nil {
		return counts, fmt.Errorf("failed to clear circuits: %w", err)
	}

	for i := range inv.Devices {
		device := &inv.Devices[i]
		args, err := deviceInsertArgs(device)
		if err != nil {
			return counts, err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO devices (id, name, location_id, location_name,
				role_id, role_name, type_id, type_name, data)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, args...); err != nil {
			return counts, fmt.Errorf("failed to insert device %s: %w", device.Name, err)
		}
		counts.Devices++
	}

	for i := range inv.Circuits {
		circuit := &inv.Circuits[i]
		data, err := json.Marshal(circuit)
		if err != nil {
			return counts, fmt.Errorf("failed to marshal circuit %s: %w", circuit.CID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO circuits (id, cid, data) VALUES (?, ?, ?)
		`, circuit.ID, circuit.CID, data); err != nil {
			return counts, fmt.Errorf("failed to insert circuit %s: %w", circuit.CID, err)
		}
		counts.Circuits++
	}

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("failed to commit import: %w", err)
	}
	return counts, nil
}

// CreateRun inserts a new run row
func (r *Repository) CreateRun(ctx context.Context, run *domain.Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, check_name, params, status, started_at, record_count)
		VALUES (?, ?, ?, ?, ?, 0)
	`, run.ID, run.Check, stringToNull(run.Params), string(run.Status), run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// FinishRun updates a run's terminal status, count, and error
func (r *Repository) FinishRun(ctx context.Context, run *domain.Run) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, finished_at = ?, record_count = ?, error = ?
		WHERE id = ?
	`, string(run.Status), timePtrToNull(run.FinishedAt), run.RecordCount,
		stringToNull(run.Error), run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s not found", run.ID)
	}
	return nil
}

// GetRun returns a single run, or nil if it does not exist
func (r *Repository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+runColumns+` FROM runs WHERE id = ?
	`, id)

	var rr runRow
	if err := row.Scan(rr.scanArgs()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return rr.toDomain(), nil
}

// ListRuns returns the most recent runs, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.Run, 0)
	for rows.Next() {
		var rr runRow
		if err := rows.Scan(rr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *rr.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// AppendRecord persists one verdict record
func (r *Repository) AppendRecord(ctx context.Context, rec domain.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (run_id, seq, check_name, subject_kind, subject_id,
			subject_name, verdict, severity, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, rec.Seq, rec.Check, string(rec.Subject.Kind), rec.Subject.ID,
		rec.Subject.Name, string(rec.Verdict), string(rec.Severity), rec.Message,
		rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

// ListRecords returns a run's verdict records in emission order
func (r *Repository) ListRecords(ctx context.Context, runID string) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM records WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var rr recordRow
		if err := rows.Scan(rr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rr.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
