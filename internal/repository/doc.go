// Package repository defines the data access interfaces for netaudit.
//
// This package provides the repository abstraction for the inventory
// snapshot and for check-run results. The actual implementation is in
// the sqlite subpackage.
//
// # Repository Interface
//
// The Repository interface covers two concerns with different write
// disciplines:
//
//   - The inventory snapshot (devices, circuits) is replaced atomically
//     by imports and read by check runs. Checks never write to it.
//   - Runs and verdict records are append-only: every check run creates
//     a run row and streams its records into the records table.
//
// # SQLite Implementation
//
// The sqlite implementation uses WAL mode for concurrency and stores
// each device/circuit as a JSON document alongside indexed columns for
// the attributes the device filter selects on. Schema migration happens
// automatically on startup.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
