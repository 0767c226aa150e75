// Package domain defines the core domain types for the netaudit
// data-quality auditing system.
//
// This package contains the entities and value objects the checks operate
// on: devices, circuits, the inventory snapshot that holds them, and the
// verdict records the checks produce.
//
// # Inventory Types
//
// Device represents a single device record from the network source of
// truth, with references to its location, role, device type, and the
// optional attributes (platform, rack, primary IP, virtual chassis) the
// data-quality checks inspect.
//
// Circuit represents a circuit with its primary termination point. A
// termination resolves (or fails to resolve) to a Path ending at a
// destination Interface on some device.
//
// Inventory is the read-only snapshot supplied to a check run. Nothing in
// netaudit ever mutates inventory objects.
//
// # Verdict Types
//
// Record is one structured verdict about one inventory item: subject
// reference, pass/fail verdict, severity, and a human-readable message.
// Run tracks one execution of one check over one snapshot.
//
// # Design Principles
//
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Read-only view of the source of truth
package domain
