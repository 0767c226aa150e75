// Package service implements business logic for the netaudit application.
//
// This package coordinates between the HTTP handlers / CLI and the
// repository layer.
//
// # Services
//
// RunService executes data-quality checks: it resolves the check by name,
// validates its parameters, loads the inventory snapshot, and streams
// verdict records to the results store, the structured log, and the event
// bus. Each run is independent and stateless between invocations.
//
// InventoryService manages the read-only inventory snapshot: summary
// counts, listings, and wholesale replacement on import.
//
// # Event System
//
// Services publish events via EventBus for real-time delivery to
// connected clients over Server-Sent Events (SSE): run lifecycle, verdict
// records as they are emitted, and inventory imports.
package service
