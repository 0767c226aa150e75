// Package handler implements HTTP request handlers for the netaudit API.
//
// # Handlers
//
// APIHandler serves the inventory snapshot (summary, devices, circuits),
// YAML import, the check catalog, check execution, and run/record browsing.
//
// Middleware provides panic recovery, CORS support, and request logging.
//
// # Response Format
//
// Success responses return JSON with appropriate status codes.
// Error responses return JSON with an {error, details} structure.
//
// Run records can be exported as a rendered report via
// GET /api/runs/{id}/records?format=yaml.
//
// # Server-Sent Events
//
// The /events endpoint streams run lifecycle and verdict events via SSE,
// so a client can follow a check run live.
package handler
