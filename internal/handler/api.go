package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"netaudit/internal/check"
	"netaudit/internal/codec"
	"netaudit/internal/loader"
	"netaudit/internal/service"
)

// APIHandler handles API requests
type APIHandler struct {
	runSvc *service.RunService
	invSvc *service.InventoryService
	log    *zap.Logger
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(runSvc *service.RunService, invSvc *service.InventoryService, log *zap.Logger) *APIHandler {
	return &APIHandler{runSvc: runSvc, invSvc: invSvc, log: log}
}

// ErrorResponse is the JSON body of an error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetInventory returns the inventory summary
func (h *APIHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	summary, err := h.invSvc.Summary(r.Context())
	if err != nil {
		h.log.Error("failed to get inventory summary", zap.Error(err))
		h.writeError(w, "Failed to get inventory", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, summary, http.StatusOK)
}

// ListDevices returns all devices in the snapshot
func (h *APIHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.invSvc.ListDevices(r.Context())
	if err != nil {
		h.log.Error("failed to list devices", zap.Error(err))
		h.writeError(w, "Failed to list devices", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, devices, http.StatusOK)
}

// ListCircuits returns all circuits in the snapshot
func (h *APIHandler) ListCircuits(w http.ResponseWriter, r *http.Request) {
	circuits, err := h.invSvc.ListCircuits(r.Context())
	if err != nil {
		h.log.Error("failed to list circuits", zap.Error(err))
		h.writeError(w, "Failed to list circuits", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, circuits, http.StatusOK)
}

// ImportYAML replaces the snapshot from a YAML inventory in the request body
func (h *APIHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, "Failed to read request body", err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := loader.Parse(data)
	if err != nil {
		h.writeError(w, "Invalid inventory YAML", err.Error(), http.StatusBadRequest)
		return
	}

	counts, err := h.invSvc.Replace(r.Context(), inv)
	if err != nil {
		h.log.Error("failed to import inventory", zap.Error(err))
		h.writeError(w, "Failed to import inventory", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, counts, http.StatusOK)
}

// ListChecks returns the check catalog
func (h *APIHandler) ListChecks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.runSvc.ListChecks(), http.StatusOK)
}

// RunCheck executes a check and returns the finished run
func (h *APIHandler) RunCheck(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		h.writeError(w, "Check name required", "", http.StatusBadRequest)
		return
	}

	var params check.Params
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}
	}

	run, err := h.runSvc.Run(r.Context(), name, params)
	if err != nil && run == nil {
		// Rejected before it started: unknown check, bad params, or a
		// snapshot load failure.
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "load inventory") {
			status = http.StatusInternalServerError
		}
		h.writeError(w, "Failed to run check", err.Error(), status)
		return
	}

	// A failed run is still a run; the client reads the status field.
	h.writeJSON(w, run, http.StatusOK)
}

// ListRuns returns the most recent runs
func (h *APIHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, "Invalid limit", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.runSvc.ListRuns(r.Context(), limit)
	if err != nil {
		h.log.Error("failed to list runs", zap.Error(err))
		h.writeError(w, "Failed to list runs", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, runs, http.StatusOK)
}

// GetRun returns a single run
func (h *APIHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Run ID required", "", http.StatusBadRequest)
		return
	}

	run, err := h.runSvc.GetRun(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error("failed to get run", zap.Error(err))
		h.writeError(w, "Failed to get run", err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, run, http.StatusOK)
}

// GetRunRecords returns a run's verdict records, optionally as a rendered
// report (?format=json|yaml)
func (h *APIHandler) GetRunRecords(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Run ID required", "", http.StatusBadRequest)
		return
	}

	run, err := h.runSvc.GetRun(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
			return
		}
		h.log.Error("failed to get run", zap.Error(err))
		h.writeError(w, "Failed to get run", err.Error(), http.StatusInternalServerError)
		return
	}

	records, err := h.runSvc.ListRecords(r.Context(), id)
	if err != nil {
		h.log.Error("failed to list records", zap.Error(err))
		h.writeError(w, "Failed to list records", err.Error(), http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		h.writeJSON(w, records, http.StatusOK)
		return
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		h.writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=run-%s.yml", id))
	if err := c.Write(w, codec.Report{Run: *run, Records: records}); err != nil {
		h.log.Error("failed to render report", zap.Error(err))
		// Headers are already out, nothing more to say to the client
		return
	}
}

// Helper methods

func (h *APIHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

func (h *APIHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.log.Error("failed to encode error response", zap.Error(err))
	}
}

// Routes registers all API routes on a mux
func (h *APIHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/inventory", h.GetInventory)
	mux.HandleFunc("GET /api/devices", h.ListDevices)
	mux.HandleFunc("GET /api/circuits", h.ListCircuits)
	mux.HandleFunc("POST /api/import/yaml", h.ImportYAML)

	mux.HandleFunc("GET /api/checks", h.ListChecks)
	mux.HandleFunc("POST /api/checks/{name}/run", h.RunCheck)

	mux.HandleFunc("GET /api/runs", h.ListRuns)
	mux.HandleFunc("GET /api/runs/{id}", h.GetRun)
	mux.HandleFunc("GET /api/runs/{id}/records", h.GetRunRecords)
}
