package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/repository/sqlite"
	"netaudit/internal/service"
)

const importYAML = `
version: 1
devices:
  sw-01:
    location: nyc
    role: access-switch
    device_type: ex4300
    platform: junos
    rack: nyc-r1
    primary_ip: 10.0.0.1
  rtr-02:
    location: sfo
    role: edge-router
    device_type: mx204
circuits:
  CID-1001: {}
`

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	bus := service.NewEventBus()
	log := zap.NewNop()
	runSvc := service.NewRunService(repo, bus, log)
	invSvc := service.NewInventoryService(repo, bus, log)

	mux := http.NewServeMux()
	NewAPIHandler(runSvc, invSvc, log).Routes(mux)
	return Chain(mux, Recover(log), CORS, Logger(log))
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestImportAndInventory(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/import/yaml", importYAML)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var counts struct {
		Devices  int `json:"devices"`
		Circuits int `json:"circuits"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counts))
	assert.Equal(t, 2, counts.Devices)
	assert.Equal(t, 1, counts.Circuits)

	rr = doRequest(t, h, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Devices)
	assert.Equal(t, 1, summary.Circuits)

	rr = doRequest(t, h, http.MethodGet, "/api/devices", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var devices []domain.Device
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &devices))
	require.Len(t, devices, 2)
	assert.Equal(t, "rtr-02", devices[0].Name)
	assert.Equal(t, "sw-01", devices[1].Name)
}

func TestImportRejectsBadYAML(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodPost, "/api/import/yaml", "devices: [not, a, map]")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid inventory YAML", resp.Error)
}

func TestListChecks(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodGet, "/api/checks", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var checks []service.CheckInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &checks))
	require.Len(t, checks, 5)
	assert.Equal(t, "hostname", checks[0].Name)
}

func TestRunCheckEndpoint(t *testing.T) {
	h := newTestServer(t)
	rr := doRequest(t, h, http.MethodPost, "/api/import/yaml", importYAML)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("run with params", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/api/checks/hostname/run",
			`{"hostname_regex": "^(sw|rtr)-\\d+$"}`)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var run domain.Run
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
		assert.Equal(t, domain.RunStatusCompleted, run.Status)
		assert.Equal(t, 2, run.RecordCount)

		rr = doRequest(t, h, http.MethodGet, "/api/runs/"+run.ID+"/records", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var recs []domain.Record
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
		require.Len(t, recs, 2)
		assert.Equal(t, "Hostname is compliant.", recs[0].Message)
	})

	t.Run("run without body", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/api/checks/platform/run", "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var run domain.Run
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))
		assert.Equal(t, domain.RunStatusCompleted, run.Status)
	})

	t.Run("unknown check", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/api/checks/bogus/run", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid regex", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodPost, "/api/checks/hostname/run",
			`{"hostname_regex": "["}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestRunBrowsing(t *testing.T) {
	h := newTestServer(t)
	rr := doRequest(t, h, http.MethodPost, "/api/import/yaml", importYAML)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, h, http.MethodPost, "/api/checks/rack/run", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var run domain.Run
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &run))

	t.Run("list runs", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var runs []domain.Run
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
	})

	t.Run("get run", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs/"+run.ID, "")
		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown run is 404", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs/missing", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("yaml report export", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs/"+run.ID+"/records?format=yaml", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/x-yaml", rr.Header().Get("Content-Type"))
		assert.True(t, strings.Contains(rr.Body.String(), "check: rack"))
	})

	t.Run("bad format", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs/"+run.ID+"/records?format=xml", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		rr := doRequest(t, h, http.MethodGet, "/api/runs?limit=zero", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)

	rr := doRequest(t, h, http.MethodOptions, "/api/checks", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
