package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netaudit/internal/check"
	"netaudit/internal/domain"
	"netaudit/internal/repository/sqlite"
)

func newTestService(t *testing.T) (*RunService, *InventoryService, *EventBus) {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	bus := NewEventBus()
	log := zap.NewNop()
	return NewRunService(repo, bus, log), NewInventoryService(repo, bus, log), bus
}

func seedInventory(t *testing.T, inventorySvc *InventoryService) {
	t.Helper()
	inv := &domain.Inventory{
		Devices: []domain.Device{
			{ID: "dev-1", Name: "sw-01", Location: domain.Ref{Name: "nyc"},
				Role: domain.Ref{Name: "access-switch"}, Type: domain.Ref{Name: "ex4300"}},
			{ID: "dev-2", Name: "rtr-02", Location: domain.Ref{Name: "nyc"},
				Role: domain.Ref{Name: "edge-router"}, Type: domain.Ref{Name: "mx204"}},
		},
		Circuits: []domain.Circuit{
			{ID: "circ-1", CID: "CID-1001"},
		},
	}
	_, err := inventorySvc.Replace(context.Background(), inv)
	require.NoError(t, err)
}

func TestRunServiceRun(t *testing.T) {
	ctx := context.Background()

	t.Run("completed run persists verdicts", func(t *testing.T) {
		runSvc, invSvc, _ := newTestService(t)
		seedInventory(t, invSvc)

		run, err := runSvc.Run(ctx, "hostname", check.Params{HostnameRegex: "^sw-"})
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusCompleted, run.Status)
		assert.Equal(t, 2, run.RecordCount)
		require.NotNil(t, run.FinishedAt)

		recs, err := runSvc.ListRecords(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, run.ID, recs[0].RunID)
		assert.Equal(t, 1, recs[0].Seq)
		assert.Equal(t, domain.VerdictPass, recs[0].Verdict)
		assert.Equal(t, domain.VerdictFail, recs[1].Verdict)
	})

	t.Run("unknown check is rejected", func(t *testing.T) {
		runSvc, invSvc, _ := newTestService(t)
		seedInventory(t, invSvc)

		_, err := runSvc.Run(ctx, "cable-length", check.Params{})
		assert.Error(t, err)
	})

	t.Run("invalid params never create a run", func(t *testing.T) {
		runSvc, invSvc, _ := newTestService(t)
		seedInventory(t, invSvc)

		_, err := runSvc.Run(ctx, "hostname", check.Params{HostnameRegex: "("})
		require.Error(t, err)

		runs, err := runSvc.ListRuns(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})

	t.Run("structural error marks the run failed", func(t *testing.T) {
		runSvc, invSvc, _ := newTestService(t)
		_, err := invSvc.Replace(ctx, &domain.Inventory{
			Devices: []domain.Device{{ID: "dev-1", Name: "x"}},
			Circuits: []domain.Circuit{{
				ID: "circ-1", CID: "CID-1001",
				Termination: &domain.Termination{
					Path: &domain.Path{Destination: domain.Interface{Name: "xe-0/0/0"}},
				},
			}},
		})
		require.NoError(t, err)

		run, err := runSvc.Run(ctx, "circuit-termination", check.Params{})
		require.Error(t, err)
		require.NotNil(t, run)
		assert.Equal(t, domain.RunStatusFailed, run.Status)
		assert.NotEmpty(t, run.Error)

		// The failed status is persisted, not just returned
		got, err := runSvc.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RunStatusFailed, got.Status)
	})

	t.Run("events flow for a run", func(t *testing.T) {
		runSvc, invSvc, bus := newTestService(t)
		seedInventory(t, invSvc)

		events := make(chan Event, 32)
		bus.Subscribe(events)

		_, err := runSvc.Run(ctx, "platform", check.Params{})
		require.NoError(t, err)
		close(events)

		var types []EventType
		for ev := range events {
			types = append(types, ev.Type)
		}
		require.NotEmpty(t, types)
		assert.Equal(t, EventRunStarted, types[0])
		assert.Equal(t, EventRunFinished, types[len(types)-1])
		assert.Contains(t, types, EventRecordEmitted)
	})

	t.Run("bus payloads are run snapshots", func(t *testing.T) {
		runSvc, invSvc, bus := newTestService(t)
		seedInventory(t, invSvc)

		events := make(chan Event, 32)
		bus.Subscribe(events)

		// Marshal concurrently with the run, the way the SSE bridge does
		done := make(chan []Event)
		go func() {
			var seen []Event
			for ev := range events {
				if _, err := json.Marshal(ev); err != nil {
					t.Errorf("marshal event: %v", err)
				}
				seen = append(seen, ev)
			}
			done <- seen
		}()

		run, err := runSvc.Run(ctx, "platform", check.Params{})
		require.NoError(t, err)
		close(events)
		seen := <-done
		require.NotEmpty(t, seen)

		started, ok := seen[0].Payload.(domain.Run)
		require.True(t, ok, "run payloads should be value copies")
		assert.Equal(t, domain.RunStatusRunning, started.Status)
		assert.Nil(t, started.FinishedAt)

		finished, ok := seen[len(seen)-1].Payload.(domain.Run)
		require.True(t, ok)
		assert.Equal(t, domain.RunStatusCompleted, finished.Status)
		assert.Equal(t, run.RecordCount, finished.RecordCount)
	})

	t.Run("bus records carry the stored identity", func(t *testing.T) {
		runSvc, invSvc, bus := newTestService(t)
		seedInventory(t, invSvc)

		events := make(chan Event, 32)
		bus.Subscribe(events)

		run, err := runSvc.Run(ctx, "platform", check.Params{})
		require.NoError(t, err)
		close(events)

		var live []domain.Record
		for ev := range events {
			if ev.Type == EventRecordEmitted {
				rec, ok := ev.Payload.(domain.Record)
				require.True(t, ok)
				live = append(live, rec)
			}
		}

		stored, err := runSvc.ListRecords(ctx, run.ID)
		require.NoError(t, err)
		require.Len(t, live, len(stored))
		for i, rec := range live {
			assert.Equal(t, run.ID, rec.RunID)
			assert.Equal(t, i+1, rec.Seq)
			assert.Equal(t, stored[i].Seq, rec.Seq)
			assert.Equal(t, stored[i].Message, rec.Message)
		}
	})

	t.Run("runs twice over one snapshot emit identical verdicts", func(t *testing.T) {
		runSvc, invSvc, _ := newTestService(t)
		seedInventory(t, invSvc)

		first, err := runSvc.Run(ctx, "rack", check.Params{})
		require.NoError(t, err)
		second, err := runSvc.Run(ctx, "rack", check.Params{})
		require.NoError(t, err)

		firstRecs, err := runSvc.ListRecords(ctx, first.ID)
		require.NoError(t, err)
		secondRecs, err := runSvc.ListRecords(ctx, second.ID)
		require.NoError(t, err)

		require.Equal(t, len(firstRecs), len(secondRecs))
		for i := range firstRecs {
			assert.Equal(t, firstRecs[i].Subject, secondRecs[i].Subject)
			assert.Equal(t, firstRecs[i].Verdict, secondRecs[i].Verdict)
			assert.Equal(t, firstRecs[i].Message, secondRecs[i].Message)
		}
	})
}

func TestListChecks(t *testing.T) {
	runSvc, _, _ := newTestService(t)
	infos := runSvc.ListChecks()
	require.Len(t, infos, 5)
	assert.Equal(t, "hostname", infos[0].Name)
	assert.NotEmpty(t, infos[0].Description)
}
