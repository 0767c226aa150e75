package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

func TestHostnameValidate(t *testing.T) {
	c := NewHostname(zap.NewNop())

	assert.NoError(t, c.Validate(Params{HostnameRegex: "^sw-"}))
	assert.NoError(t, c.Validate(Params{}), "empty regex defaults to match-any")
	assert.Error(t, c.Validate(Params{HostnameRegex: "("}))
}

func TestHostnameRun(t *testing.T) {
	c := NewHostname(zap.NewNop())
	ctx := context.Background()

	t.Run("splits pass and fail by pattern", func(t *testing.T) {
		inv := &domain.Inventory{Devices: []domain.Device{
			{ID: "dev-1", Name: "sw-01"},
			{ID: "dev-2", Name: "rtr-02"},
		}}
		buf := report.NewBuffer()

		require.NoError(t, c.Run(ctx, inv, Params{HostnameRegex: "^sw-"}, buf))

		recs := buf.Records()
		require.Len(t, recs, 2)
		assert.Equal(t, "sw-01", recs[0].Subject.Name)
		assert.Equal(t, domain.VerdictPass, recs[0].Verdict)
		assert.Equal(t, "Hostname is compliant.", recs[0].Message)
		assert.Equal(t, "rtr-02", recs[1].Subject.Name)
		assert.Equal(t, domain.VerdictFail, recs[1].Verdict)
		assert.Equal(t, "Hostname is not compliant.", recs[1].Message)
	})

	t.Run("match is a partial search, not anchored", func(t *testing.T) {
		inv := &domain.Inventory{Devices: []domain.Device{
			{ID: "dev-1", Name: "nyc-core-01"},
		}}
		buf := report.NewBuffer()

		require.NoError(t, c.Run(ctx, inv, Params{HostnameRegex: "core"}, buf))

		require.Equal(t, 1, buf.Len())
		assert.Equal(t, domain.VerdictPass, buf.Records()[0].Verdict)
	})

	t.Run("empty regex matches everything", func(t *testing.T) {
		inv := &domain.Inventory{Devices: []domain.Device{
			{ID: "dev-1", Name: "anything"},
		}}
		buf := report.NewBuffer()

		require.NoError(t, c.Run(ctx, inv, Params{}, buf))

		require.Equal(t, 1, buf.Len())
		assert.Equal(t, domain.VerdictPass, buf.Records()[0].Verdict)
	})

	t.Run("applies the device selector", func(t *testing.T) {
		inv := &domain.Inventory{Devices: testDevices()}
		buf := report.NewBuffer()

		require.NoError(t, c.Run(ctx, inv, Params{
			Locations:     []string{"nyc"},
			HostnameRegex: "^sw-",
		}, buf))

		require.Equal(t, 2, buf.Len())
	})

	t.Run("nameless device aborts the run", func(t *testing.T) {
		inv := &domain.Inventory{Devices: []domain.Device{
			{ID: "dev-1"},
		}}
		err := c.Run(ctx, inv, Params{}, report.Discard)
		assert.Error(t, err)
	})
}
