package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netaudit/internal/domain"
)

const sampleYAML = `
version: "1"
devices:
  sw-01:
    location: nyc
    role: access-switch
    device_type: ex4300
    platform: junos
    rack: nyc-r1
    primary_ip: 10.0.0.2/24
    chassis:
      name: stack1
      master: sw-01
  sw-02:
    location: nyc
    role: access-switch
    device_type: ex4300
    chassis:
      name: stack1
      master: sw-01
  rtr-01:
    site: sfo
    role: edge-router
    device_type: mx204
circuits:
  CID-1001:
    provider: zayo
  CID-1002:
    provider: lumen
    termination:
      device: sw-01
      interface: xe-0/0/0
      addresses:
        - 192.0.2.1/30
`

func TestParse(t *testing.T) {
	inv, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	require.Len(t, inv.Devices, 3)
	require.Len(t, inv.Circuits, 2)

	t.Run("devices sorted by hostname", func(t *testing.T) {
		assert.Equal(t, "rtr-01", inv.Devices[0].Name)
		assert.Equal(t, "sw-01", inv.Devices[1].Name)
		assert.Equal(t, "sw-02", inv.Devices[2].Name)
	})

	t.Run("device attributes become refs", func(t *testing.T) {
		sw := inv.DeviceByID("sw-01")
		require.NotNil(t, sw)
		assert.Equal(t, "nyc", sw.Location.Name)
		assert.Equal(t, "access-switch", sw.Role.Name)
		assert.Equal(t, "ex4300", sw.Type.Name)
		assert.Equal(t, "junos", sw.Platform.Name)
		assert.Equal(t, "nyc-r1", sw.Rack.Name)
		assert.Equal(t, "10.0.0.2/24", sw.PrimaryIP)
	})

	t.Run("site aliases location", func(t *testing.T) {
		rtr := inv.DeviceByID("rtr-01")
		require.NotNil(t, rtr)
		assert.Equal(t, "sfo", rtr.Location.Name)
	})

	t.Run("chassis membership resolves the master", func(t *testing.T) {
		sw1 := inv.DeviceByID("sw-01")
		sw2 := inv.DeviceByID("sw-02")
		require.NotNil(t, sw1.Chassis)
		require.NotNil(t, sw2.Chassis)
		assert.True(t, sw1.IsChassisMaster())
		assert.False(t, sw2.IsChassisMaster())
	})

	t.Run("circuits keep termination state", func(t *testing.T) {
		assert.Equal(t, "CID-1001", inv.Circuits[0].CID)
		assert.False(t, inv.Circuits[0].IsTerminated())

		require.True(t, inv.Circuits[1].IsTerminated())
		dest := inv.Circuits[1].Termination.Path.Destination
		assert.Equal(t, "sw-01", dest.DeviceName)
		assert.Equal(t, "sw-01", dest.DeviceID)
		assert.Equal(t, "xe-0/0/0", dest.Name)
		assert.Equal(t, []string{"192.0.2.1/30"}, dest.Addresses)
	})
}

func TestParseChassisMasterWithExplicitIDs(t *testing.T) {
	// Master names the hostname while devices carry their own ids; the
	// master must still resolve, including a member defined earlier in
	// sort order than the master it names.
	inv, err := Parse([]byte(`
devices:
  sw-01:
    id: dev-101
    chassis:
      name: stack1
      master: sw-02
  sw-02:
    id: dev-102
    chassis:
      name: stack1
      master: sw-02
`))
	require.NoError(t, err)
	require.Len(t, inv.Devices, 2)

	sw1, sw2 := inv.Devices[0], inv.Devices[1]
	require.NotNil(t, sw1.Chassis)
	require.NotNil(t, sw2.Chassis)
	assert.Equal(t, "dev-102", sw1.Chassis.MasterID)
	assert.False(t, sw1.IsChassisMaster())
	assert.True(t, sw2.IsChassisMaster())
}

func TestParseErrors(t *testing.T) {
	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Parse([]byte("devices: ["))
		assert.Error(t, err)
	})

	t.Run("chassis without master", func(t *testing.T) {
		_, err := Parse([]byte(`
devices:
  sw-01:
    chassis:
      name: stack1
`))
		assert.Error(t, err)
	})

	t.Run("termination without interface", func(t *testing.T) {
		_, err := Parse([]byte(`
circuits:
  CID-1001:
    termination:
      device: sw-01
`))
		assert.Error(t, err)
	})
}

func TestParseEmpty(t *testing.T) {
	inv, err := Parse([]byte("version: \"1\"\n"))
	require.NoError(t, err)
	assert.Empty(t, inv.Devices)
	assert.Empty(t, inv.Circuits)
	assert.Equal(t, domain.Summary{}, inv.Summarize())
}
