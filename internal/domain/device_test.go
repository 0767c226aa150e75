package domain

import "testing"

func TestIsChassisMaster(t *testing.T) {
	t.Run("standalone device is not a master", func(t *testing.T) {
		d := Device{ID: "dev-1", Name: "sw-01"}
		if d.IsChassisMember() {
			t.Error("expected standalone device not to be a chassis member")
		}
		if d.IsChassisMaster() {
			t.Error("expected standalone device not to be a chassis master")
		}
	})

	t.Run("designated member is the master", func(t *testing.T) {
		d := Device{
			ID:      "dev-1",
			Name:    "sw-01",
			Chassis: &VirtualChassis{ID: "vc-1", Name: "stack1", MasterID: "dev-1"},
		}
		if !d.IsChassisMaster() {
			t.Error("expected device matching MasterID to be the master")
		}
	})

	t.Run("other members are not masters", func(t *testing.T) {
		d := Device{
			ID:      "dev-2",
			Name:    "sw-02",
			Chassis: &VirtualChassis{ID: "vc-1", Name: "stack1", MasterID: "dev-1"},
		}
		if !d.IsChassisMember() {
			t.Error("expected device to be a chassis member")
		}
		if d.IsChassisMaster() {
			t.Error("expected non-designated member not to be the master")
		}
	})
}

func TestRefString(t *testing.T) {
	tests := []struct {
		name string
		ref  Ref
		want string
	}{
		{"name preferred", Ref{ID: "r1", Name: "access-switch"}, "access-switch"},
		{"falls back to id", Ref{ID: "r1"}, "r1"},
		{"zero ref", Ref{}, ""},
	}

	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("%s: Ref.String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDeviceSubject(t *testing.T) {
	d := Device{ID: "dev-1", Name: "sw-01"}
	s := d.Subject()
	if s.Kind != SubjectDevice {
		t.Errorf("expected kind %s, got %s", SubjectDevice, s.Kind)
	}
	if s.ID != "dev-1" || s.Name != "sw-01" {
		t.Errorf("unexpected subject %+v", s)
	}
}
