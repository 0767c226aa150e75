package check

import (
	"strings"

	"go.uber.org/zap"

	"netaudit/internal/domain"
)

// Selector narrows the device collection by location, role, and device
// type. Each set is either empty (no constraint) or a set of identifiers;
// an identifier matches a device when it equals the corresponding
// reference's ID or name.
type Selector struct {
	Locations   []string
	Roles       []string
	DeviceTypes []string
}

// IsZero returns true if no dimension is constrained
func (s Selector) IsZero() bool {
	return len(s.Locations) == 0 && len(s.Roles) == 0 && len(s.DeviceTypes) == 0
}

// FilterDevices successively intersects the device collection with each
// non-empty selector set. One debug line is logged per applied set,
// naming its members. An empty result is valid and produces no error;
// order of application never changes the result.
func FilterDevices(log *zap.Logger, devices []domain.Device, sel Selector) []domain.Device {
	matched := devices

	if len(sel.Locations) > 0 {
		log.Debug("filter locations: " + strings.Join(sel.Locations, ", "))
		matched = keepMatching(matched, sel.Locations, func(d *domain.Device) domain.Ref { return d.Location })
	}

	if len(sel.Roles) > 0 {
		log.Debug("filter device roles: " + strings.Join(sel.Roles, ", "))
		matched = keepMatching(matched, sel.Roles, func(d *domain.Device) domain.Ref { return d.Role })
	}

	if len(sel.DeviceTypes) > 0 {
		log.Debug("filter device types: " + strings.Join(sel.DeviceTypes, ", "))
		matched = keepMatching(matched, sel.DeviceTypes, func(d *domain.Device) domain.Ref { return d.Type })
	}

	return matched
}

// keepMatching keeps devices whose referenced attribute is in the set
func keepMatching(devices []domain.Device, set []string, ref func(*domain.Device) domain.Ref) []domain.Device {
	members := make(map[string]struct{}, len(set))
	for _, id := range set {
		members[id] = struct{}{}
	}

	kept := make([]domain.Device, 0, len(devices))
	for i := range devices {
		r := ref(&devices[i])
		if _, ok := members[r.ID]; ok {
			kept = append(kept, devices[i])
			continue
		}
		if _, ok := members[r.Name]; ok {
			kept = append(kept, devices[i])
		}
	}
	return kept
}
