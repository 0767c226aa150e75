package domain

// Ref is a reference to a named inventory object (location, role, device
// type, platform, rack). The ID is the host system's identifier; Name is
// what gets rendered in log output.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsZero returns true if the reference is unset
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// String returns the display form of the reference, preferring the name
func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// VirtualChassis describes a device's membership in a stacked chassis.
// Exactly one member of the chassis is designated master and is the only
// member expected to carry a primary IP.
type VirtualChassis struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MasterID string `json:"master_id"`
}

// Device is a single inventory device as recorded by the source of truth.
// netaudit never mutates devices; they are loaded as a read-only snapshot.
type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location Ref    `json:"location"`
	Role     Ref    `json:"role"`
	Type     Ref    `json:"device_type"`

	// Optional attributes. A zero Ref / empty string means the source of
	// truth has no value recorded, which is exactly what the data-quality
	// checks look for.
	Platform  Ref    `json:"platform,omitempty"`
	Rack      Ref    `json:"rack,omitempty"`
	PrimaryIP string `json:"primary_ip,omitempty"`

	Chassis *VirtualChassis `json:"virtual_chassis,omitempty"`
}

// IsChassisMember returns true if the device belongs to a virtual chassis
func (d *Device) IsChassisMember() bool {
	return d.Chassis != nil
}

// IsChassisMaster returns true if the device is the designated master of
// its virtual chassis. Standalone devices are not masters.
func (d *Device) IsChassisMaster() bool {
	return d.Chassis != nil && d.Chassis.MasterID == d.ID
}

// Subject returns the device as a verdict subject reference
func (d *Device) Subject() Subject {
	return Subject{Kind: SubjectDevice, ID: d.ID, Name: d.Name}
}
