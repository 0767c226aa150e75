// Package loader imports inventory snapshots from YAML files.
//
// The file format mirrors what an operator would export from the source
// of truth: devices keyed by hostname with their location/role/type and
// optional attributes, circuits keyed by CID with their termination.
package loader

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"netaudit/internal/domain"
)

// InventoryYAML represents the YAML file structure
type InventoryYAML struct {
	Version  string                  `yaml:"version"`
	Devices  map[string]*DeviceYAML  `yaml:"devices"`
	Circuits map[string]*CircuitYAML `yaml:"circuits,omitempty"`
}

// DeviceYAML represents a device in YAML format. Location, role, type,
// platform, and rack are plain names; the loader turns them into refs.
type DeviceYAML struct {
	ID       string `yaml:"id,omitempty"`
	Location string `yaml:"location,omitempty"`
	// Site is accepted as an alias for location; older exports use it
	Site       string       `yaml:"site,omitempty"`
	Role       string       `yaml:"role,omitempty"`
	DeviceType string       `yaml:"device_type,omitempty"`
	Platform   string       `yaml:"platform,omitempty"`
	Rack       string       `yaml:"rack,omitempty"`
	PrimaryIP  string       `yaml:"primary_ip,omitempty"`
	Chassis    *ChassisYAML `yaml:"chassis,omitempty"`
}

// ChassisYAML represents virtual-chassis membership. Master names the
// member device, by hostname or by its explicit id, that holds
// chassis-wide properties.
type ChassisYAML struct {
	Name   string `yaml:"name"`
	Master string `yaml:"master"`
}

// CircuitYAML represents a circuit in YAML format. A circuit without a
// termination block is unterminated.
type CircuitYAML struct {
	ID          string           `yaml:"id,omitempty"`
	Provider    string           `yaml:"provider,omitempty"`
	Termination *TerminationYAML `yaml:"termination,omitempty"`
}

// TerminationYAML represents a resolved termination path
type TerminationYAML struct {
	Device    string   `yaml:"device"`
	Interface string   `yaml:"interface"`
	Addresses []string `yaml:"addresses,omitempty"`
}

// LoadFile loads an inventory snapshot from a YAML file
func LoadFile(path string) (*domain.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an inventory snapshot from YAML bytes
func Parse(data []byte) (*domain.Inventory, error) {
	var y InventoryYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return convert(&y)
}

func convert(y *InventoryYAML) (*domain.Inventory, error) {
	inv := domain.NewInventory()

	// Map iteration order is random; emit devices sorted by hostname so
	// imports are deterministic.
	names := make([]string, 0, len(y.Devices))
	for name := range y.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	// Device IDs by hostname, for resolving chassis masters and circuit
	// terminations. Filled up front so a reference can point at a device
	// defined later in the file.
	deviceIDs := make(map[string]string, len(y.Devices))
	for _, name := range names {
		id := y.Devices[name].ID
		if id == "" {
			id = name
		}
		deviceIDs[name] = id
	}

	for _, name := range names {
		d := y.Devices[name]

		location := d.Location
		if location == "" {
			location = d.Site
		}

		device := domain.Device{
			ID:        d.ID,
			Name:      name,
			Location:  nameRef(location),
			Role:      nameRef(d.Role),
			Type:      nameRef(d.DeviceType),
			Platform:  nameRef(d.Platform),
			Rack:      nameRef(d.Rack),
			PrimaryIP: d.PrimaryIP,
		}
		if device.ID == "" {
			device.ID = name
		}

		if d.Chassis != nil {
			if d.Chassis.Master == "" {
				return nil, fmt.Errorf("device %s: chassis %q has no master", name, d.Chassis.Name)
			}
			// The master may be named by hostname; map it to the device
			// ID so master detection compares like with like.
			masterID := d.Chassis.Master
			if id, ok := deviceIDs[masterID]; ok {
				masterID = id
			}
			device.Chassis = &domain.VirtualChassis{
				ID:       d.Chassis.Name,
				Name:     d.Chassis.Name,
				MasterID: masterID,
			}
		}

		inv.Devices = append(inv.Devices, device)
	}

	cids := make([]string, 0, len(y.Circuits))
	for cid := range y.Circuits {
		cids = append(cids, cid)
	}
	sort.Strings(cids)

	for _, cid := range cids {
		c := y.Circuits[cid]

		circuit := domain.Circuit{
			ID:       c.ID,
			CID:      cid,
			Provider: c.Provider,
		}
		if circuit.ID == "" {
			circuit.ID = cid
		}

		if c.Termination != nil {
			if c.Termination.Device == "" || c.Termination.Interface == "" {
				return nil, fmt.Errorf("circuit %s: termination needs both device and interface", cid)
			}
			circuit.Termination = &domain.Termination{
				Path: &domain.Path{
					Destination: domain.Interface{
						Name:       c.Termination.Interface,
						DeviceID:   deviceIDs[c.Termination.Device],
						DeviceName: c.Termination.Device,
						Addresses:  c.Termination.Addresses,
					},
				},
			}
		}

		inv.Circuits = append(inv.Circuits, circuit)
	}

	return inv, nil
}

// nameRef builds a reference from a bare name
func nameRef(name string) domain.Ref {
	if name == "" {
		return domain.Ref{}
	}
	return domain.Ref{Name: name}
}
