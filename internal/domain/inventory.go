package domain

// Inventory is a read-only snapshot of the source of truth: every device
// and circuit the checks can inspect. Checks never create, mutate, or
// delete inventory objects; verdicts are recorded elsewhere.
type Inventory struct {
	Devices  []Device  `json:"devices"`
	Circuits []Circuit `json:"circuits"`
}

// NewInventory creates an empty inventory snapshot
func NewInventory() *Inventory {
	return &Inventory{
		Devices:  make([]Device, 0),
		Circuits: make([]Circuit, 0),
	}
}

// DeviceByID returns the device with the given ID, or nil
func (inv *Inventory) DeviceByID(id string) *Device {
	for i := range inv.Devices {
		if inv.Devices[i].ID == id {
			return &inv.Devices[i]
		}
	}
	return nil
}

// Summary holds inventory counts for the API and CLI
type Summary struct {
	Devices  int `json:"devices"`
	Circuits int `json:"circuits"`
}

// Summarize returns counts for the snapshot
func (inv *Inventory) Summarize() Summary {
	return Summary{
		Devices:  len(inv.Devices),
		Circuits: len(inv.Circuits),
	}
}
