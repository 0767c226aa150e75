package domain

import "sort"

// Interface is the destination interface a circuit termination path lands
// on. It belongs to a device and may carry zero or more IP addresses.
type Interface struct {
	Name       string   `json:"name"`
	DeviceID   string   `json:"device_id"`
	DeviceName string   `json:"device_name"`
	Addresses  []string `json:"addresses,omitempty"`
}

// FirstIP returns a single deterministic address from the interface.
//
// The host system does not define an ordering for interface addresses, so
// netaudit picks the lexicographically smallest one. The choice is
// arbitrary but stable: two runs over the same snapshot always report the
// same address.
func (i *Interface) FirstIP() (string, bool) {
	if len(i.Addresses) == 0 {
		return "", false
	}
	addrs := make([]string, len(i.Addresses))
	copy(addrs, i.Addresses)
	sort.Strings(addrs)
	return addrs[0], true
}

// Path is the resolved connection from a circuit termination to its
// destination interface. An absent path means the circuit is unterminated.
type Path struct {
	Destination Interface `json:"destination"`
}

// Termination is a circuit's primary termination point
type Termination struct {
	Path *Path `json:"path,omitempty"`
}

// Circuit is a single circuit record from the source of truth
type Circuit struct {
	ID       string `json:"id"`
	CID      string `json:"cid"`
	Provider string `json:"provider,omitempty"`

	// Termination is the circuit's A-side termination. Circuits without a
	// termination at all are treated the same as circuits whose
	// termination has no path: unterminated.
	Termination *Termination `json:"termination,omitempty"`
}

// IsTerminated returns true if the circuit has a resolvable termination path
func (c *Circuit) IsTerminated() bool {
	return c.Termination != nil && c.Termination.Path != nil
}

// Subject returns the circuit as a verdict subject reference
func (c *Circuit) Subject() Subject {
	name := c.CID
	if name == "" {
		name = c.ID
	}
	return Subject{Kind: SubjectCircuit, ID: c.ID, Name: name}
}
