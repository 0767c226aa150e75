package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// Rack verifies that a device is assigned to a rack
type Rack struct {
	log *zap.Logger
}

// NewRack creates the rack assignment check
func NewRack(log *zap.Logger) *Rack {
	return &Rack{log: log}
}

// Name implements Check
func (c *Rack) Name() string { return "rack" }

// Description implements Check
func (c *Rack) Description() string {
	return "Verify a device is inside a rack"
}

// Validate implements Check
func (c *Rack) Validate(Params) error { return nil }

// Run implements Check
func (c *Rack) Run(ctx context.Context, inv *domain.Inventory, params Params, rep report.Reporter) error {
	for _, device := range FilterDevices(c.log, inv.Devices, params.Selector()) {
		if device.Name == "" {
			return fmt.Errorf("device %s has no name", device.ID)
		}

		if device.Rack.IsZero() {
			if err := emit(ctx, rep, c.Name(), device.Subject(), domain.VerdictFail, "Device is not inside a rack"); err != nil {
				return err
			}
			continue
		}

		msg := fmt.Sprintf("Device is in rack (%s)", device.Rack)
		if err := emit(ctx, rep, c.Name(), device.Subject(), domain.VerdictPass, msg); err != nil {
			return err
		}
	}
	return nil
}
