package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// PrimaryIP verifies that a primary IP is defined for each device.
//
// Virtual-chassis members that are not the chassis master are skipped
// silently: only the master publishes a primary IP, so a non-master
// produces neither a pass nor a fail record.
type PrimaryIP struct {
	log *zap.Logger
}

// NewPrimaryIP creates the primary IP presence check
func NewPrimaryIP(log *zap.Logger) *PrimaryIP {
	return &PrimaryIP{log: log}
}

// Name implements Check
func (c *PrimaryIP) Name() string { return "primary-ip" }

// Description implements Check
func (c *PrimaryIP) Description() string {
	return "Verify a device has a primary IP defined"
}

// Validate implements Check
func (c *PrimaryIP) Validate(Params) error { return nil }

// Run implements Check
func (c *PrimaryIP) Run(ctx context.Context, inv *domain.Inventory, params Params, rep report.Reporter) error {
	for _, device := range FilterDevices(c.log, inv.Devices, params.Selector()) {
		if device.Name == "" {
			return fmt.Errorf("device %s has no name", device.ID)
		}

		// Non-master chassis members never carry the primary IP
		if device.IsChassisMember() && !device.IsChassisMaster() {
			continue
		}

		if device.PrimaryIP == "" {
			if err := emit(ctx, rep, c.Name(), device.Subject(), domain.VerdictFail, "No primary IP is defined"); err != nil {
				return err
			}
			continue
		}

		msg := fmt.Sprintf("Primary IP is defined (%s)", device.PrimaryIP)
		if err := emit(ctx, rep, c.Name(), device.Subject(), domain.VerdictPass, msg); err != nil {
			return err
		}
	}
	return nil
}
