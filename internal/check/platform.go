package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// Platform verifies that a platform is defined for each device
type Platform struct {
	log *zap.Logger
}

// NewPlatform creates the platform presence check
func NewPlatform(log *zap.Logger) *Platform {
	return &Platform{log: log}
}

// Name implements Check
func (c *Platform) Name() string { return "platform" }

// Description implements Check
func (c *Platform) Description() string {
	return "Verify a device has a platform defined"
}

// Validate implements Check
func (c *Platform) Validate(Params) error { return nil }

// Run implements Check
func (c *Platform) Run(ctx context.Context, inv *domain.Inventory, params Params, rep report.Reporter) error {
	for _, device := range FilterDevices(c.log, inv.Devices, params.Selector()) {
		if device.Name == "" {
			return fmt.Errorf("device %s has no name", device.ID)
		}

		verdict := domain.VerdictFail
		msg := "Platform is not defined."
		if !device.Platform.IsZero() {
			verdict = domain.VerdictPass
			msg = "Platform is defined."
		}
		if err := emit(ctx, rep, c.Name(), device.Subject(), verdict, msg); err != nil {
			return err
		}
	}
	return nil
}
