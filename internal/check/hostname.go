package check

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// matchAny is the default hostname pattern when none is supplied
const matchAny = ".*"

// Hostname verifies device hostnames match a naming standard expressed as
// a regular expression. The match is a partial (unanchored) search, the
// same semantics the host system applies: a pattern like "^sw-" anchors
// itself, a pattern like "core" matches anywhere in the name.
type Hostname struct {
	log *zap.Logger
}

// NewHostname creates the hostname compliance check
func NewHostname(log *zap.Logger) *Hostname {
	return &Hostname{log: log}
}

// Name implements Check
func (c *Hostname) Name() string { return "hostname" }

// Description implements Check
func (c *Hostname) Description() string {
	return "Verify device hostnames match corporate standards"
}

// Validate implements Check
func (c *Hostname) Validate(params Params) error {
	pattern := params.HostnameRegex
	if pattern == "" {
		pattern = matchAny
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("invalid hostname regex %q: %w", pattern, err)
	}
	return nil
}

// Run implements Check
func (c *Hostname) Run(ctx context.Context, inv *domain.Inventory, params Params, rep report.Reporter) error {
	pattern := params.HostnameRegex
	if pattern == "" {
		pattern = matchAny
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid hostname regex %q: %w", pattern, err)
	}

	c.log.Info("using the regular expression: " + pattern)

	for _, device := range FilterDevices(c.log, inv.Devices, params.Selector()) {
		if device.Name == "" {
			return fmt.Errorf("device %s has no name", device.ID)
		}

		verdict := domain.VerdictFail
		msg := "Hostname is not compliant."
		if re.MatchString(device.Name) {
			verdict = domain.VerdictPass
			msg = "Hostname is compliant."
		}
		if err := emit(ctx, rep, c.Name(), device.Subject(), verdict, msg); err != nil {
			return err
		}
	}
	return nil
}
