// Package check implements the data-quality checks netaudit runs against
// an inventory snapshot.
//
// Every check has the same shape: narrow the device collection with the
// caller's selector sets (the circuit check skips this and inspects every
// circuit), apply a predicate per item, and emit exactly one verdict
// record per item per predicate stage through a report.Reporter. Checks
// hold no cross-item state and never mutate the inventory.
package check

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// Params carries the caller-supplied parameters for one check run.
// Each check validates the params it consumes before dispatch.
type Params struct {
	// Selector sets. Empty means no constraint on that dimension.
	Locations   []string `json:"locations,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	DeviceTypes []string `json:"device_types,omitempty"`

	// HostnameRegex is only consulted by the hostname check. Empty
	// defaults to a match-any pattern.
	HostnameRegex string `json:"hostname_regex,omitempty"`
}

// Selector returns the device filter selector from the params
func (p Params) Selector() Selector {
	return Selector{
		Locations:   p.Locations,
		Roles:       p.Roles,
		DeviceTypes: p.DeviceTypes,
	}
}

// Check is a single data-quality check. Validate is called with the run's
// params before Run; a validation error rejects the run without touching
// the inventory.
type Check interface {
	Name() string
	Description() string
	Validate(params Params) error
	Run(ctx context.Context, inv *domain.Inventory, params Params, rep report.Reporter) error
}

// All returns every available check, in stable order
func All(log *zap.Logger) []Check {
	return []Check{
		NewHostname(log),
		NewPlatform(log),
		NewPrimaryIP(log),
		NewRack(log),
		NewCircuitTermination(log),
	}
}

// Names returns the names of every available check, in stable order
func Names() []string {
	names := make([]string, 0, 5)
	for _, c := range All(zap.NewNop()) {
		names = append(names, c.Name())
	}
	return names
}

// ByName returns the named check, or an error listing the valid names
func ByName(log *zap.Logger, name string) (Check, error) {
	for _, c := range All(log) {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown check %q (valid: %v)", name, Names())
}

// emit sends one verdict record through the reporter. The severity is
// derived from the verdict; the reporter fills in run ID and sequence.
func emit(ctx context.Context, rep report.Reporter, check string, subject domain.Subject, verdict domain.Verdict, msg string) error {
	return rep.Report(ctx, domain.Record{
		Check:     check,
		Subject:   subject,
		Verdict:   verdict,
		Severity:  domain.SeverityFor(verdict),
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	})
}
