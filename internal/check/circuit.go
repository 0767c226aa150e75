package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"netaudit/internal/domain"
	"netaudit/internal/report"
)

// CircuitTermination verifies that each circuit is terminated and that
// the destination interface has an IP address assigned.
//
// This check ignores the device selector entirely and inspects every
// circuit in the snapshot. Each circuit goes through two independent
// stages with early exit: a circuit that is not terminated never reaches
// the IP-assignment stage.
type CircuitTermination struct {
	log *zap.Logger
}

// NewCircuitTermination creates the circuit termination check
func NewCircuitTermination(log *zap.Logger) *CircuitTermination {
	return &CircuitTermination{log: log}
}

// Name implements Check
func (c *CircuitTermination) Name() string { return "circuit-termination" }

// Description implements Check
func (c *CircuitTermination) Description() string {
	return "Verify a circuit has termination and an IP address"
}

// Validate implements Check
func (c *CircuitTermination) Validate(Params) error { return nil }

// Run implements Check
func (c *CircuitTermination) Run(ctx context.Context, inv *domain.Inventory, _ Params, rep report.Reporter) error {
	for i := range inv.Circuits {
		circuit := &inv.Circuits[i]
		subject := circuit.Subject()

		if !circuit.IsTerminated() {
			if err := emit(ctx, rep, c.Name(), subject, domain.VerdictFail, "Circuit is not terminated"); err != nil {
				return err
			}
			continue
		}

		dest := circuit.Termination.Path.Destination
		if dest.DeviceName == "" {
			// A resolved path must land on a device; anything else is a
			// structural inconsistency, not a data-quality finding.
			return fmt.Errorf("circuit %s: termination path destination has no device", subject.Name)
		}

		msg := fmt.Sprintf("Circuit terminated on %s:%s", dest.DeviceName, dest.Name)
		if err := emit(ctx, rep, c.Name(), subject, domain.VerdictPass, msg); err != nil {
			return err
		}

		ip, ok := dest.FirstIP()
		if !ok {
			if err := emit(ctx, rep, c.Name(), subject, domain.VerdictFail, "IP address is not assigned"); err != nil {
				return err
			}
			continue
		}

		msg = fmt.Sprintf("IP address is assigned (%s)", ip)
		if err := emit(ctx, rep, c.Name(), subject, domain.VerdictPass, msg); err != nil {
			return err
		}
	}
	return nil
}
