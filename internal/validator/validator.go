package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/simchain/pkg/activities"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
	"github.com/aretw0/simchain/pkg/param"
)

// ValidateTrajectory checks a trajectory for steps that can never behave as written:
// broken rollback targets, rollbacks that never let an entity through, and counts below one.
// Every problem found is reported in a single error.
func ValidateTrajectory(traj *chain.Trajectory) error {
	var errors []string

	if traj.Len() == 0 {
		errors = append(errors, fmt.Sprintf("trajectory '%s' has no steps", traj.Name()))
	}

	for i, n := range traj.Nodes() {
		base := n.Node()
		where := fmt.Sprintf("step %d (%s)", i, base.Name())

		if base.Count < 1 {
			errors = append(errors, fmt.Sprintf("%s: count %d is below 1", where, base.Count))
		}

		rb, ok := n.(*activities.Rollback)
		if !ok {
			continue
		}
		if rb.Target != "" && rb.Destination() == nil {
			errors = append(errors, fmt.Sprintf("%s: no previous step tagged '%s'", where, rb.Target))
		}
		if rb.Times < 0 && rb.Check.Kind() == param.KindUnbound {
			errors = append(errors, fmt.Sprintf("%s: rolls back forever without a check", where))
		}
		if rb.Target == "" && rb.Amount == 0 {
			errors = append(errors, fmt.Sprintf("%s: amount 0 loops on the rollback itself", where))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Unreachable returns the steps that no entity entering at the head can reach.
// Rollbacks only move backwards, so this is empty unless links were edited by hand.
func Unreachable(traj *chain.Trajectory) []domain.Activity {
	reached := make(map[domain.Activity]bool)
	for _, n := range chain.Collect(traj.Head()) {
		reached[n] = true
	}
	var out []domain.Activity
	for _, n := range traj.Nodes() {
		if !reached[n] {
			out = append(out, n)
		}
	}
	return out
}
