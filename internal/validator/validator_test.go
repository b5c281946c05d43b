package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/dsl"
	"github.com/aretw0/simchain/pkg/param"
)

func TestValidateTrajectory(t *testing.T) {
	// 1. Scenario A: Valid Trajectory
	valid := dsl.New("valid").
		SetAttribute([]string{"n"}, []float64{1}, '+').Tag("again").
		Timeout(param.Const(1.0)).
		RollbackTo("again", 2).
		RollbackIf(1, param.Const(false)).
		Build()

	if err := ValidateTrajectory(valid); err != nil {
		t.Errorf("Scenario A (Valid) failed: %v", err)
	}

	// 2. Scenario B: Broken Target
	broken := dsl.New("broken").
		Timeout(param.Const(1.0)).
		RollbackTo("ghost", 1).
		Build()

	err := ValidateTrajectory(broken)
	if err == nil {
		t.Fatal("Scenario B (Broken Target) expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no previous step tagged 'ghost'") {
		t.Errorf("Scenario B error mismatch: %v", err)
	}

	// 3. Scenario C: Several Problems At Once
	bad := dsl.New("bad").
		Timeout(param.Const(1.0)).Count(0).
		Rollback(0, 1).
		Rollback(1, -1).
		Build()

	err = ValidateTrajectory(bad)
	if err == nil {
		t.Fatal("Scenario C expected error, got nil")
	}
	msg := err.Error()
	for _, want := range []string{"found 3 errors", "count 0 is below 1", "loops on the rollback itself", "rolls back forever"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Scenario C missing %q in: %v", want, msg)
		}
	}

	// 4. Scenario D: Empty
	if err := ValidateTrajectory(chain.New("empty")); err == nil {
		t.Error("Scenario D (Empty) expected error, got nil")
	}
}

func TestUnreachable(t *testing.T) {
	traj := dsl.New("cut").
		Timeout(param.Const(1.0)).
		Timeout(param.Const(2.0)).
		Timeout(param.Const(3.0)).
		Build()

	if got := Unreachable(traj); len(got) != 0 {
		t.Errorf("expected every step reachable, got %d unreachable", len(got))
	}

	traj.Head().SetNext(nil)
	if got := Unreachable(traj); len(got) != 2 {
		t.Errorf("expected 2 unreachable steps, got %d", len(got))
	}
}
