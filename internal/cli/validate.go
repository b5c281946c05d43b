package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/simchain/internal/validator"
	"github.com/aretw0/simchain/pkg/chain"
	"github.com/aretw0/simchain/pkg/domain"
)

// ValidateDefinition checks traj and writes one warning line per unreachable step,
// followed by a summary line when no error was found.
func ValidateDefinition(w io.Writer, traj *chain.Trajectory) error {
	if err := validator.ValidateTrajectory(traj); err != nil {
		return err
	}
	index := make(map[domain.Activity]int)
	for i, n := range traj.Nodes() {
		index[n] = i
	}
	for _, n := range validator.Unreachable(traj) {
		fmt.Fprintf(w, "warning: step %d (%s) is unreachable\n", index[n], n.Node().Name())
	}
	fmt.Fprintf(w, "%s: %d steps, ok\n", traj.Name(), traj.Len())
	return nil
}
