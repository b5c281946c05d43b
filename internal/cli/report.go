package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/simchain"
	"github.com/aretw0/simchain/pkg/chain"
)

// RunSimulation simulates arrivals entities and writes the summary to w, as JSON when
// jsonMode is set.
func RunSimulation(ctx context.Context, w io.Writer, engine *simchain.Engine, arrivals int, interarrival string, jsonMode bool) error {
	gap, err := engine.Interarrival(interarrival)
	if err != nil {
		return fmt.Errorf("invalid interarrival: %w", err)
	}
	sum, err := engine.Simulate(ctx, arrivals, gap)
	if err != nil {
		return err
	}

	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "trajectory\t%s\n", engine.Definition().Name())
	fmt.Fprintf(tw, "arrivals\t%d\n", sum.Arrivals)
	fmt.Fprintf(tw, "finished\t%d\n", sum.Finished)
	fmt.Fprintf(tw, "end time\t%g\n", sum.End)
	fmt.Fprintf(tw, "mean activity time\t%g\n", sum.MeanActivityTime)
	return tw.Flush()
}

// PrintTrajectory writes the textual form of traj. Brief output has one line of values
// per step.
func PrintTrajectory(w io.Writer, traj *chain.Trajectory, verbose, brief bool) {
	if !brief {
		traj.Print(w, 0, verbose)
		return
	}
	for _, n := range traj.Nodes() {
		n.Print(w, 0, verbose, true)
	}
}
