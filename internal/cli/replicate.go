package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/simchain"
	"github.com/aretw0/simchain/internal/config"
	"github.com/aretw0/simchain/pkg/adapters/file"
	"github.com/aretw0/simchain/pkg/domain"
)

// RunReplications runs reps independent simulations of the definition at opts.Path,
// at most cfg.Workers at a time. Replication i is seeded with the base seed plus i, so a
// whole batch is reproducible. The base seed is the configured one, or else the seed
// declared in the file. Records are kept in memory per replication.
func RunReplications(ctx context.Context, w io.Writer, cfg *config.Config, opts RunOptions, logger *slog.Logger, reps, arrivals int, interarrival string, jsonMode bool) error {
	var base int64
	if cfg.Seed != nil {
		base = *cfg.Seed
	} else {
		seed, err := file.ReadSeed(opts.Path)
		if err != nil {
			return fmt.Errorf("error initializing engine: %w", err)
		}
		base = seed
	}

	sums := make([]domain.Summary, reps)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := 0; i < reps; i++ {
		g.Go(func() error {
			engine, err := simchain.Load(opts.Path,
				simchain.WithLogger(logger.With("replication", i)),
				simchain.WithUntil(cfg.Until),
				simchain.WithSeed(base+int64(i)),
			)
			if err == nil && !opts.SkipValidation {
				err = validateEngine(engine)
			}
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			gap, err := engine.Interarrival(interarrival)
			if err != nil {
				return fmt.Errorf("invalid interarrival: %w", err)
			}
			sum, err := engine.Simulate(ctx, arrivals, gap)
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			sums[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}

	var mean float64
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "replication\tfinished\tend time\tmean activity time")
	for i, s := range sums {
		fmt.Fprintf(tw, "%d\t%d\t%g\t%g\n", i, s.Finished, s.End, s.MeanActivityTime)
		mean += s.MeanActivityTime
	}
	if reps > 0 {
		fmt.Fprintf(tw, "mean\t\t\t%g\n", mean/float64(reps))
	}
	return tw.Flush()
}
