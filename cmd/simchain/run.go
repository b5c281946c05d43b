package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/simchain/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Simulate arrivals through a trajectory",
	Long:  `Loads the trajectory definition and runs the requested number of arrivals through it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arrivals, _ := cmd.Flags().GetInt("arrivals")
		interarrival, _ := cmd.Flags().GetString("interarrival")
		jsonMode, _ := cmd.Flags().GetBool("json")
		records, _ := cmd.Flags().GetString("records")
		debug, _ := cmd.Flags().GetBool("debug")
		reps, _ := cmd.Flags().GetInt("replications")
		if cmd.Flags().Changed("until") {
			cfg.Until, _ = cmd.Flags().GetFloat64("until")
		}

		opts := cli.RunOptions{
			Path:        args[0],
			RecordsPath: records,
			Debug:       debug,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		if reps > 1 {
			return cli.RunReplications(ctx, cmd.OutOrStdout(), cfg, opts, logger, reps, arrivals, interarrival, jsonMode)
		}

		engine, closer, err := cli.CreateEngine(cfg, opts, logger)
		if err != nil {
			return err
		}
		defer closer()

		return cli.RunSimulation(ctx, cmd.OutOrStdout(), engine, arrivals, interarrival, jsonMode)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("arrivals", "n", 10, "Number of arrivals to generate")
	runCmd.Flags().String("interarrival", "1", "Time between arrivals (number or expression)")
	runCmd.Flags().Float64("until", 0, "Stop at this simulated time (0 runs to completion)")
	runCmd.Flags().Bool("json", false, "Print the summary as JSON")
	runCmd.Flags().String("records", "", "Append arrival records to this JSON file")
	runCmd.Flags().Bool("debug", false, "Log every activity event")
	runCmd.Flags().IntP("replications", "r", 1, "Independent runs with consecutive seeds")
}
