package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/simchain/internal/config"
	"github.com/aretw0/simchain/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "simchain",
	Short: "simchain runs entities through chains of activities in simulated time",
	Long: `simchain loads trajectory definitions written in YAML and simulates arrivals
walking them. Settings come from SIMCHAIN_* environment variables and can be
overridden with flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("seed") {
			seed, _ := flags.GetInt64("seed")
			cfg.Seed = &seed
		}

		level, err := cfg.Level()
		if err != nil {
			return err
		}
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed, overriding the one declared in the definition")
}
