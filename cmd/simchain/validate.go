package main

import (
	"github.com/aretw0/simchain/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a trajectory definition",
	Long:  `Loads the definition and reports rollbacks with missing targets or no way out, and invalid counts, and warns about unreachable steps.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, closer, err := cli.CreateEngine(cfg, cli.RunOptions{Path: args[0], SkipValidation: true}, logger)
		if err != nil {
			return err
		}
		defer closer()

		return cli.ValidateDefinition(cmd.OutOrStdout(), engine.Definition())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
