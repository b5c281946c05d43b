package main

import (
	"github.com/aretw0/simchain/internal/cli"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "Print the steps of a trajectory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		brief, _ := cmd.Flags().GetBool("brief")

		engine, closer, err := cli.CreateEngine(cfg, cli.RunOptions{Path: args[0]}, logger)
		if err != nil {
			return err
		}
		defer closer()

		cli.PrintTrajectory(cmd.OutOrStdout(), engine.Definition(), verbose, brief)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().BoolP("verbose", "v", false, "Show the links of every step")
	printCmd.Flags().Bool("brief", false, "Show parameter values only")
}
