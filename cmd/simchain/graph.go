package main

import (
	"fmt"

	"github.com/aretw0/simchain/internal/cli"
	"github.com/aretw0/simchain/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the trajectory visualization",
	Long:  `Loads the trajectory and outputs a Mermaid diagram (graph TD) with its steps and rollback edges.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		engine, closer, err := cli.CreateEngine(cfg, cli.RunOptions{Path: args[0]}, logger)
		if err != nil {
			return err
		}
		defer closer()

		var overlay *graph.GraphOverlay
		if len(highlight) > 0 {
			overlay = &graph.GraphOverlay{Highlight: highlight}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(engine.Definition(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("highlight", nil, "Tags of the steps to highlight")
}
