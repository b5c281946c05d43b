package main

import (
	"fmt"

	"github.com/aretw0/simchain/internal/cli"
	"github.com/aretw0/simchain/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Show the steps of a trajectory as a table",
	Long:  `Renders the trajectory as markdown. The output is styled when writing to a terminal, or left as plain markdown otherwise.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, _ := cmd.Flags().GetString("style")

		engine, closer, err := cli.CreateEngine(cfg, cli.RunOptions{Path: args[0]}, logger)
		if err != nil {
			return err
		}
		defer closer()

		out := cmd.OutOrStdout()
		md := tui.Describe(engine.Definition())
		if !tui.IsTerminal(out) && style == "" {
			_, err := fmt.Fprint(out, md)
			return err
		}

		render, err := tui.NewRenderer(style, tui.Width(out, 100))
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		styled, err := render(md)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, styled)
		return err
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("style", "", "Glamour style (dark, light, notty); detected when empty")
}
