package main

import (
	"github.com/aretw0/simchain/internal/cli"
	mcpAdapter "github.com/aretw0/simchain/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <file>",
	Short: "Serve the trajectory as an MCP server on stdio",
	Long:  `Exposes simulate, get_trajectory and list_records tools plus trajectory resources to MCP clients. Logs go to stderr.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, _ := cmd.Flags().GetString("records")

		engine, closer, err := cli.CreateEngine(cfg, cli.RunOptions{
			Path:        args[0],
			RecordsPath: records,
		}, logger)
		if err != nil {
			return err
		}
		defer closer()

		logger.Info("serving MCP on stdio", "trajectory", engine.Definition().Name())
		return mcpAdapter.NewServer(engine, version, logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("records", "", "Append arrival records to this JSON file")
}
