package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve bodygen tools over the Model Context Protocol",
	Long:  `Exposes validate_preset, format_templates, list_sliders and preview tools on stdio, or over SSE with --sse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sse, _ := cmd.Flags().GetBool("sse")
		port, _ := cmd.Flags().GetInt("port")
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunMCP(sigCtx, app, cli.MCPOptions{SSE: sse, Port: port})
		})
	},
}

func init() {
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().Int("port", 8081, "Port for SSE mode")
	rootCmd.AddCommand(mcpCmd)
}
