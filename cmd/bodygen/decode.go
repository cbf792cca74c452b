package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <file.tri>...",
	Short: "Decode TRI morph files and summarise them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunDecode(sigCtx, app, args, asJSON)
		})
	},
}

func init() {
	decodeCmd.Flags().Bool("json", false, "Print decoded files as JSON")
	rootCmd.AddCommand(decodeCmd)
}
