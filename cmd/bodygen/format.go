package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var formatCmd = &cobra.Command{
	Use:   "format [templates.ini|-]",
	Short: "Render templates.ini and morphs.ini from a templates file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		check, _ := cmd.Flags().GetBool("check")
		asJSON, _ := cmd.Flags().GetBool("json")
		return withApp(cmd, func(_ *cli.SignalContext, app *cli.App) error {
			return cli.RunFormat(app, path, check, asJSON)
		})
	},
}

func init() {
	formatCmd.Flags().Bool("check", false, "Only check for a usable #morphs= directive")
	formatCmd.Flags().Bool("json", false, "Print both files as JSON")
	rootCmd.AddCommand(formatCmd)
}
