package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate presets whenever slider, category or preset files change",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := validateOptions(cmd, nil)
		if err != nil {
			return err
		}
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunWatch(sigCtx, app, opts)
		})
	},
}

func init() {
	addFilterFlags(watchCmd)
	watchCmd.Flags().Bool("json", false, "Print results as JSON")
	rootCmd.AddCommand(watchCmd)
}
