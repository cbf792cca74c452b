package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves validation, template formatting and morph preview as a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		watch, _ := cmd.Flags().GetBool("watch")
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunServe(sigCtx, app, cli.ServeOptions{Port: port, Watch: watch})
		})
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from settings)")
	serveCmd.Flags().Bool("watch", false, "Reload the slider catalog when its files change")
	rootCmd.AddCommand(serveCmd)
}
