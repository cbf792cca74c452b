package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "bodygen",
	Short: "BodySlide preset validation and BodyGen template tooling",
	Long: `bodygen validates BodySlide presets against the installed slider catalog,
formats BodyGen templates.ini / morphs.ini pairs, decodes TRI morph files and
previews morphs on a base mesh.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Game data folder (overrides data_folder)")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default <dir>/bodygen.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// newApp builds the shared App from the persistent flags.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.NewApp(cli.Options{
		ConfigPath: configPath,
		Dir:        dir,
		Debug:      debug,
	})
}

// withApp runs fn with a signal-aware context and a ready App.
func withApp(cmd *cobra.Command, fn func(sigCtx *cli.SignalContext, app *cli.App) error) error {
	app, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	sigCtx := cli.NewSignalContext(cmd.Context())
	defer sigCtx.Cancel()

	err = fn(sigCtx, app)
	cli.ReportSignal(app.Err, sigCtx.Signal())
	return cli.HandleExecutionError(err)
}
