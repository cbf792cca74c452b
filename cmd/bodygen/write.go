package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var writeCmd = &cobra.Command{
	Use:   "write <templates.ini>",
	Short: "Write templates.ini and morphs.ini into every plugin folder",
	Long: `Formats the given templates file and writes the templates.ini / morphs.ini
pair into every plugin folder (*.esm, *.esp, *.esl) next to the one holding
it, or under --to. Prints what would change first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("to")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return withApp(cmd, func(_ *cli.SignalContext, app *cli.App) error {
			return cli.RunWrite(app, cli.WriteOptions{Source: args[0], Root: root, DryRun: dryRun})
		})
	},
}

func init() {
	writeCmd.Flags().String("to", "", "Output root holding the plugin folders")
	writeCmd.Flags().Bool("dry-run", false, "Only print the per-folder status")
	rootCmd.AddCommand(writeCmd)
}
