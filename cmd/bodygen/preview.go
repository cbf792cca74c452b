package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
)

var previewCmd = &cobra.Command{
	Use:   "preview <body> <descriptor>",
	Short: "Apply a slider descriptor to a configured body",
	Long: `Applies a "name@value,..." descriptor to a body listed under bodies in the
settings file. With --out the morphed mesh is saved as a binary glTF.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		recenter, _ := cmd.Flags().GetBool("recenter")
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunPreview(sigCtx, app, cli.PreviewOptions{
				Body:       args[0],
				Descriptor: args[1],
				Recenter:   recenter,
				Out:        out,
			})
		})
	},
}

func init() {
	previewCmd.Flags().StringP("out", "o", "", "Save the morphed mesh to this .glb file")
	previewCmd.Flags().Bool("recenter", false, "Center the result on the origin")
	rootCmd.AddCommand(previewCmd)
}
