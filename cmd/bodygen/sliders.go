package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
	"github.com/aretw0/bodygen/pkg/domain"
)

var slidersCmd = &cobra.Command{
	Use:   "sliders [male|female]",
	Short: "List the slider catalog by category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := domain.GenderFemale
		if len(args) == 1 {
			var err error
			if g, err = domain.ParseGender(args[0]); err != nil {
				return err
			}
			if !g.Valid() {
				return fmt.Errorf("gender must be male or female")
			}
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		return withApp(cmd, func(_ *cli.SignalContext, app *cli.App) error {
			return cli.RunSliders(app, g, asJSON)
		})
	},
}

func init() {
	slidersCmd.Flags().Bool("json", false, "Print descriptors as JSON")
	rootCmd.AddCommand(slidersCmd)
}
