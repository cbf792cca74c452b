package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen/internal/cli"
	"github.com/aretw0/bodygen/pkg/domain"
	"github.com/aretw0/bodygen/pkg/preset"
)

var validateCmd = &cobra.Command{
	Use:   "validate [preset files...]",
	Short: "Validate presets against the slider catalog",
	Long: `Validates every preset in the given files, or in the presets folder when no
file is given. Unknown sliders are reported and removed, out-of-range values
are clamped, and each preset's BodyGen line is printed. Exits non-zero when
any preset is invalid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := validateOptions(cmd, args)
		if err != nil {
			return err
		}
		return withApp(cmd, func(sigCtx *cli.SignalContext, app *cli.App) error {
			return cli.RunValidate(sigCtx, app, opts)
		})
	},
}

func init() {
	addFilterFlags(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print results as JSON")
	rootCmd.AddCommand(validateCmd)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("gender", "g", "any", "Only list presets of this gender (male, female, any)")
	cmd.Flags().StringP("query", "q", "", "Only list presets whose name contains this text")
}

func validateOptions(cmd *cobra.Command, args []string) (cli.ValidateOptions, error) {
	gender, _ := cmd.Flags().GetString("gender")
	query, _ := cmd.Flags().GetString("query")
	asJSON, _ := cmd.Flags().GetBool("json")

	g, err := domain.ParseGender(gender)
	if err != nil {
		return cli.ValidateOptions{}, err
	}
	return cli.ValidateOptions{
		Paths:  args,
		Filter: preset.Filter{Gender: g, Query: query},
		JSON:   asJSON,
	}, nil
}
