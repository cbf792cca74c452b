package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/bodygen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bodygen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bodygen version %s\n", strings.TrimSpace(bodygen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
