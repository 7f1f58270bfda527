package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rlhub/datacat/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize datacat configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure datacat for your catalog and generates a .datacat.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
