package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "datacat",
	Short: "Dataset catalog documentation generator",
	Long: `Datacat reads dataset descriptions from YAML catalog files, validates
their feature schemas, and generates a browsable documentation site with
split tables, example previews, and citations. It can also serve the
catalog over HTTP and expose it to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".datacat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
