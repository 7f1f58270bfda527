package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rlhub/datacat/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static catalog website",
	Long: `Renders the generated markdown pages into a self-contained static HTML
site with navigation, search, and example previews.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "override output directory (defaults to site_dir from config)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Verify that docs have been generated.
	if _, err := os.Stat(cfg.DocsDir); os.IsNotExist(err) {
		return fmt.Errorf("docs directory not found at %s\nRun `datacat generate` first to create documentation", cfg.DocsDir)
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.SiteDir
	}

	generator := site.NewGenerator(cfg.DocsDir, outputDir, cfg.SiteName)
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
