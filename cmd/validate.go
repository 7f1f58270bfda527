package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rlhub/datacat/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate catalog files without generating anything",
	Long: `Checks catalog YAML files for schema errors: unknown fields, invalid
dtypes and shapes, malformed versions, duplicate variants, and broken
BibTeX citations. With no arguments, validates the whole catalog directory.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		// Discover returns paths relative to the catalog dir.
		rels, err := catalog.Discover(cfg.CatalogDir, cfg.Include, cfg.Exclude)
		if err != nil {
			return fmt.Errorf("discovering catalog files: %w", err)
		}
		if len(rels) == 0 {
			return fmt.Errorf("no catalog files found in %s", cfg.CatalogDir)
		}
		for _, rel := range rels {
			paths = append(paths, filepath.Join(cfg.CatalogDir, filepath.FromSlash(rel)))
		}
	}

	failures := 0
	for _, path := range paths {
		d, err := catalog.Load(path)
		if err != nil {
			failures++
			fmt.Printf("FAIL %s\n     %v\n", path, err)
			continue
		}
		fmt.Printf("ok   %s (%s, %d variants)\n", path, d.Name, len(d.Variants))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d catalog files failed validation", failures, len(paths))
	}
	fmt.Printf("All %d catalog files are valid\n", len(paths))
	return nil
}
