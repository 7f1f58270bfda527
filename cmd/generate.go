package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/config"
	"github.com/rlhub/datacat/internal/docs"
	"github.com/rlhub/datacat/internal/progress"
	"github.com/rlhub/datacat/internal/search"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Load catalog files and generate dataset documentation",
	Long: `Discovers catalog YAML files, validates every dataset, stores them in
the catalog database, and renders one markdown page per dataset variant.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("no-index", false, "skip building the semantic search index")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning catalog files in %s...\n", cfg.CatalogDir)
	}

	datasets, err := catalog.LoadDir(cfg.CatalogDir, cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		return fmt.Errorf("no catalog files found in %s", cfg.CatalogDir)
	}

	store, closeDB, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	generator := docs.NewGenerator(cfg.DocsDir, cfg.Preview.BaseURL)

	reporter := progress.NewReporter()
	reporter.Start(len(datasets))

	pageCount := 0
	for i, d := range datasets {
		reporter.Dataset(i+1, d.Name, len(d.Variants))

		if err := store.Upsert(ctx, d); err != nil {
			reporter.Finish()
			return fmt.Errorf("storing %s: %w", d.Name, err)
		}
		n, err := generator.GenerateDataset(d)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("generating pages for %s: %w", d.Name, err)
		}
		pageCount += n
	}
	reporter.Finish()

	stored, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}
	if err := generator.GenerateIndex(stored); err != nil {
		return fmt.Errorf("generating index: %w", err)
	}
	pageCount++

	fmt.Printf("Generated %d pages for %d datasets in %s\n",
		pageCount, len(datasets), time.Since(start).Round(time.Millisecond))

	// Build the semantic search index if enabled.
	noIndex, _ := cmd.Flags().GetBool("no-index")
	if cfg.Search.Enabled && !noIndex {
		if err := buildSearchIndex(ctx, cfg, stored); err != nil {
			return err
		}
	}

	return nil
}

func buildSearchIndex(ctx context.Context, cfg *config.Config, datasets []catalog.Dataset) error {
	embedder, err := newEmbedderFromConfig(cfg)
	if err != nil {
		return err
	}
	index, err := search.NewIndex(embedder)
	if err != nil {
		return fmt.Errorf("creating search index: %w", err)
	}
	if err := index.AddDatasets(ctx, datasets); err != nil {
		return fmt.Errorf("indexing datasets: %w", err)
	}
	if err := index.Persist(ctx, cfg.Search.IndexDir); err != nil {
		return fmt.Errorf("persisting search index: %w", err)
	}
	fmt.Printf("Indexed %d variants for semantic search\n", index.Count())
	return nil
}
