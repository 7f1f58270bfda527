package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog semantically",
	Long: `Runs a semantic search over indexed dataset variants using embeddings.
Requires search to be enabled in the config and an index built by
` + "`datacat generate`" + `.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Search.Enabled {
		return fmt.Errorf("semantic search is disabled; set search.enabled in %s", cfgFile)
	}

	ctx := context.Background()
	index, err := loadSearchIndex(ctx, cfg)
	if err != nil {
		return err
	}
	if index.Count() == 0 {
		return fmt.Errorf("the search index is empty; run `datacat generate` first")
	}

	query := strings.Join(args, " ")
	results, err := index.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. %s/%s (%.2f)\n", i+1, r.Dataset, r.Variant, r.Similarity)
	}
	return nil
}
