package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/config"
	"github.com/rlhub/datacat/internal/db"
	"github.com/rlhub/datacat/internal/preview"
	"github.com/rlhub/datacat/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `datacat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the catalog database and returns the store plus a
// close function for the underlying handle.
func openStore(cfg *config.Config) (*catalog.Store, func() error, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database %s: %w", cfg.DBPath, err)
	}
	return catalog.NewStore(database), database.Close, nil
}

// newFetcher builds the example preview fetcher from config.
func newFetcher(cfg *config.Config) *preview.Fetcher {
	ttl := time.Duration(cfg.Preview.CacheTTLSeconds) * time.Second
	return preview.NewFetcher(cfg.Preview.BaseURL, ttl)
}

// newEmbedderFromConfig creates the embedder used for semantic search.
func newEmbedderFromConfig(cfg *config.Config) (search.Embedder, error) {
	apiKey := os.Getenv(config.EmbeddingAPIKeyEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is required for semantic search", config.EmbeddingAPIKeyEnvVar)
	}
	return search.NewOpenAIEmbedder(apiKey, search.OpenAIModel(cfg.Search.EmbeddingModel)), nil
}

// loadSearchIndex loads the persisted semantic index if search is enabled.
// Returns nil without error when search is disabled or the index is absent.
func loadSearchIndex(ctx context.Context, cfg *config.Config) (*search.Index, error) {
	if !cfg.Search.Enabled {
		return nil, nil
	}
	embedder, err := newEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	index, err := search.NewIndex(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	if err := index.Load(ctx, cfg.Search.IndexDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load search index from %s: %v\n", cfg.Search.IndexDir, err)
		fmt.Fprintf(os.Stderr, "Search results will be empty. Run `datacat generate` first.\n")
	}
	return index, nil
}
