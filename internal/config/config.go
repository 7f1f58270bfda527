// Package config loads, validates, and persists datacat configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DATACAT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DATACAT_CATALOG_DIR -> catalog_dir,
	// DATACAT_SERVER__PORT -> server.port, etc.
	if err := k.Load(env.Provider("DATACAT_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DATACAT_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.CatalogDir == "" {
		return fmt.Errorf("catalog_dir is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.DocsDir == "" {
		return fmt.Errorf("docs_dir is required")
	}
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	if len(c.Include) == 0 {
		return fmt.Errorf("include must list at least one pattern")
	}

	if c.Preview.BaseURL == "" {
		return fmt.Errorf("preview.base_url is required")
	}
	u, err := url.Parse(c.Preview.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid preview.base_url %q: must be an http(s) URL", c.Preview.BaseURL)
	}
	if c.Preview.CacheTTLSeconds < 0 {
		return fmt.Errorf("preview.cache_ttl_seconds must be non-negative")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Search.Enabled && c.Search.EmbeddingModel == "" {
		return fmt.Errorf("search.embedding_model is required when search is enabled")
	}

	return nil
}

// EmbeddingAPIKeyEnvVar is the environment variable that holds the API key
// used for semantic search embeddings.
const EmbeddingAPIKeyEnvVar = "OPENAI_API_KEY"
