package config

// DefaultPreviewBaseURL is where pre-rendered example tables are hosted.
const DefaultPreviewBaseURL = "https://storage.googleapis.com/tfds-data/visualization/dataframe"

// DefaultInclude are the glob patterns used to discover catalog files.
var DefaultInclude = []string{
	"**/*.yml",
	"**/*.yaml",
}

// DefaultExcludes are glob patterns excluded from catalog discovery by default.
var DefaultExcludes = []string{
	".git/**",
	"drafts/**",
	"**/*.draft.yml",
	"**/*.draft.yaml",
	"node_modules/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CatalogDir: "catalog",
		DBPath:     ".datacat/catalog.db",
		DocsDir:    "docs",
		SiteDir:    "site",
		SiteName:   "Dataset Catalog",
		Include:    DefaultInclude,
		Exclude:    DefaultExcludes,
		Preview: PreviewConfig{
			BaseURL:         DefaultPreviewBaseURL,
			CacheTTLSeconds: 300,
		},
		Server: ServerConfig{
			Port:     8080,
			AllowAll: false,
		},
		Search: SearchConfig{
			Enabled:        false,
			EmbeddingModel: "text-embedding-3-small",
			IndexDir:       ".datacat/index",
		},
	}
}
