package config

// Config is the top-level datacat configuration, corresponding to .datacat.yml.
type Config struct {
	CatalogDir string        `yaml:"catalog_dir" koanf:"catalog_dir"`
	DBPath     string        `yaml:"db_path" koanf:"db_path"`
	DocsDir    string        `yaml:"docs_dir" koanf:"docs_dir"`
	SiteDir    string        `yaml:"site_dir" koanf:"site_dir"`
	SiteName   string        `yaml:"site_name" koanf:"site_name"`
	Include    []string      `yaml:"include" koanf:"include"`
	Exclude    []string      `yaml:"exclude" koanf:"exclude"`
	Preview    PreviewConfig `yaml:"preview" koanf:"preview"`
	Server     ServerConfig  `yaml:"server" koanf:"server"`
	Search     SearchConfig  `yaml:"search" koanf:"search"`
}

// PreviewConfig controls how pre-rendered example fragments are fetched.
type PreviewConfig struct {
	BaseURL         string `yaml:"base_url" koanf:"base_url"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds" koanf:"cache_ttl_seconds"`
}

// ServerConfig holds settings for the catalog HTTP server.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// SearchConfig holds semantic search settings. Search is optional and
// only active when an OpenAI API key is available.
type SearchConfig struct {
	Enabled        bool   `yaml:"enabled" koanf:"enabled"`
	EmbeddingModel string `yaml:"embedding_model" koanf:"embedding_model"`
	IndexDir       string `yaml:"index_dir" koanf:"index_dir"`
}
