package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CatalogDir != "catalog" {
		t.Errorf("expected default catalog_dir %q, got %q", "catalog", cfg.CatalogDir)
	}
	if cfg.DocsDir != "docs" {
		t.Errorf("expected default docs_dir %q, got %q", "docs", cfg.DocsDir)
	}
	if cfg.Preview.BaseURL != DefaultPreviewBaseURL {
		t.Errorf("expected default preview base URL, got %q", cfg.Preview.BaseURL)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.datacat.yml")

	original := DefaultConfig()
	original.CatalogDir = "datasets"
	original.SiteName = "RL Datasets"
	original.Include = []string{"rl/**/*.yml", "vision/**/*.yml"}
	original.Preview.CacheTTLSeconds = 60
	original.Server.Port = 9090

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.CatalogDir != original.CatalogDir {
		t.Errorf("catalog_dir: got %q, want %q", loaded.CatalogDir, original.CatalogDir)
	}
	if loaded.SiteName != original.SiteName {
		t.Errorf("site_name: got %q, want %q", loaded.SiteName, original.SiteName)
	}
	if loaded.Preview.CacheTTLSeconds != original.Preview.CacheTTLSeconds {
		t.Errorf("cache_ttl_seconds: got %d, want %d", loaded.Preview.CacheTTLSeconds, original.Preview.CacheTTLSeconds)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Fatalf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.CatalogDir != "catalog" {
		t.Errorf("expected default catalog_dir, got %q", cfg.CatalogDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("DATACAT_CATALOG_DIR", "override")
	os.Setenv("DATACAT_SERVER__PORT", "7070")
	defer os.Unsetenv("DATACAT_CATALOG_DIR")
	defer os.Unsetenv("DATACAT_SERVER__PORT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.CatalogDir != "override" {
		t.Errorf("env override failed: got %q, want %q", loaded.CatalogDir, "override")
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("nested env override failed: got %d, want 7070", loaded.Server.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateEmptyCatalogDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CatalogDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty catalog_dir")
	}
}

func TestValidateBadPreviewURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preview.BaseURL = "ftp://example.com/previews"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for non-http preview base URL")
	}
}

func TestValidateNegativeTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preview.CacheTTLSeconds = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative cache TTL")
	}
}

func TestValidateBadPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := DefaultConfig()
		cfg.Server.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected validation error for port %d", port)
		}
	}
}

func TestValidateSearchWithoutModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Search.Enabled = true
	cfg.Search.EmbeddingModel = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for enabled search without embedding model")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.yml", []string{"**/*.yml"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
