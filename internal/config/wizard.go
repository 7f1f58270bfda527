package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .datacat.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to datacat! Let's configure your catalog.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Catalog directory.
	catalogPrompt := promptui.Prompt{
		Label:   "Directory containing catalog YAML files",
		Default: cfg.CatalogDir,
	}
	catalogDir, err := catalogPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	cfg.CatalogDir = catalogDir

	// 2. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.SiteName = siteName

	// 3. Output directories.
	docsPrompt := promptui.Prompt{
		Label:   "Output directory for generated markdown",
		Default: cfg.DocsDir,
	}
	docsDir, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}
	cfg.DocsDir = docsDir

	sitePrompt := promptui.Prompt{
		Label:   "Output directory for the rendered site",
		Default: cfg.SiteDir,
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 4. Include patterns.
	includePrompt := promptui.Prompt{
		Label:   "Include patterns (comma-separated globs)",
		Default: strings.Join(cfg.Include, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.Include = include
	}

	// 5. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 6. Semantic search.
	searchPrompt := promptui.Select{
		Label: "Enable semantic search (requires an OpenAI API key)",
		Items: []string{"no", "yes"},
	}
	searchIdx, _, err := searchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search selection: %w", err)
	}
	cfg.Search.Enabled = searchIdx == 1

	if cfg.Search.Enabled && os.Getenv(EmbeddingAPIKeyEnvVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running datacat generate.\n", EmbeddingAPIKeyEnvVar)
	}

	// Save to .datacat.yml.
	configPath := ".datacat.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
