package site

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// SearchEntry is one searchable page in the client-side search index.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BuildSearchIndex reads all .md files under docsDir and builds the
// client-side search index.
func BuildSearchIndex(docsDir string) ([]SearchEntry, error) {
	paths, err := collectMarkdown(docsDir)
	if err != nil {
		return nil, err
	}

	var entries []SearchEntry
	for _, rel := range paths {
		entry, err := parsePage(filepath.Join(docsDir, filepath.FromSlash(rel)), rel)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parsePage extracts the title and plain text of a markdown page.
func parsePage(path, rel string) (SearchEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return SearchEntry{}, err
	}
	defer f.Close()

	entry := SearchEntry{
		Path: strings.TrimSuffix(rel, ".md") + ".html",
	}

	inScript := false
	var text []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		// The preview block's script is not searchable content.
		if strings.HasPrefix(trimmed, "<script") {
			inScript = true
		}
		if inScript {
			if strings.HasPrefix(trimmed, "</script") {
				inScript = false
			}
			continue
		}

		if entry.Title == "" && strings.HasPrefix(line, "# ") {
			entry.Title = strings.TrimPrefix(line, "# ")
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "<") {
			continue
		}
		text = append(text, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return SearchEntry{}, err
	}

	content := strings.Join(text, " ")
	if len(content) > 4000 {
		content = content[:4000]
	}
	entry.Content = content
	return entry, nil
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, path string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
