package catalog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultInclude matches the catalog files picked up when no include
// patterns are configured.
var DefaultInclude = []string{"**/*.yml", "**/*.yaml"}

// Load reads and validates a single dataset from a YAML file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var d Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &d, nil
}

// Discover returns the catalog file paths under root that match the
// include patterns and none of the exclude patterns, sorted, relative
// to root. Empty include falls back to DefaultInclude.
func Discover(root string, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}
		if entry.IsDir() {
			if entry.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking catalog dir %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadDir discovers and loads every catalog file under root, in path
// order. Dataset names must be unique across files.
func LoadDir(root string, include, exclude []string) ([]*Dataset, error) {
	paths, err := Discover(root, include, exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(paths))
	var datasets []*Dataset
	for _, rel := range paths {
		d, err := Load(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[d.Name]; ok {
			return nil, fmt.Errorf("dataset %q defined in both %s and %s", d.Name, prev, rel)
		}
		seen[d.Name] = rel
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// matchesAny checks if rel matches any of the given glob patterns,
// using doublestar for ** support.
func matchesAny(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
