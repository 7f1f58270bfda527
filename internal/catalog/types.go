// Package catalog defines the dataset catalog model: datasets, their
// variants (configurations), split counts, sizes, and citations, plus
// loading from authored YAML and persistence in SQLite.
package catalog

import (
	"fmt"
	"regexp"

	"github.com/rlhub/datacat/internal/schema"
)

// Dataset is one catalog entry, e.g. d4rl_adroit_door.
type Dataset struct {
	ID          string    `json:"id" yaml:"-"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Homepage    string    `json:"homepage" yaml:"homepage"`
	Citation    string    `json:"citation" yaml:"citation"`
	Variants    []Variant `json:"variants" yaml:"variants"`
}

// Variant is one configuration of a dataset, e.g. human-v0. Sizes are
// in bytes as published by the dataset host.
type Variant struct {
	ID           string              `json:"id" yaml:"-"`
	Name         string              `json:"name" yaml:"name"`
	Version      string              `json:"version" yaml:"version"`
	Description  string              `json:"description" yaml:"description"`
	DownloadSize int64               `json:"download_size" yaml:"download_size"`
	DatasetSize  int64               `json:"dataset_size" yaml:"dataset_size"`
	Features     *schema.FeatureSpec `json:"features" yaml:"features"`
	Splits       []Split             `json:"splits" yaml:"splits"`
}

// Split is a named partition of a variant with its shard and example
// counts. Source catalogs define only "train", but any name is allowed.
type Split struct {
	Name        string `json:"name" yaml:"name"`
	NumShards   int    `json:"num_shards" yaml:"num_shards"`
	NumExamples int64  `json:"num_examples" yaml:"num_examples"`
}

// versionRe matches MAJOR.MINOR.PATCH variant versions.
var versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate checks the dataset for authoring errors: missing names,
// duplicate variants, bad versions, invalid schemas, negative counts.
func (d *Dataset) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if len(d.Variants) == 0 {
		return fmt.Errorf("dataset %s: at least one variant is required", d.Name)
	}
	if d.Citation != "" {
		if err := ValidateBibTeX(d.Citation); err != nil {
			return fmt.Errorf("dataset %s: citation: %w", d.Name, err)
		}
	}

	seen := make(map[string]bool, len(d.Variants))
	for i := range d.Variants {
		v := &d.Variants[i]
		if err := v.Validate(); err != nil {
			return fmt.Errorf("dataset %s: %w", d.Name, err)
		}
		if seen[v.Name] {
			return fmt.Errorf("dataset %s: duplicate variant %q", d.Name, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}

// Validate checks a single variant.
func (v *Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant name is required")
	}
	if v.Version != "" && !versionRe.MatchString(v.Version) {
		return fmt.Errorf("variant %s: invalid version %q", v.Name, v.Version)
	}
	if v.DownloadSize < 0 || v.DatasetSize < 0 {
		return fmt.Errorf("variant %s: sizes must be non-negative", v.Name)
	}
	if v.Features == nil {
		return fmt.Errorf("variant %s: features are required", v.Name)
	}
	if err := v.Features.Validate(); err != nil {
		return fmt.Errorf("variant %s: features: %w", v.Name, err)
	}
	if len(v.Splits) == 0 {
		return fmt.Errorf("variant %s: at least one split is required", v.Name)
	}
	seen := make(map[string]bool, len(v.Splits))
	for _, s := range v.Splits {
		if s.Name == "" {
			return fmt.Errorf("variant %s: split name is required", v.Name)
		}
		if seen[s.Name] {
			return fmt.Errorf("variant %s: duplicate split %q", v.Name, s.Name)
		}
		seen[s.Name] = true
		if s.NumShards < 0 || s.NumExamples < 0 {
			return fmt.Errorf("variant %s: split %s: counts must be non-negative", v.Name, s.Name)
		}
	}
	return nil
}

// Variant returns the named variant, or nil.
func (d *Dataset) Variant(name string) *Variant {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i]
		}
	}
	return nil
}

// Split returns the named split, or nil. Value receiver so templates
// can call it on ranged variants.
func (v Variant) Split(name string) *Split {
	for i := range v.Splits {
		if v.Splits[i].Name == name {
			return &v.Splits[i]
		}
	}
	return nil
}

// FullName is the catalog display name, e.g. "d4rl_adroit_door/human-v0".
func (v Variant) FullName(dataset string) string {
	return dataset + "/" + v.Name
}
