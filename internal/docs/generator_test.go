package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/schema"
)

func sampleDataset() *catalog.Dataset {
	steps := schema.Dict(map[string]*schema.FeatureSpec{
		"action":      schema.Tensor(schema.Float32, 28),
		"observation": schema.Tensor(schema.Float32, 39),
		"reward":      schema.Scalar(schema.Float32),
	})
	return &catalog.Dataset{
		Name:        "d4rl_adroit_door",
		Description: "Adroit door-opening task from the D4RL benchmark.",
		Homepage:    "https://sites.google.com/view/d4rl/home",
		Citation:    "@misc{fu2020d4rl,\n    title={D4RL},\n    year={2020}\n}",
		Variants: []catalog.Variant{
			{
				Name:         "human-v0",
				Version:      "1.1.0",
				DownloadSize: 5885000,
				DatasetSize:  7120000,
				Features:     schema.Dict(map[string]*schema.FeatureSpec{"steps": steps}),
				Splits:       []catalog.Split{{Name: "train", NumShards: 1, NumExamples: 6729}},
			},
			{
				Name:     "cloned-v0",
				Version:  "1.1.0",
				Features: schema.Dict(map[string]*schema.FeatureSpec{"steps": steps}),
				Splits:   []catalog.Split{{Name: "train", NumShards: 4, NumExamples: 1000000}},
			},
		},
	}
}

func TestGenerateDataset(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "https://example.com/previews")

	pages, err := g.GenerateDataset(sampleDataset())
	if err != nil {
		t.Fatalf("GenerateDataset() error: %v", err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3 (2 variants + index)", pages)
	}

	content, err := os.ReadFile(filepath.Join(out, "d4rl_adroit_door", "human-v0.md"))
	if err != nil {
		t.Fatalf("reading variant page: %v", err)
	}
	page := string(content)

	for _, want := range []string{
		"# d4rl_adroit_door/human-v0",
		"`steps/action` | (28,) | float32",
		"`steps/observation` | (39,) | float32",
		"`steps/reward` | () | float32",
		"5.6 MiB",
		"| `train` | 1 | 6,729 |",
		"https://example.com/previews/d4rl_adroit_door-human-v0.html",
		"Examples are currently unavailable.",
		"btn.disabled = true;",
		"```bibtex",
		"@misc{fu2020d4rl,",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("variant page missing %q", want)
		}
	}
}

func TestGenerateDatasetIndex(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "")

	if _, err := g.GenerateDataset(sampleDataset()); err != nil {
		t.Fatalf("GenerateDataset() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(out, "d4rl_adroit_door", "index.md"))
	if err != nil {
		t.Fatalf("reading dataset index: %v", err)
	}
	page := string(content)

	for _, want := range []string{
		"# d4rl_adroit_door",
		"[`human-v0`](human-v0.html)",
		"[`cloned-v0`](cloned-v0.html)",
		"1,000,000",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("dataset index missing %q", want)
		}
	}
	// cloned-v0 has no recorded sizes.
	if !strings.Contains(page, "unknown") {
		t.Error("dataset index should render unknown for missing sizes")
	}
}

func TestGenerateIndex(t *testing.T) {
	out := t.TempDir()
	g := NewGenerator(out, "")

	d := sampleDataset()
	if err := g.GenerateIndex([]catalog.Dataset{*d}); err != nil {
		t.Fatalf("GenerateIndex() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(out, "index.md"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	page := string(content)

	for _, want := range []string{
		"# Dataset Catalog",
		"[d4rl_adroit_door](d4rl_adroit_door/index.html)",
		"[`human-v0`](d4rl_adroit_door/human-v0.html)",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("index missing %q", want)
		}
	}
}
