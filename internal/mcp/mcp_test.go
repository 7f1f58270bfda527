package mcp

import (
	"strings"
	"testing"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/schema"
)

func doorDataset() *catalog.Dataset {
	return &catalog.Dataset{
		Name:        "d4rl_adroit_door",
		Description: "Adroit door-opening task.",
		Homepage:    "https://sites.google.com/view/d4rl/home",
		Variants: []catalog.Variant{
			{
				Name:         "human-v0",
				Version:      "1.1.0",
				DownloadSize: 5885000,
				DatasetSize:  7120000,
				Features: schema.Dict(map[string]*schema.FeatureSpec{
					"steps": schema.Dict(map[string]*schema.FeatureSpec{
						"action":      schema.Tensor(schema.Float32, 28),
						"observation": schema.Tensor(schema.Float32, 39),
					}),
				}),
				Splits: []catalog.Split{{Name: "train", NumShards: 1, NumExamples: 6729}},
			},
		},
	}
}

func TestFormatDatasetList(t *testing.T) {
	out := formatDatasetList([]catalog.Dataset{*doorDataset()})

	for _, want := range []string{"d4rl_adroit_door — Adroit door-opening task.", "  - human-v0"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDataset(t *testing.T) {
	out := formatDataset(doorDataset())

	for _, want := range []string{
		"# d4rl_adroit_door",
		"Homepage: https://sites.google.com/view/d4rl/home",
		"human-v0 (version 1.1.0, download 5.6 MiB",
		"train: 6,729 examples in 1 shards",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dataset output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSchema(t *testing.T) {
	d := doorDataset()
	out := formatSchema(d.Name, &d.Variants[0])

	if !strings.Contains(out, "Feature schema of d4rl_adroit_door/human-v0:") {
		t.Errorf("schema header missing:\n%s", out)
	}
	for _, want := range []string{"steps/action", "(28,)", "steps/observation", "(39,)", "float32"} {
		if !strings.Contains(out, want) {
			t.Errorf("schema output missing %q:\n%s", want, out)
		}
	}
}
