package search

import (
	"context"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/schema"
)

// stubEmbedder produces deterministic word-bucket embeddings, enough
// for exercising the index without network access.
type stubEmbedder struct{}

func (stubEmbedder) Name() string { return "stub" }

func (stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, 64)
		h := fnv.New32a()
		h.Write([]byte(text))
		for j := range vec {
			vec[j] = float32((h.Sum32()>>uint(j%32))&0xff) / 255
		}
		vec[int(h.Sum32())%64] += 1
		out[i] = vec
	}
	return out, nil
}

func testDatasets() []catalog.Dataset {
	features := schema.Dict(map[string]*schema.FeatureSpec{
		"steps": schema.Dict(map[string]*schema.FeatureSpec{
			"action": schema.Tensor(schema.Float32, 28),
		}),
	})
	return []catalog.Dataset{
		{
			Name:        "d4rl_adroit_door",
			Description: "Door-opening with a dexterous hand.",
			Variants: []catalog.Variant{
				{Name: "human-v0", Features: features},
				{Name: "cloned-v0", Features: features},
			},
		},
	}
}

func TestIndexAddAndCount(t *testing.T) {
	ix, err := NewIndex(stubEmbedder{})
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}

	if err := ix.AddDatasets(context.Background(), testDatasets()); err != nil {
		t.Fatalf("AddDatasets() error: %v", err)
	}
	if ix.Count() != 2 {
		t.Errorf("Count() = %d, want 2", ix.Count())
	}
}

func TestIndexSearchEmpty(t *testing.T) {
	ix, err := NewIndex(stubEmbedder{})
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	results, err := ix.Search(context.Background(), "door", 5)
	if err != nil {
		t.Fatalf("Search() on empty index error: %v", err)
	}
	if results != nil {
		t.Errorf("Search() on empty index = %v, want nil", results)
	}
}

func TestIndexSearch(t *testing.T) {
	ctx := context.Background()
	ix, err := NewIndex(stubEmbedder{})
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	if err := ix.AddDatasets(ctx, testDatasets()); err != nil {
		t.Fatalf("AddDatasets() error: %v", err)
	}

	results, err := ix.Search(ctx, "door opening demonstrations", 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() = %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Dataset != "d4rl_adroit_door" {
			t.Errorf("result dataset = %q", r.Dataset)
		}
		if r.Variant == "" {
			t.Error("result variant missing")
		}
	}
}

func TestVariantText(t *testing.T) {
	datasets := testDatasets()
	d := &datasets[0]
	text := variantText(d, &d.Variants[0])

	for _, want := range []string{"d4rl_adroit_door/human-v0", "dexterous hand", "steps/action"} {
		if !strings.Contains(text, want) {
			t.Errorf("variantText missing %q in %q", want, text)
		}
	}
}
