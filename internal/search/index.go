package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/rlhub/datacat/internal/catalog"
)

const collectionName = "catalog"

// Result is one semantic search hit.
type Result struct {
	Dataset    string  `json:"dataset"`
	Variant    string  `json:"variant"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

// Index is an in-memory semantic index over catalog variants.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewIndex creates an empty index backed by the given embedder.
func NewIndex(embedder Embedder) (*Index, error) {
	db := chromem.NewDB()
	ef := toChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{db: db, collection: col, embedFunc: ef}, nil
}

// AddDatasets indexes one document per variant: the descriptions plus
// the flattened feature paths, so schema field names are searchable.
func (ix *Index) AddDatasets(ctx context.Context, datasets []catalog.Dataset) error {
	var docs []chromem.Document
	for i := range datasets {
		d := &datasets[i]
		for j := range d.Variants {
			v := &d.Variants[j]
			docs = append(docs, chromem.Document{
				ID:      v.FullName(d.Name),
				Content: variantText(d, v),
				Metadata: map[string]string{
					"dataset": d.Name,
					"variant": v.Name,
				},
			})
		}
	}
	if len(docs) == 0 {
		return nil
	}
	return ix.collection.AddDocuments(ctx, docs, 1)
}

// Search returns the top matches for a natural-language query.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	hits, err := ix.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			Dataset:    h.Metadata["dataset"],
			Variant:    h.Metadata["variant"],
			Content:    h.Content,
			Similarity: h.Similarity,
		}
	}
	return results, nil
}

// Count returns the number of indexed variants.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Persist writes the index to {dir}/catalog.gob.gz.
func (ix *Index) Persist(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return ix.db.ExportToFile(filepath.Join(dir, "catalog.gob.gz"), true, "")
}

// Load reads a previously persisted index from {dir}/catalog.gob.gz.
func (ix *Index) Load(ctx context.Context, dir string) error {
	if err := ix.db.ImportFromFile(filepath.Join(dir, "catalog.gob.gz"), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.collection = col
	return nil
}

// variantText builds the indexable text for one variant.
func variantText(d *catalog.Dataset, v *catalog.Variant) string {
	var b strings.Builder
	b.WriteString(v.FullName(d.Name))
	b.WriteString("\n")
	if v.Description != "" {
		b.WriteString(v.Description)
	} else {
		b.WriteString(d.Description)
	}
	b.WriteString("\nFeatures:")
	for _, row := range v.Features.Flatten() {
		b.WriteString(" ")
		b.WriteString(row.Path)
	}
	return b.String()
}
