// Package docs renders catalog entries into markdown documentation
// pages, one page per dataset variant plus index pages.
package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/rlhub/datacat/internal/catalog"
	"github.com/rlhub/datacat/internal/preview"
	"github.com/rlhub/datacat/internal/schema"
)

// Generator renders catalog datasets into markdown files under OutputDir,
// one subdirectory per dataset.
type Generator struct {
	OutputDir      string
	PreviewBaseURL string
}

// NewGenerator creates a Generator writing to the given output directory.
func NewGenerator(outputDir, previewBaseURL string) *Generator {
	if previewBaseURL == "" {
		previewBaseURL = preview.DefaultBaseURL
	}
	return &Generator{OutputDir: outputDir, PreviewBaseURL: previewBaseURL}
}

// templateFuncs are the helpers available to all page templates.
var templateFuncs = template.FuncMap{
	"size": func(n int64) string {
		if n <= 0 {
			return "unknown"
		}
		return humanize.IBytes(uint64(n))
	},
	"count": func(n int64) string {
		return humanize.Comma(n)
	},
}

// variantPage is the data passed to the variant page template.
type variantPage struct {
	Dataset    *catalog.Dataset
	Variant    *catalog.Variant
	Rows       []schema.FlatFeature
	PreviewURL string
}

// GenerateDataset renders one page per variant plus a dataset index.
// Returns the number of pages written.
func (g *Generator) GenerateDataset(d *catalog.Dataset) (int, error) {
	pageTmpl, err := template.New("variant").Funcs(templateFuncs).Parse(variantTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing variant template: %w", err)
	}
	indexTmpl, err := template.New("dsindex").Funcs(templateFuncs).Parse(datasetIndexTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing dataset index template: %w", err)
	}

	dir := filepath.Join(g.OutputDir, d.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	pages := 0
	fetcher := preview.NewFetcher(g.PreviewBaseURL, 0)
	for i := range d.Variants {
		v := &d.Variants[i]
		data := variantPage{
			Dataset:    d,
			Variant:    v,
			Rows:       v.Features.Flatten(),
			PreviewURL: fetcher.URL(d.Name, v.Name),
		}
		outPath := filepath.Join(dir, v.Name+".md")
		if err := writeTemplate(pageTmpl, outPath, data); err != nil {
			return pages, fmt.Errorf("rendering %s: %w", v.FullName(d.Name), err)
		}
		pages++
	}

	if err := writeTemplate(indexTmpl, filepath.Join(dir, "index.md"), d); err != nil {
		return pages, fmt.Errorf("rendering %s index: %w", d.Name, err)
	}
	return pages + 1, nil
}

// GenerateIndex renders the top-level index listing all datasets.
func (g *Generator) GenerateIndex(datasets []catalog.Dataset) error {
	tmpl, err := template.New("index").Funcs(templateFuncs).Parse(indexTemplate)
	if err != nil {
		return fmt.Errorf("parsing index template: %w", err)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return err
	}

	data := struct {
		Datasets []catalog.Dataset
	}{Datasets: datasets}

	if err := writeTemplate(tmpl, filepath.Join(g.OutputDir, "index.md"), data); err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	return nil
}

func writeTemplate(tmpl *template.Template, outPath string, data any) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	err = tmpl.Execute(f, data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
