// Package site converts the generated markdown catalog pages into a
// self-contained static HTML site with sidebar navigation and search.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Generator converts markdown catalog pages into a static HTML site.
type Generator struct {
	DocsDir   string
	OutputDir string
	SiteName  string
}

// NewGenerator creates a Generator with the given directories.
func NewGenerator(docsDir, outputDir, siteName string) *Generator {
	if siteName == "" {
		siteName = "Dataset Catalog"
	}
	return &Generator{DocsDir: docsDir, OutputDir: outputDir, SiteName: siteName}
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title    string
	SiteName string
	Content  template.HTML
	NavHTML  template.HTML
	BasePath string
}

// Generate builds the full static site. Returns the number of pages.
func (g *Generator) Generate() (int, error) {
	mdPaths, err := collectMarkdown(g.DocsDir)
	if err != nil {
		return 0, err
	}
	if len(mdPaths) == 0 {
		return 0, fmt.Errorf("no markdown files found in %s", g.DocsDir)
	}

	// Page titles from H1 headings, for the sidebar.
	titles := make(map[string]string, len(mdPaths))
	for _, rel := range mdPaths {
		content, err := os.ReadFile(filepath.Join(g.DocsDir, filepath.FromSlash(rel)))
		if err == nil {
			titles[rel] = extractTitle(string(content), rel)
		}
	}

	nav := BuildNav(mdPaths, titles)

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	entries, err := BuildSearchIndex(g.DocsDir)
	if err != nil {
		return 0, fmt.Errorf("building search index: %w", err)
	}
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Catalog pages carry the raw preview button/script block.
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	for _, rel := range mdPaths {
		if err := g.renderPage(md, tmpl, nav, rel, titles[rel]); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", rel, err)
		}
	}

	return len(mdPaths), nil
}

// renderPage converts one markdown file into an HTML page.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, nav *NavNode, rel, title string) error {
	src, err := os.ReadFile(filepath.Join(g.DocsDir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := md.Convert(src, &body); err != nil {
		return err
	}

	basePath := strings.Repeat("../", strings.Count(rel, "/"))
	data := pageData{
		Title:    title,
		SiteName: g.SiteName,
		Content:  template.HTML(body.String()),
		NavHTML:  template.HTML(nav.ToHTML(rel, basePath)),
		BasePath: basePath,
	}

	outPath := filepath.Join(g.OutputDir, strings.TrimSuffix(filepath.FromSlash(rel), ".md")+".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

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

// collectMarkdown returns the relative paths of all .md files under dir.
func collectMarkdown(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking docs dir: %w", err)
	}
	return paths, nil
}

// extractTitle returns the first H1 heading, falling back to the file name.
func extractTitle(content, rel string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(filepath.Base(rel), ".md")
}
