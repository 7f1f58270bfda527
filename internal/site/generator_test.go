package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeDocs creates a small docs tree mirroring generated catalog pages.
func writeDocs(t *testing.T) string {
	t.Helper()
	docsDir := t.TempDir()

	pages := map[string]string{
		"index.md": "# Dataset Catalog\n\nAll datasets.\n",
		"d4rl_adroit_door/index.md": "# d4rl_adroit_door\n\nAdroit door-opening task.\n",
		"d4rl_adroit_door/human-v0.md": "# d4rl_adroit_door/human-v0\n\n" +
			"Human demonstrations.\n\n| Feature | Shape | Dtype |\n|---|---|---|\n" +
			"| `steps/action` | (28,) | float32 |\n\n" +
			"<script>\nfunction loadExamples(btn) {}\n</script>\n",
		"d4rl_adroit_door/cloned-v0.md": "# d4rl_adroit_door/cloned-v0\n\nBehavior-cloned data.\n",
	}
	for rel, content := range pages {
		path := filepath.Join(docsDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return docsDir
}

func TestGenerate(t *testing.T) {
	docsDir := writeDocs(t)
	outDir := t.TempDir()

	g := NewGenerator(docsDir, outDir, "RL Datasets")
	pages, err := g.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if pages != 4 {
		t.Errorf("pages = %d, want 4", pages)
	}

	for _, f := range []string{
		"index.html",
		"style.css",
		"script.js",
		"search-index.json",
		"d4rl_adroit_door/index.html",
		"d4rl_adroit_door/human-v0.html",
	} {
		if _, err := os.Stat(filepath.Join(outDir, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing output file %s: %v", f, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(outDir, "d4rl_adroit_door", "human-v0.html"))
	if err != nil {
		t.Fatal(err)
	}
	page := string(content)

	if !strings.Contains(page, "<title>d4rl_adroit_door/human-v0 — RL Datasets</title>") {
		t.Error("page title missing")
	}
	if !strings.Contains(page, `href="../style.css"`) {
		t.Error("nested page should use ../ base path")
	}
	// Markdown table rendered to HTML.
	if !strings.Contains(page, "<td><code>steps/action</code></td>") {
		t.Error("schema table not rendered")
	}
	// Raw script block passes through goldmark unsafe rendering.
	if !strings.Contains(page, "function loadExamples(btn)") {
		t.Error("preview script stripped from page")
	}
	// Sidebar links to the sibling variant.
	if !strings.Contains(page, `href="../d4rl_adroit_door/cloned-v0.html"`) {
		t.Error("sidebar missing sibling variant link")
	}
}

func TestGenerateEmptyDocs(t *testing.T) {
	g := NewGenerator(t.TempDir(), t.TempDir(), "")
	if _, err := g.Generate(); err == nil {
		t.Error("Generate() on empty docs dir should error")
	}
}

func TestBuildNav(t *testing.T) {
	paths := []string{
		"index.md",
		"d4rl_adroit_door/index.md",
		"d4rl_adroit_door/human-v0.md",
		"d4rl_adroit_door/cloned-v0.md",
		"d4rl_adroit_hammer/human-v0.md",
	}
	titles := map[string]string{
		"d4rl_adroit_door/human-v0.md": "d4rl_adroit_door/human-v0",
	}

	nav := BuildNav(paths, titles)

	// Two dataset dirs plus the root index page.
	if len(nav.Children) != 3 {
		t.Fatalf("root children = %d, want 3", len(nav.Children))
	}
	if nav.Children[0].Name != "d4rl_adroit_door" || !nav.Children[0].IsDir {
		t.Errorf("first child = %q, want d4rl_adroit_door dir", nav.Children[0].Name)
	}
	if nav.Children[2].Name != "index.md" || nav.Children[2].IsDir {
		t.Errorf("last child = %q, want index.md page", nav.Children[2].Name)
	}

	door := nav.Children[0]
	if len(door.Children) != 3 {
		t.Fatalf("door children = %d, want 3", len(door.Children))
	}
	// Name order within a dataset.
	if door.Children[0].Name != "cloned-v0.md" || door.Children[1].Name != "human-v0.md" {
		t.Errorf("variant order = %s, %s", door.Children[0].Name, door.Children[1].Name)
	}

	html := nav.ToHTML("d4rl_adroit_door/human-v0.md", "../")
	if !strings.Contains(html, `<details open>`) {
		t.Error("active dataset should be expanded")
	}
	if !strings.Contains(html, `class="active"`) {
		t.Error("active page should be marked")
	}
	if !strings.Contains(html, "d4rl_adroit_door/human-v0</a>") {
		t.Error("page should use its H1 title")
	}
}

func TestSearchIndex(t *testing.T) {
	docsDir := writeDocs(t)

	entries, err := BuildSearchIndex(docsDir)
	if err != nil {
		t.Fatalf("BuildSearchIndex() error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}

	var human *SearchEntry
	for i := range entries {
		if entries[i].Path == "d4rl_adroit_door/human-v0.html" {
			human = &entries[i]
		}
	}
	if human == nil {
		t.Fatal("human-v0 entry missing")
	}
	if human.Title != "d4rl_adroit_door/human-v0" {
		t.Errorf("title = %q", human.Title)
	}
	if !strings.Contains(human.Content, "Human demonstrations.") {
		t.Error("content missing page text")
	}
	if strings.Contains(human.Content, "loadExamples") {
		t.Error("script content leaked into search index")
	}

	// Round-trip through the JSON file.
	path := filepath.Join(t.TempDir(), "search-index.json")
	if err := WriteSearchIndex(entries, path); err != nil {
		t.Fatalf("WriteSearchIndex() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []SearchEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding index: %v", err)
	}
	if len(decoded) != len(entries) {
		t.Errorf("decoded %d entries, want %d", len(decoded), len(entries))
	}
}

func TestScriptCarriesReloadClient(t *testing.T) {
	docsDir := writeDocs(t)
	outDir := t.TempDir()

	g := NewGenerator(docsDir, outDir, "")
	if _, err := g.Generate(); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "script.js"))
	if err != nil {
		t.Fatalf("reading script.js: %v", err)
	}
	js := string(content)

	// Every page loads script.js, so the reload subscription reaches all
	// browsers when the site is served by datacat.
	for _, want := range []string{"/ws/reload", "location.reload()", "location.protocol"} {
		if !strings.Contains(js, want) {
			t.Errorf("script.js missing %q", want)
		}
	}
}
