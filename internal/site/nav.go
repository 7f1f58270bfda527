package site

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// NavNode is one node of the sidebar navigation: a dataset directory or
// a variant page.
type NavNode struct {
	Name     string
	Title    string
	Path     string // relative markdown path for pages, directory path for dirs
	IsDir    bool
	Children []*NavNode
}

// BuildNav constructs the navigation tree from the markdown page paths.
// titles maps relative path -> display title from the page H1.
func BuildNav(paths []string, titles map[string]string) *NavNode {
	root := &NavNode{Name: "catalog", IsDir: true}

	for _, p := range paths {
		p = filepath.ToSlash(p)
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			var child *NavNode
			for _, c := range current.Children {
				if c.Name == part {
					child = c
					break
				}
			}
			if child == nil {
				child = &NavNode{Name: part, IsDir: !isLast}
				if isLast {
					child.Path = p
					if titles != nil {
						child.Title = titles[p]
					}
				} else {
					child.Path = strings.Join(parts[:i+1], "/")
					child.Title = part
				}
				current.Children = append(current.Children, child)
			}
			current = child
		}
	}

	sortNav(root)
	return root
}

// sortNav orders children: directories first, then files, by name.
// Variant pages within a dataset keep name order, which matches the
// version suffix ordering of catalog configs.
func sortNav(node *NavNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortNav(child)
		}
	}
}

// ToHTML renders the navigation as nested lists for the sidebar.
// basePath is the prefix back to the site root for the current page.
func (n *NavNode) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	homeActive := ""
	if activePath == "index.md" {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="home"><a href="%sindex.html"%s>All datasets</a></li></ul>`+"\n", basePath, homeActive)
	renderNav(&b, n, activePath, basePath)
	return b.String()
}

func renderNav(b *strings.Builder, node *NavNode, activePath, basePath string) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			open := ""
			if strings.HasPrefix(activePath, child.Path+"/") {
				open = " open"
			}
			fmt.Fprintf(b, `<li class="dataset"><details%s><summary>%s</summary>`+"\n", open, child.Title)
			renderNav(b, child, activePath, basePath)
			b.WriteString("</details></li>\n")
		} else {
			if child.Path == "index.md" {
				continue
			}
			label := child.Title
			if label == "" {
				label = strings.TrimSuffix(child.Name, ".md")
			}
			active := ""
			if child.Path == activePath {
				active = ` class="active"`
			}
			href := basePath + strings.TrimSuffix(child.Path, ".md") + ".html"
			fmt.Fprintf(b, `<li class="page"><a href="%s"%s>%s</a></li>`+"\n", href, active, label)
		}
	}
	b.WriteString("</ul>\n")
}
