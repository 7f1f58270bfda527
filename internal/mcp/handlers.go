package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rlhub/datacat/internal/catalog"
)

// handleListDatasets lists every dataset with its variants.
func (s *Server) handleListDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasets, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing datasets failed: %v", err)), nil
	}
	if len(datasets) == 0 {
		return mcp.NewToolResultText("The catalog is empty. Run `datacat generate` to load catalog files."), nil
	}
	return mcp.NewToolResultText(formatDatasetList(datasets)), nil
}

// handleGetDataset returns one dataset's full detail.
func (s *Server) handleGetDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: dataset"), nil
	}

	d, err := s.store.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting dataset failed: %v", err)), nil
	}
	if d == nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset %q not found", name)), nil
	}
	return mcp.NewToolResultText(formatDataset(d)), nil
}

// handleGetSchema returns the schema table of one variant.
func (s *Server) handleGetSchema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: dataset"), nil
	}
	variantName, err := request.RequireString("variant")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: variant"), nil
	}

	d, err := s.store.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting dataset failed: %v", err)), nil
	}
	if d == nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset %q not found", name)), nil
	}
	v := d.Variant(variantName)
	if v == nil {
		return mcp.NewToolResultError(fmt.Sprintf("variant %q not found in %s", variantName, name)), nil
	}
	return mcp.NewToolResultText(formatSchema(d.Name, v)), nil
}

// handleGetCitation returns the BibTeX citation of a dataset.
func (s *Server) handleGetCitation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("dataset")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: dataset"), nil
	}

	d, err := s.store.Get(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("getting dataset failed: %v", err)), nil
	}
	if d == nil {
		return mcp.NewToolResultError(fmt.Sprintf("dataset %q not found", name)), nil
	}
	if d.Citation == "" {
		return mcp.NewToolResultText(fmt.Sprintf("%s has no recorded citation.", name)), nil
	}
	return mcp.NewToolResultText(d.Citation), nil
}

func formatDatasetList(datasets []catalog.Dataset) string {
	var b strings.Builder
	for i := range datasets {
		d := &datasets[i]
		fmt.Fprintf(&b, "%s — %s\n", d.Name, d.Description)
		for j := range d.Variants {
			fmt.Fprintf(&b, "  - %s\n", d.Variants[j].Name)
		}
	}
	return b.String()
}

func formatDataset(d *catalog.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", d.Name, d.Description)
	if d.Homepage != "" {
		fmt.Fprintf(&b, "Homepage: %s\n", d.Homepage)
	}
	b.WriteString("\nVariants:\n")
	for i := range d.Variants {
		v := &d.Variants[i]
		fmt.Fprintf(&b, "- %s (version %s, download %s, dataset %s)\n",
			v.Name, v.Version, sizeOrUnknown(v.DownloadSize), sizeOrUnknown(v.DatasetSize))
		for _, split := range v.Splits {
			fmt.Fprintf(&b, "    %s: %s examples in %d shards\n",
				split.Name, humanize.Comma(split.NumExamples), split.NumShards)
		}
	}
	return b.String()
}

func formatSchema(dataset string, v *catalog.Variant) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Feature schema of %s/%s:\n\n", dataset, v.Name)
	fmt.Fprintf(&b, "%-40s %-14s %s\n", "Feature", "Shape", "Dtype")
	for _, row := range v.Features.Flatten() {
		fmt.Fprintf(&b, "%-40s %-14s %s\n", row.Path, row.Shape, row.DType)
	}
	return b.String()
}

func sizeOrUnknown(n int64) string {
	if n <= 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(n))
}
