package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listDatasetsTool defines the list_datasets MCP tool.
var listDatasetsTool = mcp.NewTool("list_datasets",
	mcp.WithDescription("List all datasets in the catalog with their variants."),
)

// getDatasetTool defines the get_dataset MCP tool.
var getDatasetTool = mcp.NewTool("get_dataset",
	mcp.WithDescription("Get a dataset's description, homepage, variants, splits, and sizes."),
	mcp.WithString("dataset",
		mcp.Required(),
		mcp.Description("Dataset name, e.g. d4rl_adroit_door"),
	),
)

// getSchemaTool defines the get_schema MCP tool.
var getSchemaTool = mcp.NewTool("get_schema",
	mcp.WithDescription("Get the feature schema of a dataset variant as a path/shape/dtype table."),
	mcp.WithString("dataset",
		mcp.Required(),
		mcp.Description("Dataset name"),
	),
	mcp.WithString("variant",
		mcp.Required(),
		mcp.Description("Variant name, e.g. human-v0"),
	),
)

// getCitationTool defines the get_citation MCP tool.
var getCitationTool = mcp.NewTool("get_citation",
	mcp.WithDescription("Get the BibTeX citation for a dataset."),
	mcp.WithString("dataset",
		mcp.Required(),
		mcp.Description("Dataset name"),
	),
)
