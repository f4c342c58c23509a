package mcp

import (
	"context"

	"github.com/ShawnKyzer/docsearch"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultMaxResults caps search results when the caller doesn't ask for a
// specific number.
const DefaultMaxResults = 10

// SearchInput is the input schema for the search_documentation tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the search query to find documentation sections"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Section    string `json:"section,omitempty" jsonschema:"restrict results to one section, e.g. user-guide or api-reference"`
}

// SearchOutput is the output schema for the search_documentation tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search hit.
type SearchResultOutput struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Snippet        string  `json:"snippet"`
	Headers        string  `json:"headers,omitempty"`
	CodeBlocks     string  `json:"code_blocks,omitempty"`
	SectionType    string  `json:"section_type"`
	Subsection     string  `json:"subsection"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SectionsInput is the input schema for the get_documentation_sections tool.
// The tool takes no arguments.
type SectionsInput struct{}

// SectionsOutput is the output schema for the get_documentation_sections tool.
type SectionsOutput struct {
	TotalDocuments int                  `json:"total_documents"`
	Sections       []SectionCountOutput `json:"sections"`
	Subsections    []SectionCountOutput `json:"subsections"`
}

// SectionCountOutput is a bucketed document count.
type SectionCountOutput struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: "Search the indexed documentation for sections matching a query",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_documentation_sections",
		Description: "List the documentation sections available in the index with document counts",
	}, s.handleSections)
}

// handleSearch handles the search_documentation tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}

	results, err := s.index.Search(ctx, docsearch.SearchQuery{
		Text:    input.Query,
		Limit:   limit,
		Section: input.Section,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			Title:          r.Title,
			URL:            r.URL,
			Snippet:        r.Snippet,
			Headers:        r.Headers,
			CodeBlocks:     r.CodeBlocks,
			SectionType:    r.Section,
			Subsection:     r.Subsection,
			RelevanceScore: r.Score,
		}
	}

	return nil, output, nil
}

// handleSections handles the get_documentation_sections tool invocation.
func (s *Server) handleSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SectionsInput,
) (*mcp.CallToolResult, SectionsOutput, error) {
	overview, err := s.index.Overview(ctx)
	if err != nil {
		return nil, SectionsOutput{}, err
	}

	output := SectionsOutput{
		TotalDocuments: overview.TotalDocuments,
		Sections:       make([]SectionCountOutput, len(overview.Sections)),
		Subsections:    make([]SectionCountOutput, len(overview.Subsections)),
	}
	for i, c := range overview.Sections {
		output.Sections[i] = SectionCountOutput{Name: c.Value, Count: c.Count}
	}
	for i, c := range overview.Subsections {
		output.Subsections[i] = SectionCountOutput{Name: c.Value, Count: c.Count}
	}

	return nil, output, nil
}
