package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for docsearch resources.
const uriScheme = "docsearch://"

// guideText tells an assistant how to use the tools effectively.
const guideText = `# Documentation Search

Two tools are available:

- **search_documentation** - full-text search over indexed documentation
  sections. Pass a plain-language query; optionally restrict with
  ` + "`section`" + ` (see get_documentation_sections for values) and cap
  result count with ` + "`max_results`" + `.
- **get_documentation_sections** - lists available sections and subsections
  with document counts. Call it first when you need to scope a search.

Each search hit includes the section title, a direct URL with anchor, a
highlighted snippet, related sub-headers, and code blocks from the section.
Results are ranked by relevance with title matches weighted highest.
`

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "guide",
		Name:        "guide",
		Description: "How to query the documentation index",
		MIMEType:    "text/markdown",
	}, s.handleGuideResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "health",
		Name:        "health",
		Description: "Index connectivity and document counts",
		MIMEType:    "application/json",
	}, s.handleHealthResource)
}

// handleGuideResource returns the static usage guide.
func (s *Server) handleGuideResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     guideText,
		}},
	}, nil
}

// handleHealthResource reports index reachability and document counts.
func (s *Server) handleHealthResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type health struct {
		Status         string `json:"status"`
		TotalDocuments int    `json:"total_documents"`
		Error          string `json:"error,omitempty"`
	}

	h := health{Status: "ok"}
	if err := s.index.Ping(ctx); err != nil {
		h.Status = "unavailable"
		h.Error = err.Error()
	} else if overview, err := s.index.Overview(ctx); err != nil {
		h.Status = "degraded"
		h.Error = err.Error()
	} else {
		h.TotalDocuments = overview.TotalDocuments
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling health: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
