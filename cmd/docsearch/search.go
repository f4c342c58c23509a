package main

import (
	"fmt"
	"strings"

	"github.com/ShawnKyzer/docsearch"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Index.Search(deps.Ctx, docsearch.SearchQuery{
		Text:    c.Query,
		Limit:   c.Limit,
		Section: c.Section,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. %s  [%s]\n", i+1, r.Title, r.Section)
		fmt.Fprintf(deps.Stdout, "   %s\n", r.URL)
		if snippet := plainSnippet(r.Snippet); snippet != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", snippet)
		}
	}

	return nil
}

// plainSnippet strips the highlight markers used by MCP clients for terminal
// output.
func plainSnippet(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}
