package main

import (
	"fmt"

	"github.com/ShawnKyzer/docsearch"
)

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	overview, err := deps.Index.Overview(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	if overview.TotalDocuments == 0 {
		fmt.Fprintln(deps.Stdout, "Index is empty. Use 'docsearch crawl' to populate it.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d documents\n", overview.TotalDocuments)

	fmt.Fprintln(deps.Stdout, "Sections:")
	for _, s := range overview.Sections {
		fmt.Fprintf(deps.Stdout, "  %-24s %d\n", s.Value, s.Count)
	}

	if len(overview.Subsections) > 0 {
		fmt.Fprintln(deps.Stdout, "Subsections:")
		for _, s := range overview.Subsections {
			fmt.Fprintf(deps.Stdout, "  %-24s %d\n", s.Value, s.Count)
		}
	}

	return nil
}
