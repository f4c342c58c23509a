package main

import (
	"fmt"
	"regexp"

	"github.com/ShawnKyzer/docsearch"
	"github.com/ShawnKyzer/docsearch/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Compile filters to URLFilter (validates regex patterns early)
	var urlFilter *docsearch.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &docsearch.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	if err := deps.Crawler.Indexer.Setup(deps.Ctx, c.Recreate); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %s  %d sections\n", crawl.TruncateURL(event.URL, 60), event.Sections)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, c.URLs, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed), indexed %d sections (%s)\n",
		result.Pages, result.Failed, result.Indexed, crawl.FormatBytes(result.Bytes))
	if result.Rejected > 0 {
		fmt.Fprintf(deps.Stdout, "  %d sections rejected by the index\n", result.Rejected)
	}

	return nil
}
