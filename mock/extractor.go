package mock

import "github.com/ShawnKyzer/docsearch"

var _ docsearch.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of docsearch.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html, pageURL string) (*docsearch.PageExtract, error)
}

func (e *PageExtractor) ExtractPage(html, pageURL string) (*docsearch.PageExtract, error) {
	return e.ExtractPageFn(html, pageURL)
}
