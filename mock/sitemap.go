package mock

import (
	"context"

	"github.com/ShawnKyzer/docsearch"
)

var _ docsearch.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docsearch.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docsearch.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docsearch.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
