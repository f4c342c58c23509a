// Package crawl orchestrates documentation crawling: it drains a prioritized
// URL frontier, fetches and segments each page, and streams the surviving
// sections into the search index.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ShawnKyzer/docsearch"
	"github.com/google/uuid"
)

// Frontier configuration.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// DefaultMaxPages limits the number of pages processed to prevent
	// runaway crawls on large sites.
	DefaultMaxPages = 1000
)

// Crawler coordinates a documentation crawl run from seed URLs to indexed
// section documents. Pages are processed sequentially: each page failure
// costs only that page.
type Crawler struct {
	Fetcher   docsearch.Fetcher
	Extractor docsearch.PageExtractor
	Indexer   *Indexer

	// Sitemaps, when set, supplements the frontier with sitemap-discovered
	// URLs at low priority.
	Sitemaps docsearch.SitemapService

	// RateLimiter paces requests per domain. Optional.
	RateLimiter docsearch.DomainLimiter

	// FollowLinks enables queueing of navigation-discovered pages within
	// the seed's host and path prefix.
	FollowLinks bool

	// Version is stamped on every produced document.
	Version string

	// MaxPages caps pages processed per run. Zero means DefaultMaxPages.
	MaxPages int

	// RetryDelays override the fetch backoff. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Result holds the outcome of a crawl run.
type Result struct {
	RunID    string
	Pages    int
	Failed   int
	Sections int
	Indexed  int
	Rejected int
	Bytes    int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type     ProgressType
	URL      string
	Sections int
	Error    error
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types, in lifecycle order.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls the documentation site rooted at the seed URLs and indexes the
// extracted sections. The progress callback, if provided, receives events as
// the crawl proceeds.
//
// The crawl scope is the host and path prefix of the first seed URL:
// navigation links outside it are ignored.
func (c *Crawler) Run(ctx context.Context, seeds []string, filter *docsearch.URLFilter, progress ProgressFunc) (*Result, error) {
	if len(seeds) == 0 {
		return nil, docsearch.Errorf(docsearch.EINVALID, "at least one seed URL required")
	}

	scope, err := url.Parse(seeds[0])
	if err != nil {
		return nil, fmt.Errorf("invalid seed URL %q: %w", seeds[0], err)
	}

	result := &Result{RunID: uuid.New().String()}
	logger := c.log().With("run_id", result.RunID)
	logger.Info("crawl started", "seed", seeds[0], "version", c.Version)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	for _, seed := range seeds {
		frontier.Push(docsearch.DiscoveredLink{
			URL:      seed,
			Priority: docsearch.PrioritySeed,
			Source:   "seed",
		})
	}

	if c.Sitemaps != nil {
		c.seedFromSitemap(ctx, frontier, scope, filter, logger)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seeds[0]})
	}

	// Content fingerprints carry across pages so repeated boilerplate is
	// indexed once per run.
	seen := docsearch.NewFingerprintSet()
	scrapedAt := time.Now().UTC()

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	for result.Pages+result.Failed < maxPages {
		link, ok := frontier.Pop()
		if !ok {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if c.RateLimiter != nil {
			host := scope.Host
			if u, err := url.Parse(link.URL); err == nil {
				host = u.Host
			}
			if err := c.RateLimiter.Wait(ctx, host); err != nil {
				break // context canceled
			}
		}

		sections, err := c.processPage(ctx, link, frontier, scope, filter, seen, scrapedAt, result)
		if err != nil {
			result.Failed++
			logger.Warn("page failed", "url", link.URL, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: link.URL, Error: err})
			}
			continue
		}

		result.Pages++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, URL: link.URL, Sections: sections})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	logger.Info("crawl finished",
		"pages", result.Pages,
		"failed", result.Failed,
		"sections", result.Sections,
		"indexed", result.Indexed,
		"rejected", result.Rejected,
	)

	return result, nil
}

// processPage runs the pipeline for one page: fetch, extract, filter, build
// documents, and index. It returns the number of sections indexed from the
// page.
func (c *Crawler) processPage(ctx context.Context, link docsearch.DiscoveredLink, frontier *Frontier, scope *url.URL, filter *docsearch.URLFilter, seen *docsearch.FingerprintSet, scrapedAt time.Time, result *Result) (int, error) {
	html, err := FetchWithRetry(ctx, link.URL, c.Fetcher.Fetch, c.RetryDelays)
	if err != nil {
		return 0, err
	}

	extract, err := c.Extractor.ExtractPage(html, link.URL)
	if err != nil {
		return 0, err
	}

	if c.FollowLinks {
		c.queueNavigation(frontier, extract.Navigation, link.URL, scope, filter)
	}

	kept := docsearch.FilterCandidates(extract.Candidates, seen)
	result.Sections += len(kept)

	docs := make([]*docsearch.SectionDocument, 0, len(kept))
	for i := range kept {
		doc := kept[i].Document(link.URL, c.Version, scrapedAt)
		result.Bytes += len(doc.Content)
		docs = append(docs, doc)
	}

	bulk, err := c.Indexer.Write(ctx, docs)
	if err != nil {
		// The page was fetched and segmented fine; losing the batch is an
		// indexing failure, not a page failure.
		result.Rejected += len(docs)
		c.log().Warn("batch not indexed", "url", link.URL, "err", err)
		return 0, nil
	}

	result.Indexed += bulk.Indexed
	result.Rejected += len(bulk.Failed)
	return bulk.Indexed, nil
}

// queueNavigation pushes in-scope navigation links onto the frontier.
// Links whose titles look like version badges are skipped.
func (c *Crawler) queueNavigation(frontier *Frontier, entries []docsearch.NavigationEntry, pageURL string, scope *url.URL, filter *docsearch.URLFilter) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.Href == "" || strings.HasPrefix(entry.Href, "#") {
			continue
		}
		if docsearch.IsVersionNoise(entry.Title) {
			continue
		}

		ref, err := url.Parse(entry.Href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		if resolved.Host != scope.Host {
			continue
		}
		if !strings.HasPrefix(resolved.Path, scope.Path) {
			continue
		}
		if filter != nil && !filter.Match(resolved.String()) {
			continue
		}

		frontier.Push(docsearch.DiscoveredLink{
			URL:      resolved.String(),
			Priority: docsearch.PriorityNavigation,
			Text:     entry.Title,
			Source:   "nav",
		})
	}
}

// seedFromSitemap merges sitemap-discovered URLs into the frontier at low
// priority. Sitemap failures are logged and ignored: the sitemap is a bonus
// source, not a requirement.
func (c *Crawler) seedFromSitemap(ctx context.Context, frontier *Frontier, scope *url.URL, filter *docsearch.URLFilter, logger *slog.Logger) {
	urls, err := c.Sitemaps.DiscoverURLs(ctx, scope.String(), filter)
	if err != nil {
		logger.Warn("sitemap discovery failed", "err", err)
		return
	}

	for _, u := range urls {
		frontier.Push(docsearch.DiscoveredLink{
			URL:      u,
			Priority: docsearch.PrioritySitemap,
			Source:   "sitemap",
		})
	}
	logger.Info("sitemap discovered", "urls", len(urls))
}

func (c *Crawler) log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
