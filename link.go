package docsearch

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityIgnore     LinkPriority = 0
	PrioritySitemap    LinkPriority = 10
	PriorityNavigation LinkPriority = 100
	PrioritySeed       LinkPriority = 200
)

// DiscoveredLink represents a crawlable page URL with priority metadata.
// Text carries the navigation title the link was discovered under, when any.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "seed", "nav", "sitemap"
}
