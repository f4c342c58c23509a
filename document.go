package docsearch

import (
	"context"
	"time"
)

// SectionDocument is the persisted unit of documentation content. Each
// document covers one section of a source page and is addressable at
// page URL + "#" + anchor id, which doubles as the upsert key: indexing the
// same URL twice replaces rather than duplicates.
type SectionDocument struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Section    string    `json:"section"`
	Subsection string    `json:"subsection"`
	Headers    string    `json:"headers"`     // sub-headers joined with " | "
	CodeBlocks string    `json:"code_blocks"` // code blocks joined with " | "
	ScrapedAt  time.Time `json:"scraped_at"`
	Version    string    `json:"version"`
}

// Validate returns an error if the document cannot be indexed.
func (d *SectionDocument) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	return nil
}

// DocumentFailure records a single document that failed to index, with the
// engine-provided error detail. Position is the document's offset in the
// submitted batch.
type DocumentFailure struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// BulkResult reports the outcome of a bulk upsert. A partial failure is not
// an error: Indexed counts the documents written and Failed lists the rest.
type BulkResult struct {
	Indexed int               `json:"indexed"`
	Failed  []DocumentFailure `json:"failed"`
}

// SearchQuery describes a full-text query against the index.
type SearchQuery struct {
	// Text is the user's query string.
	Text string `json:"text"`

	// Limit caps the number of results. Implementations apply a default
	// when zero.
	Limit int `json:"limit,omitempty"`

	// Section, when non-empty, restricts results to an exact section value.
	Section string `json:"section,omitempty"`
}

// SearchResult is a ranked hit with an optional highlighted snippet.
type SearchResult struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Snippet    string  `json:"snippet"`
	Headers    string  `json:"headers"`
	CodeBlocks string  `json:"code_blocks"`
	Section    string  `json:"section"`
	Subsection string  `json:"subsection"`
	Score      float64 `json:"score"`
}

// SectionCount is a bucketed document count for one classification value.
type SectionCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Overview summarizes the index contents: total document count plus counts
// bucketed by section and subsection.
type Overview struct {
	TotalDocuments int            `json:"total_documents"`
	Sections       []SectionCount `json:"sections"`
	Subsections    []SectionCount `json:"subsections"`
}

// Index is the search engine collaborator. One Index value is bound to a
// named index within the engine. Implementations are not assumed safe for
// concurrent writers: bulk upserts must be serialized by the caller.
type Index interface {
	// Exists reports whether the named index has been created.
	Exists(ctx context.Context) (bool, error)

	// Create creates the index schema. Creating an existing index is an error.
	Create(ctx context.Context) error

	// Drop deletes the index and all its documents. Dropping a missing
	// index is not an error.
	Drop(ctx context.Context) error

	// BulkUpsert writes documents keyed by URL. Documents rejected by the
	// engine are reported in the result, not as an error; an error is
	// returned only when the whole batch could not be submitted.
	BulkUpsert(ctx context.Context, docs []*SectionDocument) (*BulkResult, error)

	// Search returns ranked hits for the query.
	Search(ctx context.Context, q SearchQuery) ([]*SearchResult, error)

	// Overview returns aggregate document counts.
	Overview(ctx context.Context) (*Overview, error)

	// Ping verifies connectivity to the engine.
	Ping(ctx context.Context) error
}
