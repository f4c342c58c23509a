package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShawnKyzer/docsearch"
)

// Ensure LoggingIndex implements docsearch.Index.
var _ docsearch.Index = (*LoggingIndex)(nil)

// LoggingIndex wraps an Index with debug logging on the write and query
// paths. Lifecycle operations are logged too: index creation and drops are
// rare enough that each one is worth a line.
type LoggingIndex struct {
	next   docsearch.Index
	logger *slog.Logger
}

// NewLoggingIndex creates a new LoggingIndex.
func NewLoggingIndex(next docsearch.Index, logger *slog.Logger) *LoggingIndex {
	return &LoggingIndex{next: next, logger: logger}
}

// Exists delegates to the wrapped index.
func (i *LoggingIndex) Exists(ctx context.Context) (bool, error) {
	return i.next.Exists(ctx)
}

// Create logs index creation and delegates.
func (i *LoggingIndex) Create(ctx context.Context) (err error) {
	defer func() {
		i.logger.Info("index created", "err", err)
	}()
	return i.next.Create(ctx)
}

// Drop logs the drop and delegates.
func (i *LoggingIndex) Drop(ctx context.Context) (err error) {
	defer func() {
		i.logger.Info("index dropped", "err", err)
	}()
	return i.next.Drop(ctx)
}

// BulkUpsert logs batch size, outcome counts and duration, and delegates.
func (i *LoggingIndex) BulkUpsert(ctx context.Context, docs []*docsearch.SectionDocument) (result *docsearch.BulkResult, err error) {
	defer func(begin time.Time) {
		indexed, failed := 0, 0
		if result != nil {
			indexed = result.Indexed
			failed = len(result.Failed)
		}
		i.logger.Info("bulk upsert",
			"docs", len(docs),
			"indexed", indexed,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.BulkUpsert(ctx, docs)
}

// Search logs the query and hit count, and delegates.
func (i *LoggingIndex) Search(ctx context.Context, q docsearch.SearchQuery) (results []*docsearch.SearchResult, err error) {
	defer func(begin time.Time) {
		i.logger.Info("search",
			"query", q.Text,
			"section", q.Section,
			"hits", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Search(ctx, q)
}

// Overview delegates to the wrapped index.
func (i *LoggingIndex) Overview(ctx context.Context) (*docsearch.Overview, error) {
	return i.next.Overview(ctx)
}

// Ping delegates to the wrapped index.
func (i *LoggingIndex) Ping(ctx context.Context) error {
	return i.next.Ping(ctx)
}
