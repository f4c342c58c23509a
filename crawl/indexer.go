package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShawnKyzer/docsearch"
)

// Indexer prepares the search index for a crawl run and writes section
// documents to it. Indexing errors are contained: a failed batch costs only
// that batch, never the crawl.
type Indexer struct {
	Index docsearch.Index

	// Reconnect re-establishes the engine session when a connectivity probe
	// fails. Optional; nil means probes are retried on the same session.
	Reconnect func() error

	// SetupDelays are the backoff delays for connectivity probes.
	// Nil means IndexSetupDelays.
	SetupDelays []time.Duration

	Logger *slog.Logger
}

// Setup verifies the index is reachable and its schema exists, creating it
// if missing. With recreate, an existing index is dropped first, so the run
// starts from an empty index.
func (ix *Indexer) Setup(ctx context.Context, recreate bool) error {
	delays := ix.SetupDelays
	if delays == nil {
		delays = IndexSetupDelays()
	}

	err := Retry(ctx, delays, func(ctx context.Context) error {
		if err := ix.Index.Ping(ctx); err != nil {
			ix.log().Warn("index unreachable", "err", err)
			if ix.Reconnect != nil {
				if rerr := ix.Reconnect(); rerr != nil {
					return rerr
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return docsearch.Errorf(docsearch.EUNAVAILABLE, "search index unreachable: %v", err)
	}

	exists, err := ix.Index.Exists(ctx)
	if err != nil {
		return err
	}

	if recreate && exists {
		if err := ix.Index.Drop(ctx); err != nil {
			return err
		}
		exists = false
	}

	if !exists {
		if err := ix.Index.Create(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Write indexes a batch of section documents. Per-document rejections are
// logged and counted; only a whole-batch submission failure is returned as
// an error.
func (ix *Indexer) Write(ctx context.Context, docs []*docsearch.SectionDocument) (*docsearch.BulkResult, error) {
	if len(docs) == 0 {
		return &docsearch.BulkResult{}, nil
	}

	result, err := ix.Index.BulkUpsert(ctx, docs)
	if err != nil {
		return nil, err
	}

	for _, f := range result.Failed {
		ix.log().Warn("document rejected",
			"url", f.URL,
			"position", f.Position,
			"reason", f.Reason,
		)
	}

	return result, nil
}

func (ix *Indexer) log() *slog.Logger {
	if ix.Logger != nil {
		return ix.Logger
	}
	return slog.Default()
}
