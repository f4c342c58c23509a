package mock

import (
	"context"

	"github.com/ShawnKyzer/docsearch"
)

var _ docsearch.Index = (*Index)(nil)

// Index is a mock implementation of docsearch.Index.
type Index struct {
	ExistsFn     func(ctx context.Context) (bool, error)
	CreateFn     func(ctx context.Context) error
	DropFn       func(ctx context.Context) error
	BulkUpsertFn func(ctx context.Context, docs []*docsearch.SectionDocument) (*docsearch.BulkResult, error)
	SearchFn     func(ctx context.Context, q docsearch.SearchQuery) ([]*docsearch.SearchResult, error)
	OverviewFn   func(ctx context.Context) (*docsearch.Overview, error)
	PingFn       func(ctx context.Context) error
}

func (i *Index) Exists(ctx context.Context) (bool, error) {
	return i.ExistsFn(ctx)
}

func (i *Index) Create(ctx context.Context) error {
	return i.CreateFn(ctx)
}

func (i *Index) Drop(ctx context.Context) error {
	return i.DropFn(ctx)
}

func (i *Index) BulkUpsert(ctx context.Context, docs []*docsearch.SectionDocument) (*docsearch.BulkResult, error) {
	return i.BulkUpsertFn(ctx, docs)
}

func (i *Index) Search(ctx context.Context, q docsearch.SearchQuery) ([]*docsearch.SearchResult, error) {
	return i.SearchFn(ctx, q)
}

func (i *Index) Overview(ctx context.Context) (*docsearch.Overview, error) {
	return i.OverviewFn(ctx)
}

func (i *Index) Ping(ctx context.Context) error {
	return i.PingFn(ctx)
}
