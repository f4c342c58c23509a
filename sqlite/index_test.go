package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ShawnKyzer/docsearch"
	"github.com/ShawnKyzer/docsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenIndex returns a created index backed by an in-memory database.
func mustOpenIndex(t *testing.T) *sqlite.Index {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })

	idx := sqlite.NewIndex(db, "test-docs")
	require.NoError(t, idx.Create(context.Background()))
	return idx
}

func testDoc(url, title, content string) *docsearch.SectionDocument {
	return &docsearch.SectionDocument{
		URL:        url,
		Title:      title,
		Content:    content,
		Section:    "user-guide",
		Subsection: "concepts",
		ScrapedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Version:    "1.1.x",
	}
}

func TestIndex_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("exists is false before create", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		idx := sqlite.NewIndex(db, "test-docs")
		exists, err := idx.Exists(context.Background())
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("exists is true after create", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		exists, err := idx.Exists(context.Background())
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("creating existing index is a conflict", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		err := idx.Create(context.Background())
		require.Error(t, err)
		assert.Equal(t, docsearch.ECONFLICT, docsearch.ErrorCode(err))
	})

	t.Run("drop removes index and documents", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		_, err := idx.BulkUpsert(ctx, []*docsearch.SectionDocument{
			testDoc("https://docs.example.com/a#intro", "Intro", "introductory content"),
		})
		require.NoError(t, err)

		require.NoError(t, idx.Drop(ctx))

		exists, err := idx.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("dropping missing index is not an error", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		idx := sqlite.NewIndex(db, "never-created")
		require.NoError(t, idx.Drop(context.Background()))
	})

	t.Run("drop then create yields empty index", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		_, err := idx.BulkUpsert(ctx, []*docsearch.SectionDocument{
			testDoc("https://docs.example.com/a#intro", "Intro", "introductory content"),
		})
		require.NoError(t, err)

		require.NoError(t, idx.Drop(ctx))
		require.NoError(t, idx.Create(ctx))

		ov, err := idx.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, ov.TotalDocuments)
	})
}

func TestIndex_BulkUpsert(t *testing.T) {
	t.Parallel()

	t.Run("indexes valid documents", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		result, err := idx.BulkUpsert(ctx, []*docsearch.SectionDocument{
			testDoc("https://docs.example.com/a#one", "One", "first section content"),
			testDoc("https://docs.example.com/a#two", "Two", "second section content"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Indexed)
		assert.Empty(t, result.Failed)
	})

	t.Run("reindexing same URLs does not duplicate", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		docs := []*docsearch.SectionDocument{
			testDoc("https://docs.example.com/a#one", "One", "first section content"),
			testDoc("https://docs.example.com/a#two", "Two", "second section content"),
		}

		_, err := idx.BulkUpsert(ctx, docs)
		require.NoError(t, err)
		_, err = idx.BulkUpsert(ctx, docs)
		require.NoError(t, err)

		ov, err := idx.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, ov.TotalDocuments)
	})

	t.Run("reindexing replaces document content", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		const url = "https://docs.example.com/a#one"

		_, err := idx.BulkUpsert(ctx, []*docsearch.SectionDocument{
			testDoc(url, "One", "original wording about tokamaks"),
		})
		require.NoError(t, err)

		_, err = idx.BulkUpsert(ctx, []*docsearch.SectionDocument{
			testDoc(url, "One", "revised wording about stellarators"),
		})
		require.NoError(t, err)

		// Old content is no longer findable, new content is.
		results, err := idx.Search(ctx, docsearch.SearchQuery{Text: "tokamaks"})
		require.NoError(t, err)
		assert.Empty(t, results)

		results, err = idx.Search(ctx, docsearch.SearchQuery{Text: "stellarators"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, url, results[0].URL)
	})

	t.Run("invalid document fails alone", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		docs := make([]*docsearch.SectionDocument, 0, 6)
		for i := 0; i < 5; i++ {
			docs = append(docs, testDoc(
				fmt.Sprintf("https://docs.example.com/a#s%d", i),
				fmt.Sprintf("Section %d", i),
				fmt.Sprintf("content for section %d", i),
			))
		}
		docs = append(docs, testDoc("", "No URL", "unaddressable content"))

		result, err := idx.BulkUpsert(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 5, result.Indexed)
		require.Len(t, result.Failed, 1)
		assert.Equal(t, 5, result.Failed[0].Position)
		assert.NotEmpty(t, result.Failed[0].Reason)

		ov, err := idx.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, ov.TotalDocuments)
	})

	t.Run("handles batches larger than one chunk", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		var docs []*docsearch.SectionDocument
		for i := 0; i < 120; i++ {
			docs = append(docs, testDoc(
				fmt.Sprintf("https://docs.example.com/p%d#body", i),
				fmt.Sprintf("Page %d", i),
				fmt.Sprintf("content for page %d", i),
			))
		}

		result, err := idx.BulkUpsert(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 120, result.Indexed)

		ov, err := idx.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 120, ov.TotalDocuments)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		result, err := idx.BulkUpsert(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Indexed)
		assert.Empty(t, result.Failed)
	})
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.Index {
		t.Helper()
		idx := mustOpenIndex(t)

		agents := testDoc("https://docs.example.com/agents#overview", "Agents Overview", "how agents process prompts and call tools")
		agents.Section = "concepts"
		agents.Subsection = "agents"

		tools := testDoc("https://docs.example.com/tools#custom", "Custom Tools", "registering custom tools with the decorator")
		tools.Section = "concepts"
		tools.Subsection = "tools"
		tools.Headers = "Tool Registration | Tool Schemas"
		tools.CodeBlocks = "@tool def weather(city: str) -> str: ..."

		deploy := testDoc("https://docs.example.com/deploy#lambda", "Deploying to Lambda", "packaging agents for serverless deployment")
		deploy.Section = "deploy"
		deploy.Subsection = "operating-agents-in-production"

		_, err := idx.BulkUpsert(context.Background(), []*docsearch.SectionDocument{agents, tools, deploy})
		require.NoError(t, err)
		return idx
	}

	t.Run("finds documents by content terms", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "serverless deployment"})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "https://docs.example.com/deploy#lambda", results[0].URL)
	})

	t.Run("title match outranks content match", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		// "tools" appears in the title of one document and only in the body
		// of another.
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "tools"})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "Custom Tools", results[0].Title)
	})

	t.Run("returns highlighted snippet", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "decorator"})
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Contains(t, results[0].Snippet, "<mark>decorator</mark>")
	})

	t.Run("section filter restricts results", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "agents", Section: "deploy"})
		require.NoError(t, err)
		for _, r := range results {
			assert.Equal(t, "deploy", r.Section)
		}
		require.NotEmpty(t, results)
	})

	t.Run("limit caps result count", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "agents tools deployment", Limit: 1})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("any term can match", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		// Only one of the two terms exists in the corpus.
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "zeppelin serverless"})
		require.NoError(t, err)
		assert.NotEmpty(t, results)
	})

	t.Run("query syntax is treated as plain text", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)

		// Unbalanced quotes and operators must not produce a syntax error.
		_, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: `"agents AND (tools`})
		require.NoError(t, err)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		_, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "   "})
		require.Error(t, err)
		assert.Equal(t, docsearch.EINVALID, docsearch.ErrorCode(err))
	})

	t.Run("no matches returns empty result", func(t *testing.T) {
		t.Parallel()

		idx := seed(t)
		results, err := idx.Search(context.Background(), docsearch.SearchQuery{Text: "xyzzy"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestIndex_Overview(t *testing.T) {
	t.Parallel()

	t.Run("buckets counts by section and subsection", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ctx := context.Background()

		a := testDoc("https://docs.example.com/a#s", "A", "content a")
		a.Section = "concepts"
		a.Subsection = "agents"
		b := testDoc("https://docs.example.com/b#s", "B", "content b")
		b.Section = "concepts"
		b.Subsection = "tools"
		c := testDoc("https://docs.example.com/c#s", "C", "content c")
		c.Section = "deploy"
		c.Subsection = "operating-agents-in-production"

		_, err := idx.BulkUpsert(ctx, []*docsearch.SectionDocument{a, b, c})
		require.NoError(t, err)

		ov, err := idx.Overview(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, ov.TotalDocuments)
		require.Len(t, ov.Sections, 2)
		assert.Equal(t, docsearch.SectionCount{Value: "concepts", Count: 2}, ov.Sections[0])
		assert.Equal(t, docsearch.SectionCount{Value: "deploy", Count: 1}, ov.Sections[1])
		assert.Len(t, ov.Subsections, 3)
	})

	t.Run("empty index has zero counts", func(t *testing.T) {
		t.Parallel()

		idx := mustOpenIndex(t)
		ov, err := idx.Overview(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, ov.TotalDocuments)
		assert.Empty(t, ov.Sections)
		assert.Empty(t, ov.Subsections)
	})
}
