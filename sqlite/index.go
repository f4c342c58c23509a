package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShawnKyzer/docsearch"
)

// Compile-time interface verification.
var _ docsearch.Index = (*Index)(nil)

// DefaultSearchLimit is applied when a query does not specify a limit.
const DefaultSearchLimit = 10

// chunkSize is the number of documents written per transaction during a
// bulk upsert.
const chunkSize = 50

// Relevance weights per column, mirroring the ranking boosts the search
// surface promises: title matches rank highest, then code blocks, then
// sub-headers, then body content.
const (
	weightTitle      = 5.0
	weightContent    = 2.0
	weightHeaders    = 3.0
	weightCodeBlocks = 4.0
)

// Index implements docsearch.Index on a SQLite FTS5 virtual table. Documents
// live in a base table keyed by URL; an external-content FTS5 table shadows
// the searchable columns and is kept in sync by triggers, so upserts by URL
// replace both the stored row and its index entry.
type Index struct {
	db   *DB
	name string
}

// NewIndex binds an Index to a named index within the database. The name is
// sanitized into a table identifier, so distinct names must differ in more
// than punctuation.
func NewIndex(db *DB, name string) *Index {
	return &Index{db: db, name: name}
}

// Name returns the logical index name.
func (idx *Index) Name() string {
	return idx.name
}

// table returns the sanitized base table identifier for the index name.
func (idx *Index) table() string {
	var b strings.Builder
	for _, r := range strings.ToLower(idx.name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return "idx_" + b.String()
}

// Exists reports whether the index schema has been created.
func (idx *Index) Exists(ctx context.Context) (bool, error) {
	var n int
	err := idx.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?
	`, idx.table()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check index existence: %w", err)
	}
	return n > 0, nil
}

// Create creates the index schema. Creating an index that already exists is
// a conflict.
func (idx *Index) Create(ctx context.Context) error {
	exists, err := idx.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return docsearch.Errorf(docsearch.ECONFLICT, "index %q already exists", idx.name)
	}

	t := idx.table()
	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE %[1]s (
				url TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				content TEXT NOT NULL,
				section TEXT NOT NULL,
				subsection TEXT NOT NULL,
				headers TEXT NOT NULL,
				code_blocks TEXT NOT NULL,
				scraped_at TEXT NOT NULL,
				version TEXT NOT NULL
			)`, t),
		fmt.Sprintf(`
			CREATE VIRTUAL TABLE %[1]s_fts USING fts5(
				title, content, headers, code_blocks,
				content='%[1]s', content_rowid='rowid'
			)`, t),
		fmt.Sprintf(`
			CREATE TRIGGER %[1]s_ai AFTER INSERT ON %[1]s BEGIN
				INSERT INTO %[1]s_fts (rowid, title, content, headers, code_blocks)
				VALUES (new.rowid, new.title, new.content, new.headers, new.code_blocks);
			END`, t),
		fmt.Sprintf(`
			CREATE TRIGGER %[1]s_ad AFTER DELETE ON %[1]s BEGIN
				INSERT INTO %[1]s_fts (%[1]s_fts, rowid, title, content, headers, code_blocks)
				VALUES ('delete', old.rowid, old.title, old.content, old.headers, old.code_blocks);
			END`, t),
		fmt.Sprintf(`
			CREATE TRIGGER %[1]s_au AFTER UPDATE ON %[1]s BEGIN
				INSERT INTO %[1]s_fts (%[1]s_fts, rowid, title, content, headers, code_blocks)
				VALUES ('delete', old.rowid, old.title, old.content, old.headers, old.code_blocks);
				INSERT INTO %[1]s_fts (rowid, title, content, headers, code_blocks)
				VALUES (new.rowid, new.title, new.content, new.headers, new.code_blocks);
			END`, t),
	}

	for _, stmt := range stmts {
		if _, err := idx.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index %q: %w", idx.name, err)
		}
	}
	return nil
}

// Drop deletes the index and all its documents. Dropping a missing index is
// a no-op.
func (idx *Index) Drop(ctx context.Context) error {
	t := idx.table()
	stmts := []string{
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_ai", t),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_ad", t),
		fmt.Sprintf("DROP TRIGGER IF EXISTS %s_au", t),
		fmt.Sprintf("DROP TABLE IF EXISTS %s_fts", t),
		fmt.Sprintf("DROP TABLE IF EXISTS %s", t),
	}
	for _, stmt := range stmts {
		if _, err := idx.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop index %q: %w", idx.name, err)
		}
	}
	return nil
}

// BulkUpsert writes documents keyed by URL in transactional chunks. Documents
// that fail validation are reported in the result and do not prevent the rest
// of the batch from being written.
func (idx *Index) BulkUpsert(ctx context.Context, docs []*docsearch.SectionDocument) (*docsearch.BulkResult, error) {
	result := &docsearch.BulkResult{}
	stmt := fmt.Sprintf(`
		INSERT INTO %[1]s (url, title, content, section, subsection, headers, code_blocks, scraped_at, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			section = excluded.section,
			subsection = excluded.subsection,
			headers = excluded.headers,
			code_blocks = excluded.code_blocks,
			scraped_at = excluded.scraped_at,
			version = excluded.version
	`, idx.table())

	for start := 0; start < len(docs); start += chunkSize {
		end := start + chunkSize
		if end > len(docs) {
			end = len(docs)
		}

		tx, err := idx.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}

		for i, doc := range docs[start:end] {
			pos := start + i
			if err := doc.Validate(); err != nil {
				result.Failed = append(result.Failed, docsearch.DocumentFailure{
					URL:      doc.URL,
					Position: pos,
					Reason:   docsearch.ErrorMessage(err),
				})
				continue
			}

			_, err := tx.ExecContext(ctx, stmt,
				doc.URL, doc.Title, doc.Content, doc.Section, doc.Subsection,
				doc.Headers, doc.CodeBlocks, doc.ScrapedAt.UTC().Format(time.RFC3339), doc.Version)
			if err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to upsert document %q: %w", doc.URL, err)
			}
			result.Indexed++
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit chunk: %w", err)
		}
	}

	return result, nil
}

// matchExpression converts a free-text query into an FTS5 MATCH expression.
// Each whitespace-separated token is quoted as a string literal, so FTS5
// query syntax in user input is treated as plain text. Tokens are joined
// with OR: any matching term qualifies a document, and ranking orders the
// better matches first.
func matchExpression(text string) string {
	fields := strings.Fields(text)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+strings.ReplaceAll(f, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " OR ")
}

// Search returns ranked hits for the query, best first.
func (idx *Index) Search(ctx context.Context, q docsearch.SearchQuery) ([]*docsearch.SearchResult, error) {
	match := matchExpression(q.Text)
	if match == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "search query required")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	t := idx.table()
	var query strings.Builder
	var args []any

	fmt.Fprintf(&query, `
		SELECT d.title, d.url, snippet(%[1]s_fts, 1, '<mark>', '</mark>', '…', 32),
			d.headers, d.code_blocks, d.section, d.subsection,
			-bm25(%[1]s_fts, %[2]g, %[3]g, %[4]g, %[5]g) AS score
		FROM %[1]s_fts
		JOIN %[1]s d ON d.rowid = %[1]s_fts.rowid
		WHERE %[1]s_fts MATCH ?
	`, t, weightTitle, weightContent, weightHeaders, weightCodeBlocks)
	args = append(args, match)

	if q.Section != "" {
		query.WriteString(" AND d.section = ?")
		args = append(args, q.Section)
	}

	query.WriteString(" ORDER BY score DESC LIMIT ?")
	args = append(args, limit)

	rows, err := idx.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []*docsearch.SearchResult
	for rows.Next() {
		var r docsearch.SearchResult
		if err := rows.Scan(&r.Title, &r.URL, &r.Snippet, &r.Headers, &r.CodeBlocks,
			&r.Section, &r.Subsection, &r.Score); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}

// Overview returns the total document count plus counts bucketed by section
// and subsection, largest buckets first.
func (idx *Index) Overview(ctx context.Context) (*docsearch.Overview, error) {
	t := idx.table()
	ov := &docsearch.Overview{}

	err := idx.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t)).Scan(&ov.TotalDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}

	ov.Sections, err = idx.bucketCounts(ctx, "section")
	if err != nil {
		return nil, err
	}
	ov.Subsections, err = idx.bucketCounts(ctx, "subsection")
	if err != nil {
		return nil, err
	}

	return ov, nil
}

func (idx *Index) bucketCounts(ctx context.Context, column string) ([]docsearch.SectionCount, error) {
	rows, err := idx.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[2]s, COUNT(*) AS n
		FROM %[1]s
		GROUP BY %[2]s
		ORDER BY n DESC, %[2]s ASC
	`, idx.table(), column))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", column, err)
	}
	defer rows.Close()

	var counts []docsearch.SectionCount
	for rows.Next() {
		var c docsearch.SectionCount
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// Ping verifies connectivity to the database.
func (idx *Index) Ping(ctx context.Context) error {
	return idx.db.PingContext(ctx)
}
