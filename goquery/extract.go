// Package goquery implements the page extraction pipeline using CSS
// selector traversal over rendered HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ShawnKyzer/docsearch"
)

// Ensure Extractor implements docsearch.PageExtractor at compile time.
var _ docsearch.PageExtractor = (*Extractor)(nil)

// DefaultMaxNavContent bounds the content window accumulated for a
// navigation-based section when no natural heading boundary is found before
// document end.
const DefaultMaxNavContent = 5000

// Extractor segments one rendered HTML document into section candidates by
// reconciling two independent signals: the heading hierarchy of the main
// content and the page's navigation-menu structure.
type Extractor struct {
	// Categories is the ordered keyword table used to classify headings.
	Categories docsearch.CategoryTable

	// Matcher decides whether a navigation title corresponds to a heading
	// when anchor-id resolution fails.
	Matcher docsearch.TitleMatcher

	// MaxNavContent caps the accumulated content length of a
	// navigation-based window. Zero means DefaultMaxNavContent.
	MaxNavContent int
}

// NewExtractor creates an Extractor with the default category table and
// bidirectional substring title matching.
func NewExtractor() *Extractor {
	return &Extractor{
		Categories: docsearch.DefaultCategoryTable(),
		Matcher:    docsearch.SubstringMatcher{},
	}
}

// ExtractPage parses the rendered HTML and produces the unioned candidate
// stream: heading-based segments first, then untitled content blocks, then
// navigation-based sections. A page with no recognizable content yields zero
// candidates, not an error.
func (e *Extractor) ExtractPage(html string, pageURL string) (*docsearch.PageExtract, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	// Navigation is read from the whole document: menus typically live
	// outside the main content container.
	nav := ExtractNavigation(doc)

	content := mainContent(doc)
	content.Find("script, style").Remove()

	candidates := e.segmentByHeadings(content)
	candidates = append(candidates, additionalBlocks(content, candidates)...)
	candidates = append(candidates, e.correlateNavigation(content, nav)...)

	return &docsearch.PageExtract{
		Candidates: candidates,
		Navigation: nav,
	}, nil
}

// mainContent locates the main content container, falling back to the
// document body when no semantic container exists.
func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"main", "article", "div.content"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Find("body")
}

// normalizeSpace collapses runs of whitespace to single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isHeading reports whether the tag name is h1 through h6.
func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

// headingLevel parses the numeric level out of a heading tag name.
// Non-heading tags report level 1, matching how navigation anchor points
// that are not headings bound their extraction windows.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 1
}
