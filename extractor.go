package docsearch

import "strings"

// PageExtract is the result of running the extraction pipeline over one
// rendered page.
type PageExtract struct {
	// Candidates is the unioned, unfiltered stream of section candidates
	// in extraction order: heading-based, then untitled content blocks,
	// then navigation-based.
	Candidates []SectionCandidate

	// Navigation is the page's extracted menu structure. Empty means "no
	// navigation detected", which is a valid outcome.
	Navigation []NavigationEntry
}

// PageExtractor segments one rendered HTML document into section candidates.
type PageExtractor interface {
	// ExtractPage parses the rendered HTML and produces section candidates
	// plus the navigation entries found on the page. Malformed HTML is
	// tolerated; a page with no recognizable content yields zero
	// candidates, not an error.
	ExtractPage(html string, pageURL string) (*PageExtract, error)
}

// TitleMatcher decides whether a navigation title corresponds to a heading.
// It is isolated behind an interface so alternate matching strategies can be
// substituted without touching segmentation or indexing logic.
type TitleMatcher interface {
	Match(navTitle, headingText string) bool
}

// SubstringMatcher matches when either string is a case-insensitive
// substring of the other.
type SubstringMatcher struct{}

// Match implements TitleMatcher.
func (SubstringMatcher) Match(navTitle, headingText string) bool {
	if navTitle == "" || headingText == "" {
		return false
	}
	a := strings.ToLower(navTitle)
	b := strings.ToLower(headingText)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
