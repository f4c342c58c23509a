package docsearch

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

// NavigationEntry is one menu item extracted from a page's navigation
// structure. Entries are produced once per page and consumed within that
// page's pipeline run; they are never persisted.
type NavigationEntry struct {
	Title string `json:"title"`
	Href  string `json:"href"`
	Level int    `json:"level"` // nesting depth, counted in enclosing lists
}

// RawHeading is a heading position in the content tree, before any
// segmentation has happened.
type RawHeading struct {
	Text  string
	Level int    // 1-3
	ID    string // id attribute, may be empty
}

// SectionCandidate is an unvalidated extraction result. Candidates become
// SectionDocuments only after passing the content floor and deduplication
// checks.
type SectionCandidate struct {
	Title      string
	Content    string
	Section    string
	Subsection string
	Headers    []string
	CodeBlocks []string
	AnchorID   string
}

// Document converts the candidate into its persisted form for the given
// source page. The document URL is the page URL plus the candidate's anchor
// fragment, which makes it the natural upsert key.
func (c *SectionCandidate) Document(pageURL, version string, scrapedAt time.Time) *SectionDocument {
	return &SectionDocument{
		URL:        pageURL + "#" + c.AnchorID,
		Title:      c.Title,
		Content:    c.Content,
		Section:    c.Section,
		Subsection: c.Subsection,
		Headers:    strings.Join(c.Headers, " | "),
		CodeBlocks: strings.Join(c.CodeBlocks, " | "),
		ScrapedAt:  scrapedAt,
		Version:    version,
	}
}

// Slugify derives a URL-safe anchor fragment from a title. The derivation is
// deterministic so that document URLs are stable across rebuilds: lowercase,
// runs of spaces and punctuation collapse to single hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' || r == '_' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// versionNoiseRe matches bare version-like tokens such as "1.2", "0.x" or
// "v2.0.1". Navigation menus on versioned documentation sites carry these as
// version pickers, not content links.
var versionNoiseRe = regexp.MustCompile(`(^|[\s(])v?\d+\.(\d|x|$)`)

// IsVersionNoise reports whether a navigation title looks like a version
// selector rather than a content link.
func IsVersionNoise(title string) bool {
	return versionNoiseRe.MatchString(strings.ToLower(title))
}
