package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ShawnKyzer/docsearch"
)

// correlateNavigation attempts, for every navigation entry, to locate the
// corresponding content element and extract a bounded content window from
// it. Entries whose title looks like a version selector are skipped, and an
// entry that resolves to nothing yields no section; both are normal,
// non-error outcomes.
func (e *Extractor) correlateNavigation(content *goquery.Selection, entries []docsearch.NavigationEntry) []docsearch.SectionCandidate {
	maxContent := e.MaxNavContent
	if maxContent <= 0 {
		maxContent = DefaultMaxNavContent
	}

	var candidates []docsearch.SectionCandidate
	for _, entry := range entries {
		if docsearch.IsVersionNoise(entry.Title) {
			continue
		}

		anchor := e.resolveAnchor(content, entry)
		if anchor == nil {
			continue
		}

		if c, ok := extractNavWindow(anchor, entry, maxContent); ok {
			slug := docsearch.Slugify(entry.Title)
			c.AnchorID = fmt.Sprintf("nav-%d-%s", len(candidates), slug)
			candidates = append(candidates, c)
		}
	}

	return candidates
}

// resolveAnchor locates the content element a navigation entry refers to.
// Resolution order: same-page anchor id first, then the first heading whose
// text fuzzy-matches the entry's title.
func (e *Extractor) resolveAnchor(content *goquery.Selection, entry docsearch.NavigationEntry) *goquery.Selection {
	if strings.HasPrefix(entry.Href, "#") {
		id := strings.TrimPrefix(entry.Href, "#")
		if id != "" {
			sel := content.Find(fmt.Sprintf("[id=%q]", id)).First()
			if sel.Length() > 0 {
				return sel
			}
		}
	}

	var match *goquery.Selection
	content.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if e.Matcher.Match(entry.Title, normalizeSpace(heading.Text())) {
			match = heading
			return false
		}
		return true
	})
	return match
}

// extractNavWindow mirrors the heading segmenter's sibling walk starting at
// the anchor element, additionally bounded by a maximum accumulated content
// length to prevent runaway windows when no heading boundary exists before
// document end.
func extractNavWindow(anchor *goquery.Selection, entry docsearch.NavigationEntry, maxContent int) (docsearch.SectionCandidate, bool) {
	anchorLevel := headingLevel(goquery.NodeName(anchor))
	headers := []string{entry.Title}

	var contentParts, codeBlocks []string
	contentLen := 0

	for cur, first := anchor, true; cur.Length() > 0 && contentLen < maxContent; cur, first = cur.Next(), false {
		tag := goquery.NodeName(cur)

		// A heading of equal or shallower level ends the window; the
		// anchor element itself never terminates its own window.
		if !first && isHeading(tag) && headingLevel(tag) <= anchorLevel {
			break
		}

		text := normalizeSpace(cur.Text())
		if text == "" {
			continue
		}

		switch tag {
		case "pre", "code":
			contentParts = append(contentParts, text)
			contentLen += len(text)
			if len(text) > minCodeBlockLen {
				codeBlocks = append(codeBlocks, text)
			}
		case "h4", "h5", "h6":
			contentParts = append(contentParts, text)
			contentLen += len(text)
			headers = append(headers, text)
		default:
			if contentTags[tag] {
				contentParts = append(contentParts, text)
				contentLen += len(text)
			}
		}
	}

	body := strings.Join(contentParts, " ")
	if len(body) <= docsearch.MinSectionContent {
		return docsearch.SectionCandidate{}, false
	}

	return docsearch.SectionCandidate{
		Title:      entry.Title,
		Content:    body,
		Section:    "navigation-based",
		Subsection: docsearch.Slugify(entry.Title),
		Headers:    headers,
		CodeBlocks: codeBlocks,
	}, true
}
