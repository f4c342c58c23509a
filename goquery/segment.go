package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ShawnKyzer/docsearch"
)

// minSegmentContent is the pre-floor applied at segmentation time. The real
// content-quality floor is applied later by the filter stage; this only
// drops segments that are clearly empty.
const minSegmentContent = 50

// minCodeBlockLen is the minimum text length for a pre/code element to be
// collected as a code block.
const minCodeBlockLen = 10

// contentTags are the sibling element types accumulated into a segment's
// body between heading boundaries.
var contentTags = map[string]bool{
	"p":          true,
	"div":        true,
	"ul":         true,
	"ol":         true,
	"pre":        true,
	"code":       true,
	"blockquote": true,
}

// segmentByHeadings walks the content tree, splits it at heading boundaries
// (levels 1-3), and for each heading accumulates all following sibling
// content up to, but not including, the next heading of equal or shallower
// level. Sub-headings (levels 4-6) inside a window are folded into the
// section's headers list rather than starting new sections.
func (e *Extractor) segmentByHeadings(content *goquery.Selection) []docsearch.SectionCandidate {
	var candidates []docsearch.SectionCandidate

	content.Find("h1, h2, h3").Each(func(_ int, heading *goquery.Selection) {
		raw := docsearch.RawHeading{
			Text:  normalizeSpace(heading.Text()),
			Level: headingLevel(goquery.NodeName(heading)),
		}
		raw.ID, _ = heading.Attr("id")

		// Headings shorter than 2 characters are noise.
		if len([]rune(raw.Text)) < 2 {
			return
		}

		window := heading.NextUntil(stopSelector(raw.Level))
		contentParts, headers, codeBlocks := collectWindow(window)

		body := strings.Join(contentParts, " ")
		if len(body) <= minSegmentContent {
			return
		}

		anchor := raw.ID
		if anchor == "" {
			anchor = docsearch.Slugify(raw.Text)
		}

		category := e.Categories.Categorize(raw.Text, raw.Level)
		candidates = append(candidates, docsearch.SectionCandidate{
			Title:      raw.Text,
			Content:    body,
			Section:    category.Section,
			Subsection: category.Subsection,
			Headers:    append([]string{raw.Text}, headers...),
			CodeBlocks: codeBlocks,
			AnchorID:   anchor,
		})
	})

	return candidates
}

// stopSelector returns the selector matching headings of equal or shallower
// level, which terminate a segment's sibling walk. Level comparison is
// purely numeric: h1 < h2 < h3.
func stopSelector(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h1, h2"
	default:
		return "h1, h2, h3"
	}
}

// collectWindow accumulates body text, folded sub-headers, and code blocks
// from the sibling elements of a segment window.
func collectWindow(window *goquery.Selection) (contentParts, headers, codeBlocks []string) {
	window.Each(func(_ int, el *goquery.Selection) {
		tag := goquery.NodeName(el)
		text := normalizeSpace(el.Text())
		if text == "" {
			return
		}

		switch tag {
		case "pre", "code":
			if len(text) > minCodeBlockLen {
				codeBlocks = append(codeBlocks, text)
			}
			contentParts = append(contentParts, text)
		case "h4", "h5", "h6":
			headers = append(headers, text)
			contentParts = append(contentParts, text)
		default:
			if contentTags[tag] {
				contentParts = append(contentParts, text)
			}
		}
	})
	return contentParts, headers, codeBlocks
}
