package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/ShawnKyzer/docsearch"
)

// minBlockContent is the minimum text length for an untitled content block
// to be worth extracting.
const minBlockContent = 200

// blockSelectors identify large content regions that heading segmentation
// may have missed.
var blockSelectors = []string{
	"article",
	".content",
	".documentation",
	".docs-content",
	"section",
}

// additionalBlocks scans for large content regions not already covered by
// heading-based candidates. Coverage is checked with the same first-100-
// character fingerprint the filter stage uses, so a block wrapping an
// already-extracted section is skipped.
func additionalBlocks(content *goquery.Selection, existing []docsearch.SectionCandidate) []docsearch.SectionCandidate {
	seen := docsearch.NewFingerprintSet()
	for _, c := range existing {
		seen.Add(c.Content)
	}

	counter := len(existing)
	var blocks []docsearch.SectionCandidate

	for _, selector := range blockSelectors {
		content.Find(selector).Each(func(_ int, region *goquery.Selection) {
			text := normalizeSpace(region.Text())
			if len(text) <= minBlockContent || !seen.Add(text) {
				return
			}

			title := "Additional Documentation"
			if h := region.Find("h1, h2, h3, h4").First(); h.Length() > 0 {
				if t := normalizeSpace(h.Text()); t != "" {
					title = t
				}
			}

			blocks = append(blocks, docsearch.SectionCandidate{
				Title:      title,
				Content:    text,
				Section:    "additional",
				Subsection: "content",
				Headers:    []string{title},
				AnchorID:   fmt.Sprintf("additional-%d", counter),
			})
			counter++
		})
	}

	return blocks
}
