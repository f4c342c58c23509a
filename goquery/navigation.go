package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ShawnKyzer/docsearch"
)

// navigationSelectors are the structural patterns that identify menu-like
// regions: list items inside elements semantically marked as navigation,
// sidebar, or menu. All matching candidates are unioned, not just the first.
var navigationSelectors = []string{
	"nav ul li a",
	".sidebar ul li a",
	".navigation ul li a",
	".menu ul li a",
	`[role="navigation"] ul li a`,
}

// ExtractNavigation scans the document for menu-like elements and returns
// an ordered list of navigation entries. An empty result is valid and
// signals "no navigation detected"; downstream stages handle it by
// producing zero navigation-based sections.
func ExtractNavigation(doc *goquery.Document) []docsearch.NavigationEntry {
	var entries []docsearch.NavigationEntry

	for _, selector := range navigationSelectors {
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
			title := strings.TrimSpace(link.Text())
			if len([]rune(title)) <= 1 {
				return
			}
			href, _ := link.Attr("href")
			entries = append(entries, docsearch.NavigationEntry{
				Title: title,
				Href:  href,
				Level: link.ParentsFiltered("ul").Length(),
			})
		})
	}

	return entries
}
