package docsearch

import "strings"

// Category is a (section, subsection) classification pair. These are
// user-facing filter keys, not structural nesting.
type Category struct {
	Section    string
	Subsection string
}

// CategoryRule maps a keyword to a category. Matching is by case-insensitive
// substring against the heading text.
type CategoryRule struct {
	Keyword string
	Category
}

// CategoryTable is an ordered rule set: the first matching rule wins. It is
// configuration data, not logic, so deployments can retarget the table to a
// different documentation domain without code changes.
type CategoryTable []CategoryRule

// Categorize maps a heading to its category. When no rule matches it falls
// back by heading level: level 1 maps to the overview bucket, level 2
// headings each become their own subsection, deeper headings share a
// catch-all subsection. The function is pure: the same input always yields
// the same output, since category values become persisted filter keys.
func (t CategoryTable) Categorize(headingText string, level int) Category {
	lower := strings.ToLower(headingText)

	for _, rule := range t {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Category
		}
	}

	switch {
	case level <= 1:
		return Category{Section: "main", Subsection: "overview"}
	case level == 2:
		return Category{Section: "user-guide", Subsection: Slugify(headingText)}
	default:
		return Category{Section: "user-guide", Subsection: "concepts"}
	}
}

// DefaultCategoryTable returns the rule set for agent-framework
// documentation sites.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		{Keyword: "quickstart", Category: Category{Section: "user-guide", Subsection: "quickstart"}},
		{Keyword: "concepts", Category: Category{Section: "user-guide", Subsection: "concepts"}},
		{Keyword: "agents", Category: Category{Section: "user-guide", Subsection: "agents"}},
		{Keyword: "tools", Category: Category{Section: "user-guide", Subsection: "tools"}},
		{Keyword: "model providers", Category: Category{Section: "user-guide", Subsection: "model-providers"}},
		{Keyword: "streaming", Category: Category{Section: "user-guide", Subsection: "streaming"}},
		{Keyword: "multi-agent", Category: Category{Section: "user-guide", Subsection: "multi-agent"}},
		{Keyword: "safety", Category: Category{Section: "user-guide", Subsection: "safety"}},
		{Keyword: "security", Category: Category{Section: "user-guide", Subsection: "security"}},
		{Keyword: "observability", Category: Category{Section: "user-guide", Subsection: "observability"}},
		{Keyword: "evaluation", Category: Category{Section: "user-guide", Subsection: "evaluation"}},
		{Keyword: "deploy", Category: Category{Section: "user-guide", Subsection: "deploy"}},
		{Keyword: "examples", Category: Category{Section: "examples", Subsection: "overview"}},
		{Keyword: "api reference", Category: Category{Section: "api-reference", Subsection: "overview"}},
		{Keyword: "features", Category: Category{Section: "main", Subsection: "features"}},
		{Keyword: "next steps", Category: Category{Section: "main", Subsection: "next-steps"}},
	}
}
