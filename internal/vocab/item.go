package vocab

import "github.com/samber/lo"

// Category groups learning items for filtering.
type Category string

const (
	CategoryAll          Category = "All"
	CategoryWords        Category = "Words"
	CategoryPhrasalVerbs Category = "Phrasal Verbs"
)

// Categories lists the filter values in display order.
var Categories = []Category{CategoryAll, CategoryWords, CategoryPhrasalVerbs}

// ItemType is the kind of entry an item was parsed from.
type ItemType string

const (
	TypeWord        ItemType = "word"
	TypePhrasalVerb ItemType = "phrasal_verb"
)

// LearningItem is a single word or phrasal verb. Items are immutable once
// loaded.
type LearningItem struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type,omitempty"`
	Category Category `json:"category"`
	Term     string   `json:"term"`
	Meaning  string   `json:"meaning"`
	Example  string   `json:"example"`
}

// ParseCategory maps a user-supplied value to a Category. Unknown values
// return CategoryAll and false.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	switch s {
	case "words", "word":
		return CategoryWords, true
	case "phrasal", "phrasal-verbs", "phrasal_verbs":
		return CategoryPhrasalVerbs, true
	case "all", "":
		return CategoryAll, true
	}
	return CategoryAll, false
}

// Next cycles to the following category filter.
func (c Category) Next() Category {
	idx := lo.IndexOf(Categories, c)
	return Categories[(idx+1)%len(Categories)]
}

// Filter returns the items in category, or all items for CategoryAll.
func Filter(items []LearningItem, category Category) []LearningItem {
	if category == CategoryAll {
		return items
	}
	return lo.Filter(items, func(item LearningItem, _ int) bool {
		return item.Category == category
	})
}

// IDs returns the item IDs in order.
func IDs(items []LearningItem) []string {
	return lo.Map(items, func(item LearningItem, _ int) string { return item.ID })
}
