package catalog

import "strings"

// Filter selects the books of category whose title, author or description
// contains keyword. Matching is case-insensitive substring match after
// trimming surrounding whitespace from the keyword; an empty keyword keeps
// every book of the category. Input order is preserved and the input slice
// is never mutated.
func Filter(books []Book, category Category, keyword string) []Book {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Category != category {
			continue
		}
		if needle == "" {
			out = append(out, b)
			continue
		}
		haystack := strings.ToLower(b.Title + b.Author + b.Desc)
		if strings.Contains(haystack, needle) {
			out = append(out, b)
		}
	}
	return out
}
