package domain

import "strings"

// CommonCategories is the fixed catalog offered as category suggestions
var CommonCategories = []string{
	"Food",
	"Transport",
	"Groceries",
	"Entertainment",
	"Bills",
	"Shopping",
	"Rent",
	"Utilities",
	"EMI",
	"Others",
}

// SuggestCategories returns the catalog entries containing input, ignoring case.
// Empty input yields no suggestions.
func SuggestCategories(input string) []string {
	needle := strings.ToLower(input)
	if needle == "" {
		return nil
	}

	var out []string
	for _, c := range CommonCategories {
		if strings.Contains(strings.ToLower(c), needle) {
			out = append(out, c)
		}
	}
	return out
}
