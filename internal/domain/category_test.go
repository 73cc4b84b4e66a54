package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "Lowercase prefix", input: "fo", want: []string{"Food"}},
		{name: "Uppercase input", input: "FO", want: []string{"Food"}},
		{name: "Substring match", input: "en", want: []string{"Entertainment", "Rent"}},
		{name: "Shared letters", input: "s", want: []string{"Transport", "Groceries", "Bills", "Shopping", "Utilities", "Others"}},
		{name: "No match", input: "xyz", want: nil},
		{name: "Empty input", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestCategories(tt.input))
		})
	}
}
