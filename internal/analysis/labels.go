package analysis

import (
	"fmt"
	"strings"

	"github.com/peekknuf/wineqa/internal/connectors"
)

// pairLabel renders "Red Wine: Density and Alcohol"
func pairLabel(variant connectors.Variant, first, second string) string {
	return fmt.Sprintf("%s Wine: %s and %s", variant.Title(), titleCase(first), titleCase(second))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// flatten lists the columns of pairs in order, duplicates included
func flatten(pairs [][]string) []string {
	var out []string
	for _, pair := range pairs {
		out = append(out, pair...)
	}
	return out
}
