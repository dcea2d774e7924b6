package solver

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultWordsPerLine is how many words Format puts on one row.
const DefaultWordsPerLine = 5

// columnGap separates words sharing a row.
const columnGap = "       "

// Lexicon is the membership test a search runs against.
type Lexicon interface {
	Contains(word string) bool
}

// Search tests every candidate of letters against lex and returns the
// distinct matches. A cancelled search returns ctx's error and no matches.
func Search(ctx context.Context, letters []rune, lex Lexicon) (map[string]struct{}, error) {
	found := make(map[string]struct{})
	err := Enumerate(ctx, letters, func(candidate string) bool {
		if lex.Contains(candidate) {
			found[candidate] = struct{}{}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Rank orders words longest first; words of equal length are sorted
// lexicographically.
func Rank(found map[string]struct{}) []string {
	words := maps.Keys(found)
	slices.SortFunc(words, compareWords)
	return words
}

func compareWords(a, b string) int {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		return lb - la
	}
	return strings.Compare(a, b)
}

// Format lays out ranked words perLine to a row. A perLine of zero or less
// uses DefaultWordsPerLine.
func Format(words []string, perLine int) string {
	if perLine <= 0 {
		perLine = DefaultWordsPerLine
	}
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteString(columnGap)
			}
		}
		b.WriteString(w)
	}
	return b.String()
}
