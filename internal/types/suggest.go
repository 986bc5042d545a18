package types

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var foldCaser = cases.Fold()

// fold normalizes a name to NFC and case-folds it so near-miss matching
// doesn't get tripped up by combining-mark or casing differences between
// an identifier and a typo of it.
func fold(name string) string {
	return foldCaser.String(norm.NFC.String(name))
}

// NearMisses returns every candidate within Levenshtein distance 2 of
// name, nearest first (spec.md §4.3's Variable rule). Ties keep
// candidates' original relative order.
func NearMisses(name string, candidates []string) []string {
	const maxDistance = 2
	folded := fold(name)
	type scored struct {
		name string
		dist int
	}
	var matches []scored
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(folded, fold(c))
		if d <= maxDistance {
			matches = append(matches, scored{c, d})
		}
	}
	// stable insertion sort by distance: candidate lists are short (a
	// module's bound names), so O(n^2) is fine and keeps input order for
	// ties without pulling in sort.Slice's indirection.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].dist > matches[j].dist; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// levenshtein computes classic single-character-edit distance between
// two rune slices using the standard two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
