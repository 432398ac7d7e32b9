package match

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultThreshold is the minimum similarity for a suggestion.
const DefaultThreshold = 0.6

// maxSuggestions bounds the length of a hint.
const maxSuggestions = 3

// Candidate is a scored suggestion.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, best first. Ties are broken by
// name so the order is deterministic. Duplicate candidates are scored once.
func Rank(name string, candidates []string) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		if seen[c] {
			continue
		}

		seen[c] = true
		out = append(out, Candidate{Name: c, Score: Similarity(name, c)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.Name, b.Name))
	})

	return out
}

// Suggest returns up to three candidates at least threshold-similar to name.
// An exact match is never suggested.
func Suggest(name string, candidates []string, threshold float64) []string {
	var out []string

	for _, c := range Rank(name, candidates) {
		if c.Score < threshold || len(out) == maxSuggestions {
			break
		}

		if c.Name != name {
			out = append(out, c.Name)
		}
	}

	return out
}

// Hint formats suggestions as " (did you mean A or B?)", or "" when there are none.
func Hint(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return " (did you mean " + suggestions[0] + "?)"
	default:
		last := len(suggestions) - 1
		return " (did you mean " + strings.Join(suggestions[:last], ", ") + " or " + suggestions[last] + "?)"
	}
}
