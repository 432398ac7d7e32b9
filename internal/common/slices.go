package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Duplicates returns the values that occur more than once in s, in order of
// their second occurrence.
func Duplicates[S ~[]E, E comparable](s S) []E {
	seen := make(map[E]int, len(s))

	var dups []E

	for _, v := range s {
		seen[v]++
		if seen[v] == 2 {
			dups = append(dups, v)
		}
	}

	return dups
}
