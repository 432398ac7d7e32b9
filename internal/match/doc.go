// Package match ranks identifiers by similarity to a misspelled name, for
// "did you mean" hints in user-facing errors.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: case- and separator-insensitive score in [0, 1]
//   - Suggest: the closest candidates above a threshold
package match
