// Package match provides key normalization, word splitting, Levenshtein
// distance and ranked "did you mean" suggestions for mapping-table keys and
// formatter names.
//
// Key functions:
//   - NormalizeKey: folds a key for fuzzy comparison
//   - SplitWords: splits snake_case, kebab-case and camelCase keys into words
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
