package match

import (
	"strings"
	"unicode"
)

// NormalizeKey normalizes a record key for fuzzy matching.
// The normalization pipeline:
// 1. Split into words (separators and camelCase boundaries).
// 2. Case-fold to lower.
// 3. Join without separators.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(splitWords(s), ""))
}

// SplitWords splits a key into its words, preserving the original case.
// Examples:
//   - "out_system_id" -> ["out", "system", "id"]
//   - "sourceSignature" -> ["source", "Signature"]
//   - "estimatedEOL" -> ["estimated", "EOL"]
//   - "wh-exits-outward" -> ["wh", "exits", "outward"]
func SplitWords(s string) []string {
	return splitWords(s)
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}

	var words []string

	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		// Separators close the current word
		if isSeparator(r) {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && startsWord(runes, i) && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsWord determines if a new word begins at position i.
func startsWord(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prev)

	// "systemId" -> split before 'I'
	if isUpper && !isPrevUpper && !isSeparator(prev) {
		return true
	}

	// "EOLStatus" -> "EOL" + "Status", split before 'S'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	// "region2name" keeps digits attached to the preceding word
	return false
}
