package common

import "strings"

// UnknownStr is the String() result for enum values outside the known range.
const UnknownStr = "unknown"

// JoinKeyPath joins record keys into the dotted form used in messages.
// Empty segments are skipped, so the root level yields "".
func JoinKeyPath(keys ...string) string {
	parts := make([]string, 0, len(keys))

	for _, k := range keys {
		if k != "" {
			parts = append(parts, k)
		}
	}

	return strings.Join(parts, ".")
}
