// Package formatters holds the reusable Format functions mapping tables
// refer to by name.
//
// Formatters never fail on malformed input. A value they cannot interpret
// is answered with a sentinel (EOL) or returned unchanged (everything
// else), so one bad field never aborts a whole response.
package formatters
