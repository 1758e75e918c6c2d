// Package diagnostic provides structured warnings and errors produced while
// building and validating mapping tables.
//
// Key capabilities:
//   - Coded errors for malformed target specs
//   - Warnings for suspicious but legal tables
//   - "did you mean" suggestions for unknown names
package diagnostic
