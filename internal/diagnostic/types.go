package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"response-mapper/internal/common"
)

// Diagnostics collects the findings of one table or table-file check,
// bucketed by severity. The zero value is ready to use.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding about a mapping table.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code is stable and meant for tests and tooling, e.g. "nest_cycle".
	Code    string
	Message string
	// Table and Key locate the finding; either may be empty.
	Table string
	Key   string
	// Suggestions are close matches for a misspelled name.
	Suggestions []string
}

// DiagnosticSeverity orders findings from informational to fatal.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError records a finding that makes the table unusable.
func (d *Diagnostics) AddError(code, message, table, key string, suggestions ...string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, table, key, suggestions))
}

// AddWarning records a legal but suspicious declaration.
func (d *Diagnostics) AddWarning(code, message, table, key string, suggestions ...string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, table, key, suggestions))
}

// AddInfo records a note about table behaviour.
func (d *Diagnostics) AddInfo(code, message, table, key string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, table, key, nil))
}

func newDiagnostic(sev DiagnosticSeverity, code, message, table, key string, suggestions []string) Diagnostic {
	return Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		Table:       table,
		Key:         key,
		Suggestions: suggestions,
	}
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's findings, keeping their severity buckets.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid is the negation of HasErrors; warnings do not count.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Codes lists the error codes in the order they were added.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		codes = append(codes, e.Code)
	}

	return codes
}

// All returns errors, warnings and infos in that order.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error folds the errors into one, joined by "; ". It is nil for a valid
// result.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[table] key: [code] message (did you mean ...?)", leaving
// out the parts that are empty.
func (d Diagnostic) String() string {
	var where []string
	if d.Table != "" {
		where = append(where, "["+d.Table+"]")
	}

	if d.Key != "" {
		where = append(where, d.Key)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
