package mapping

import (
	"slices"

	"response-mapper/internal/diagnostic"
)

// Entry binds a source key to a Spec inside a table declaration.
type Entry struct {
	Key  string
	Spec Spec
}

// Field is shorthand for an Entry literal.
func Field(key string, spec Spec) Entry {
	return Entry{Key: key, Spec: spec}
}

// Table is an immutable mapping table for one entity type.
//
// A source key declared more than once accumulates targets: the value is
// written to each of them in declaration order. The key keeps the position
// of its first declaration.
type Table struct {
	name     string
	order    []string
	specs    map[string][]Spec
	prune    bool
	warnings []diagnostic.Diagnostic
}

// TableOption configures NewTable.
type TableOption func(*Table)

// KeepUnmapped makes keys absent from the table pass through unchanged
// instead of being pruned.
func KeepUnmapped() TableOption {
	return func(t *Table) {
		t.prune = false
	}
}

// PruneUnmapped sets the prune flag explicitly. Tables prune by default.
func PruneUnmapped(prune bool) TableOption {
	return func(t *Table) {
		t.prune = prune
	}
}

// NewTable validates entries and builds a table. A malformed declaration
// yields a *ConfigError; warnings are kept on the table.
func NewTable(name string, entries []Entry, opts ...TableOption) (*Table, error) {
	diags := validateEntries(name, entries)
	if diags.HasErrors() {
		return nil, &ConfigError{Table: name, Diagnostics: diags}
	}

	t := &Table{
		name:     name,
		specs:    make(map[string][]Spec, len(entries)),
		prune:    true,
		warnings: diags.Warnings,
	}
	for _, opt := range opts {
		opt(t)
	}

	for _, e := range entries {
		if _, seen := t.specs[e.Key]; !seen {
			t.order = append(t.order, e.Key)
		}

		t.specs[e.Key] = append(t.specs[e.Key], e.Spec)
	}

	return t, nil
}

// MustTable is NewTable for package-level declarations; it panics on a
// malformed table.
func MustTable(name string, entries []Entry, opts ...TableOption) *Table {
	t, err := NewTable(name, entries, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Name returns the entity type the table is declared for.
func (t *Table) Name() string { return t.name }

// PruneUnmapped reports whether keys absent from the table are dropped.
func (t *Table) PruneUnmapped() bool { return t.prune }

// Len returns the number of distinct source keys.
func (t *Table) Len() int { return len(t.order) }

// SourceKeys returns the distinct source keys in declaration order.
func (t *Table) SourceKeys() []string {
	return slices.Clone(t.order)
}

// Targets returns the specs declared for key, in declaration order.
func (t *Table) Targets(key string) ([]Spec, bool) {
	specs, ok := t.specs[key]
	if !ok {
		return nil, false
	}

	return slices.Clone(specs), true
}

// Entries returns the declaration back, one entry per spec, grouped by
// source key in first-declaration order.
func (t *Table) Entries() []Entry {
	var out []Entry

	for _, k := range t.order {
		for _, s := range t.specs[k] {
			out = append(out, Entry{Key: k, Spec: s})
		}
	}

	return out
}

// Warnings returns the non-fatal diagnostics found while building the table.
func (t *Table) Warnings() []diagnostic.Diagnostic {
	return slices.Clone(t.warnings)
}
