package mapping

import (
	"fmt"

	"response-mapper/internal/diagnostic"
	"response-mapper/internal/match"
)

// Validate validates a table file against the formatter registry. It runs
// every check NewTable runs plus the file-level ones: duplicate table
// names and unknown formatter references.
func Validate(tf *TableFile, reg *FormatterRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if tf == nil {
		res.AddError("table_file_is_nil", "table file is nil", "", "")
		return res
	}

	if len(tf.Tables) == 0 {
		res.AddWarning("no_tables", "table file declares no tables", "", "")
	}

	seen := map[string]struct{}{}

	for i := range tf.Tables {
		td := &tf.Tables[i]

		if _, dup := seen[td.Name]; dup && td.Name != "" {
			res.AddError("duplicate_table", fmt.Sprintf("duplicate table %q", td.Name), td.Name, "")
			continue
		}

		seen[td.Name] = struct{}{}

		if td.PruneUnmapped != nil && !*td.PruneUnmapped {
			res.AddInfo("keeps_unmapped", "keys absent from the map pass through unchanged", td.Name, "")
		}

		entries, diags := tableEntries(td, reg)
		res.Merge(*diags)
		res.Merge(*validateEntries(td.Name, entries))
	}

	return res
}

// tableEntries resolves the declarations of td into entries. Format
// declarations naming an unknown formatter are reported and left out.
func tableEntries(td *TableDef, reg *FormatterRegistry) ([]Entry, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	entries := make([]Entry, 0, len(td.Map))

	var known []string
	if reg != nil {
		known = reg.Names()
	}

	for _, def := range td.Map {
		spec, ok := def.Spec(reg)
		if !ok {
			res.AddError("unknown_formatter",
				fmt.Sprintf("line %d: formatter %q is not registered", def.Line, def.Formatter),
				td.Name, def.Source,
				match.Suggest(def.Formatter, known, 3)...)

			continue
		}

		entries = append(entries, Entry{Key: def.Source, Spec: spec})
	}

	return entries, res
}

// Build validates tf and turns it into a catalog.
func Build(tf *TableFile, reg *FormatterRegistry) (*Catalog, error) {
	diags := Validate(tf, reg)
	if diags.HasErrors() {
		return nil, &ConfigError{Diagnostics: diags}
	}

	tables := make([]*Table, 0, len(tf.Tables))

	for i := range tf.Tables {
		td := &tf.Tables[i]

		entries, _ := tableEntries(td, reg)

		var opts []TableOption
		if td.PruneUnmapped != nil {
			opts = append(opts, PruneUnmapped(*td.PruneUnmapped))
		}

		t, err := NewTable(td.Name, entries, opts...)
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	return NewCatalog(tables...)
}
