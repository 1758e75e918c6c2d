package mapping

import (
	"fmt"
	"strings"

	"response-mapper/internal/diagnostic"
)

// validateEntries checks a table declaration. Errors make the table
// unusable; warnings flag legal but suspicious declarations.
func validateEntries(table string, entries []Entry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if strings.TrimSpace(table) == "" {
		res.AddError("empty_table_name", "mapping table needs a name", "", "")
	}

	// Keys whose value leaves its own slot; a container named after one of
	// them would be consumed by its own fan-out.
	moved := map[string]bool{}
	renamed := map[string]string{}

	for _, e := range entries {
		switch e.Spec.kind {
		case KindRename:
			if e.Spec.key != e.Key {
				moved[e.Key] = true
				renamed[e.Spec.key] = e.Key
			}
		case KindNest:
			moved[e.Key] = true
		}
	}

	// parent.child -> first source key nested there
	nested := map[[2]string]string{}

	for _, e := range entries {
		if e.Key == "" {
			res.AddError("empty_source_key", "source key must not be empty", table, "")
			continue
		}

		validateSpec(res, table, e, moved, renamed)

		if e.Spec.kind != KindNest {
			continue
		}

		target := [2]string{e.Spec.parent, e.Spec.child}
		if src, ok := nested[target]; ok {
			res.AddWarning("nest_duplicate_child",
				fmt.Sprintf("%s.%s is already the target of %q; the later value wins", target[0], target[1], src),
				table, e.Key)

			continue
		}

		nested[target] = e.Key
	}

	return res
}

// validateSpec validates the spec of a single entry.
func validateSpec(
	res *diagnostic.Diagnostics,
	table string,
	e Entry,
	moved map[string]bool,
	renamed map[string]string,
) {
	s := e.Spec

	switch s.kind {
	case KindIdentity:
	case KindRename:
		if s.key == "" {
			res.AddError("empty_rename", "rename target must not be empty", table, e.Key)
		}
	case KindNest:
		validateNest(res, table, e, moved, renamed)
	case KindFormat:
		if s.formatter == nil {
			res.AddError("nil_formatter", fmt.Sprintf("formatter %q has no function", s.name), table, e.Key)
		}
	default:
		res.AddError("unknown_spec", fmt.Sprintf("unknown spec kind %v", s.kind), table, e.Key)
	}
}

// validateNest enforces the one-level container contract of Nest.
func validateNest(
	res *diagnostic.Diagnostics,
	table string,
	e Entry,
	moved map[string]bool,
	renamed map[string]string,
) {
	s := e.Spec

	if s.parent == "" {
		res.AddError("empty_parent_key", "nest target needs a parent key", table, e.Key)
	}

	if s.child == "" {
		res.AddError("empty_child_key", "nest target needs a child key", table, e.Key)
	}

	if strings.Contains(s.parent, ".") || strings.Contains(s.child, ".") {
		res.AddError("nest_too_deep",
			fmt.Sprintf("nest target %s.%s is deeper than one level", s.parent, s.child),
			table, e.Key)
	}

	if s.parent != "" && moved[s.parent] {
		res.AddError("nest_cycle",
			fmt.Sprintf("container %q is itself a source key that gets moved", s.parent),
			table, e.Key)
	}

	if src, ok := renamed[s.parent]; ok && s.parent != "" {
		res.AddWarning("nest_shadows_rename",
			fmt.Sprintf("container %q is also the rename target of %q", s.parent, src),
			table, e.Key)
	}
}
