// Package mapping defines mapping tables: the declarative, per-entity-type
// rules that reshape a decoded response record.
//
// A table maps source keys to target specs:
//
//   - Identity: keep key and value
//   - Rename(newKey): move the value to newKey
//   - Nest(parent, child): move the value into the record at parent,
//     creating it on first use; several keys may fan into one parent
//   - Format(fn): replace the value with fn's result
//
// Keys absent from a table are pruned unless the table keeps unmapped keys.
// Tables are immutable and validated when built; a malformed table is a
// *ConfigError and is never used.
//
// # Nesting depth
//
// Nest creates exactly one level of container. Targets such as
// "target.region.id" are rejected; build deeper structure with a formatter
// or by post-processing the transformed record.
//
// # Table files
//
// Tables can also be declared in YAML:
//
//	version: "1"
//	tables:
//	  - name: connection
//	    prune_unmapped: true
//	    map:
//	      id: id
//	      signature_type: type
//	      in_system_name: [name, {target: name}]
//	      completed: {state: name}
//	      expires_at: !nest wormhole.estimatedEol
//	      remaining_hours: !format eol
//
// Formatter names resolve against a FormatterRegistry. Unknown names are
// reported with the closest registered names as suggestions.
package mapping
