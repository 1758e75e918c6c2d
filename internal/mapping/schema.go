package mapping

// TableFile represents the root of a YAML mapping table file.
type TableFile struct {
	// Version of the table file schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Tables lists one mapping table per entity type.
	Tables []TableDef `yaml:"tables"`
}

// TableDef declares one mapping table.
type TableDef struct {
	// Name is the entity type the table is looked up by (e.g. "connection").
	Name string `yaml:"name"`

	// Description is an optional human-readable description.
	Description string `yaml:"description,omitempty"`

	// PruneUnmapped drops keys absent from Map. Defaults to true.
	PruneUnmapped *bool `yaml:"prune_unmapped,omitempty"`

	// Map is the ordered source key -> target declaration.
	Map TargetMap `yaml:"map"`
}

// TargetMap is the ordered list of target declarations of a table. It is
// decoded from a YAML mapping whose values take one of these forms:
//
//	id:                                  # identity (also "id: id")
//	signature_type: type                 # rename
//	completed: {state: name}             # nest, one level
//	expires_at: !nest wormhole.estimatedEol
//	remaining_hours: !format eol         # formatter from the registry
//	in_system_name: [name, {target: name}]  # several targets
//
// Repeating a source key also adds targets, in document order.
type TargetMap []TargetDef

// TargetDef is a single source key -> target declaration.
type TargetDef struct {
	// Source is the key in the input record.
	Source string
	// Kind selects which of the remaining fields are meaningful.
	Kind Kind
	// Key is the Rename target.
	Key string
	// Parent and Child address the Nest target.
	Parent string
	Child  string
	// Formatter names a registered formatter for Format.
	Formatter string
	// Line is the YAML line of the declaration, for diagnostics.
	Line int
}
