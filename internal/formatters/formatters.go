package formatters

import (
	"fmt"

	"response-mapper/internal/mapping"
)

// Names of the built-in formatters as used by `!format` in table files.
const (
	NameEOL           = "eol"
	NameTimestamp     = "timestamp"
	NameDate          = "date"
	NameUnix          = "unix"
	NameInt           = "int"
	NameBool          = "bool"
	NameString        = "string"
	NameCamelCaseKeys = "camelCaseKeys"
)

func builtins() map[string]mapping.FormatFunc {
	return map[string]mapping.FormatFunc{
		NameEOL:           EOL,
		NameTimestamp:     Timestamp,
		NameDate:          Strftime("%Y-%m-%d"),
		NameUnix:          Unix,
		NameInt:           Int,
		NameBool:          Bool,
		NameString:        String,
		NameCamelCaseKeys: CamelCaseKeys,
	}
}

// Register adds the built-in formatters to reg.
func Register(reg *mapping.FormatterRegistry) error {
	for name, fn := range builtins() {
		if err := reg.Register(name, fn); err != nil {
			return fmt.Errorf("failed to register built-in formatters: %w", err)
		}
	}

	return nil
}

// Default returns a new registry holding only the built-in formatters.
func Default() *mapping.FormatterRegistry {
	reg := mapping.NewFormatterRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}

	return reg
}
