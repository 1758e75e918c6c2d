package mapping

import (
	"errors"
	"fmt"

	"response-mapper/internal/diagnostic"
)

// ErrInvalidTable matches every *ConfigError via errors.Is.
var ErrInvalidTable = errors.New("invalid mapping table")

// ConfigError reports a malformed mapping table. It is raised when the table
// is built, never during a transform. Table is empty when the error covers a
// whole table file.
type ConfigError struct {
	Table       string
	Diagnostics *diagnostic.Diagnostics
}

func (e *ConfigError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", ErrInvalidTable, e.Diagnostics.Error())
	}

	return fmt.Sprintf("%s %q: %v", ErrInvalidTable, e.Table, e.Diagnostics.Error())
}

// Is makes errors.Is(err, ErrInvalidTable) hold.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidTable
}

// Codes lists the diagnostic codes behind the error.
func (e *ConfigError) Codes() []string {
	return e.Diagnostics.Codes()
}
