package mapper

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTable is returned when a transform is asked to run without a table.
	ErrNilTable = errors.New("mapper: nil mapping table")
	// ErrNotList is returned by TransformEach for a non-list input.
	ErrNotList = errors.New("mapper: input is not a list")
)

// FormatterError is returned when a Format spec's function fails. The
// transform is aborted and no partial output is returned.
type FormatterError struct {
	// Table is the name of the active mapping table.
	Table string
	// Path is the dotted key path of the formatted value.
	Path string
	// Formatter is the formatter's registered name.
	Formatter string
	// Err is the formatter's error.
	Err error
}

func (e *FormatterError) Error() string {
	return fmt.Sprintf("mapper: table %q: formatter %q failed at %s: %v", e.Table, e.Formatter, e.Path, e.Err)
}

func (e *FormatterError) Unwrap() error {
	return e.Err
}
