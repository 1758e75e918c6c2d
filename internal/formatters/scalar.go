package formatters

import (
	"response-mapper/internal/node"
)

// Int converts integral numbers and numeric strings to int64.
func Int(value any, _ string, _ node.View) (any, error) {
	if i, ok := node.Int(value); ok {
		return i, nil
	}

	return value, nil
}

// Bool converts "true"/"false", "1"/"0" and integral numbers to bool.
func Bool(value any, _ string, _ node.View) (any, error) {
	if b, ok := node.Bool(value); ok {
		return b, nil
	}

	return value, nil
}

// String renders numbers and bools as strings.
func String(value any, _ string, _ node.View) (any, error) {
	if s, ok := node.String(value); ok {
		return s, nil
	}

	return value, nil
}
