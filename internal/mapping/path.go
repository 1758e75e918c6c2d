package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// ParseNest parses a dotted nest target "parent.child" into a Nest spec.
// Paths with more than one dot are returned as a Nest whose child keeps the
// remaining dots, so validation can report them as too deep instead of
// silently truncating them.
func ParseNest(path string) (Spec, error) {
	if path == "" {
		return Spec{}, errors.New("empty nest path")
	}

	parent, child, ok := strings.Cut(path, ".")
	if !ok {
		return Spec{}, fmt.Errorf("invalid nest path %q: expected parent.child", path)
	}

	if parent == "" || child == "" {
		return Spec{}, fmt.Errorf("invalid nest path %q: empty segment", path)
	}

	return Nest(parent, child), nil
}
