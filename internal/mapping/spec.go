package mapping

import (
	"fmt"

	"response-mapper/internal/node"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind tags the variant held by a Spec.
type Kind int

const (
	// KindIdentity keeps key and value.
	KindIdentity Kind = iota
	// KindRename writes the value under a new key.
	KindRename
	// KindNest moves the value into a one-level container: parent.child.
	KindNest
	// KindFormat replaces the value with a formatter's result.
	KindFormat
)

// FormatFunc computes the replacement value for a key. It receives the
// key's original value, the key itself and a read-only view of every key at
// the same level of the input. It must not mutate any of them.
//
// Malformed input should be answered with a sentinel value; returning an
// error aborts the whole transform.
type FormatFunc func(value any, key string, siblings node.View) (any, error)

// Spec is the rule attached to one source key. The zero value is Identity.
type Spec struct {
	kind      Kind
	key       string
	parent    string
	child     string
	formatter FormatFunc
	name      string
}

// Identity leaves key and value unchanged.
func Identity() Spec {
	return Spec{kind: KindIdentity}
}

// Rename writes the value under newKey and drops the source key.
func Rename(newKey string) Spec {
	return Spec{kind: KindRename, key: newKey}
}

// Nest moves the value to parent.child, creating the parent record on first
// use and merging into it afterwards. Only one level is supported; deeper
// structure has to be built by a formatter or by post-processing.
func Nest(parent, child string) Spec {
	return Spec{kind: KindNest, parent: parent, child: child}
}

// Format replaces the value with fn's result. The key is unchanged.
func Format(fn FormatFunc) Spec {
	return Spec{kind: KindFormat, formatter: fn, name: "func"}
}

// FormatNamed is Format with a name used in diagnostics and errors.
func FormatNamed(name string, fn FormatFunc) Spec {
	return Spec{kind: KindFormat, formatter: fn, name: name}
}

// Kind returns the variant tag.
func (s Spec) Kind() Kind { return s.kind }

// Key returns the target key of a Rename.
func (s Spec) Key() string { return s.key }

// Parent returns the container key of a Nest.
func (s Spec) Parent() string { return s.parent }

// Child returns the key inside the container of a Nest.
func (s Spec) Child() string { return s.child }

// Formatter returns the function of a Format.
func (s Spec) Formatter() FormatFunc { return s.formatter }

// FormatterName returns the name of a Format.
func (s Spec) FormatterName() string { return s.name }

// TargetKey returns the key the spec writes at the current level for a
// given source key.
func (s Spec) TargetKey(source string) string {
	switch s.kind {
	case KindRename:
		return s.key
	case KindNest:
		return s.parent
	default:
		return source
	}
}

// String renders the spec the way table files spell it.
func (s Spec) String() string {
	switch s.kind {
	case KindIdentity:
		return "identity"
	case KindRename:
		return fmt.Sprintf("rename(%s)", s.key)
	case KindNest:
		return fmt.Sprintf("nest(%s.%s)", s.parent, s.child)
	case KindFormat:
		return fmt.Sprintf("format(%s)", s.name)
	default:
		return s.kind.String()
	}
}
