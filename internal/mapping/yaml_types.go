package mapping

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagNest   = "!nest"
	tagFormat = "!format"
	tagNull   = "!!null"
)

// UnmarshalYAML implements custom YAML unmarshaling for TargetMap.
// Key order and repeated keys are preserved.
func (m *TargetMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: map must be a mapping of source keys to targets", node.Line)
	}

	var defs TargetMap

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: source key must be a scalar", keyNode.Line)
		}

		targets, err := parseTargets(keyNode.Value, valueNode, true)
		if err != nil {
			return err
		}

		defs = append(defs, targets...)
	}

	*m = defs

	return nil
}

// parseTargets decodes the value side of one map entry.
func parseTargets(source string, node *yaml.Node, allowList bool) ([]TargetDef, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		def, err := parseScalarTarget(source, node)
		if err != nil {
			return nil, err
		}

		return []TargetDef{def}, nil

	case yaml.MappingNode:
		def, err := parseNestTarget(source, node)
		if err != nil {
			return nil, err
		}

		return []TargetDef{def}, nil

	case yaml.SequenceNode:
		if !allowList {
			return nil, fmt.Errorf("line %d: %s: target lists cannot be nested", node.Line, source)
		}

		var defs []TargetDef

		for _, item := range node.Content {
			items, err := parseTargets(source, item, false)
			if err != nil {
				return nil, err
			}

			defs = append(defs, items...)
		}

		return defs, nil

	case yaml.AliasNode:
		return parseTargets(source, node.Alias, allowList)

	default:
		return nil, fmt.Errorf("line %d: %s: expected string, map, or list target", node.Line, source)
	}
}

// parseScalarTarget handles identity, rename and the !nest / !format tags.
func parseScalarTarget(source string, node *yaml.Node) (TargetDef, error) {
	def := TargetDef{Source: source, Line: node.Line}

	switch node.Tag {
	case tagNest:
		spec, err := ParseNest(strings.TrimSpace(node.Value))
		if err != nil {
			return def, fmt.Errorf("line %d: %s: %w", node.Line, source, err)
		}

		def.Kind = KindNest
		def.Parent, def.Child = spec.Parent(), spec.Child()

		return def, nil

	case tagFormat:
		name := strings.TrimSpace(node.Value)
		if name == "" {
			return def, fmt.Errorf("line %d: %s: !format needs a formatter name", node.Line, source)
		}

		def.Kind = KindFormat
		def.Formatter = name

		return def, nil

	case tagNull:
		def.Kind = KindIdentity
		return def, nil
	}

	if strings.HasPrefix(node.Tag, "!") && !strings.HasPrefix(node.Tag, "!!") {
		return def, fmt.Errorf("line %d: %s: unknown tag %s", node.Line, source, node.Tag)
	}

	if node.Value == "" || node.Value == source {
		def.Kind = KindIdentity
		return def, nil
	}

	def.Kind = KindRename
	def.Key = node.Value

	return def, nil
}

// parseNestTarget decodes {parent: child}. A nested map such as
// {target: {region: id}} is kept as parent "target", child "region.id" and
// rejected later as too deep.
func parseNestTarget(source string, node *yaml.Node) (TargetDef, error) {
	def := TargetDef{Source: source, Kind: KindNest, Line: node.Line}

	if len(node.Content) != 2 {
		return def, fmt.Errorf("line %d: %s: expected single key-value map like {state: name}", node.Line, source)
	}

	parentNode, childNode := node.Content[0], node.Content[1]
	if parentNode.Kind != yaml.ScalarNode {
		return def, fmt.Errorf("line %d: %s: nest parent must be a scalar", parentNode.Line, source)
	}

	child, err := childPath(childNode)
	if err != nil {
		return def, fmt.Errorf("line %d: %s: %w", childNode.Line, source, err)
	}

	def.Parent = parentNode.Value
	def.Child = child

	return def, nil
}

func childPath(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.MappingNode:
		if len(node.Content) != 2 || node.Content[0].Kind != yaml.ScalarNode {
			return "", errors.New("expected single key-value map")
		}

		rest, err := childPath(node.Content[1])
		if err != nil {
			return "", err
		}

		return node.Content[0].Value + "." + rest, nil
	default:
		return "", errors.New("nest child must be a string")
	}
}

// Spec converts the declaration into a Spec, resolving formatter names
// against reg. ok is false when the formatter is unknown.
func (d TargetDef) Spec(reg *FormatterRegistry) (Spec, bool) {
	switch d.Kind {
	case KindRename:
		return Rename(d.Key), true
	case KindNest:
		return Nest(d.Parent, d.Child), true
	case KindFormat:
		if reg == nil {
			return Spec{}, false
		}

		return reg.Spec(d.Formatter)
	default:
		return Identity(), true
	}
}
