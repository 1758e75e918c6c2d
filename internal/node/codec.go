package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON document into nodes, keeping object key order.
// Numbers are kept as json.Number so large IDs survive unchanged.
func DecodeJSON(data []byte) (any, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ReadJSON is DecodeJSON over a reader. The reader must hold exactly one
// JSON value.
func ReadJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode JSON: unexpected data after top-level value")
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		// string, json.Number, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		r := NewRecord()

		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", kt)
			}

			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}

			r.Set(key, v)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return r, nil
	case '[':
		list := []any{}

		for dec.More() {
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", len(list), err)
			}

			list = append(list, v)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return list, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// MarshalJSON writes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true
	for k, v := range r.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		kb, err := marshalRaw(k)
		if err != nil {
			return nil, err
		}

		vb, err := marshalRaw(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshalRaw is json.Marshal without HTML escaping, so nested records
// render the same way EncodeJSON renders the top level.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeJSON writes v followed by a newline. A non-empty indent
// pretty-prints.
func EncodeJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent != "" {
		enc.SetIndent("", indent)
	}

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// DecodeYAML decodes a YAML document into nodes, keeping mapping order.
// An empty document decodes to nil.
func DecodeYAML(data []byte) (any, error) {
	var doc yaml.Node

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}

	if doc.Kind == 0 {
		return nil, nil
	}

	return fromYAML(&doc)
}

func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}

		return fromYAML(n.Content[0])
	case yaml.MappingNode:
		r := NewRecord()

		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}

			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}

			r.Set(k.Value, v)
		}

		return r, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))

		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
	}
}

// MarshalYAML renders the record as a YAML mapping in key order.
func (r *Record) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for k, v := range r.All() {
		var vn yaml.Node
		if err := vn.Encode(v); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}

		out.Content = append(out.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&vn,
		)
	}

	return out, nil
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return enc.Close()
}
