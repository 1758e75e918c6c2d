// Package node defines the recursive value shared by transform input and
// output.
//
// A node is an `any` holding one of:
//   - nil
//   - bool, string
//   - a number: json.Number when decoded from JSON, int/int64/float64 otherwise
//   - []any (list)
//   - *Record (insertion-ordered string-keyed mapping)
//
// Records keep the order in which keys were first written. JSON and YAML
// decoding preserve document order, encoding writes keys in record order.
package node
