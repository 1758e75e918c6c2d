package node

import (
	"iter"
	"strconv"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// View is read-only access to a record level. Formatters receive the
// current level through it.
type View interface {
	Get(key string) (any, bool)
	Has(key string) bool
	Keys() []string
	Len() int
}

// Record is an insertion-ordered mapping from string keys to nodes.
// The zero value is not usable; use NewRecord.
type Record struct {
	entries *sequencedmap.Map[string, any]
}

var _ View = (*Record)(nil)

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{entries: sequencedmap.New[string, any]()}
}

// RecordOf builds a record from alternating key, value arguments.
// It panics on an odd argument count or a non-string key; it is meant for
// literals in code and tests.
func RecordOf(kv ...any) *Record {
	if len(kv)%2 != 0 {
		panic("node.RecordOf: odd number of arguments")
	}

	r := NewRecord()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("node.RecordOf: key at position " + strconv.Itoa(i) + " is not a string")
		}

		r.Set(k, kv[i+1])
	}

	return r
}

// Len returns the number of keys. A nil record has length 0.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}

	return r.entries.Len()
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}

	return r.entries.Get(key)
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set writes value under key. An existing key keeps its position.
func (r *Record) Set(key string, value any) {
	r.entries.Set(key, value)
}

// Delete removes key. Re-adding it later appends it at the end.
func (r *Record) Delete(key string) {
	if r.Has(key) {
		r.entries.Delete(key)
	}
}

// Keys returns a snapshot of the keys in order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	for k := range r.All() {
		keys = append(keys, k)
	}

	return keys
}

// All iterates over the entries in order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r == nil {
			return
		}

		for k, v := range r.entries.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	out := NewRecord()
	for k, v := range r.All() {
		out.Set(k, Clone(v))
	}

	return out
}

// Clone deep-copies records and lists; scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			return t
		}
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}
