package node

import (
	"encoding/json"
	"strconv"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind classifies a node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindRecord
	KindOther
)

// KindOf classifies v. Values outside the node model report KindOther.
func KindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindList
	case *Record:
		if t == nil {
			return KindNull
		}
		return KindRecord
	default:
		return KindOther
	}
}

// IsAssoc reports whether v is a record the engine may descend into: a
// non-empty record whose keys are not the sequential indexes "0".."n-1".
// Empty records and index-keyed records are leaves.
func IsAssoc(v any) bool {
	r, ok := v.(*Record)
	if !ok || r.Len() == 0 {
		return false
	}

	i := 0
	for k := range r.All() {
		if k != strconv.Itoa(i) {
			return true
		}
		i++
	}

	return false
}
