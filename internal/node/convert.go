package node

// ToGo converts nodes into plain Go values: records become map[string]any.
// Order is lost; use it for comparisons and interop only.
func ToGo(v any) any {
	switch t := v.(type) {
	case *Record:
		if t == nil {
			return nil
		}

		m := make(map[string]any, t.Len())
		for k, e := range t.All() {
			m[k] = ToGo(e)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToGo(e)
		}
		return out
	default:
		return v
	}
}
