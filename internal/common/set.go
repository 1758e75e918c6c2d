package common

// Set is a string set that remembers nothing about order.
type Set map[string]struct{}

// NewSet returns a set holding keys.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}

	return s
}

// Add inserts k.
func (s Set) Add(k string) {
	s[k] = struct{}{}
}

// Has reports whether k is present.
func (s Set) Has(k string) bool {
	_, ok := s[k]
	return ok
}
