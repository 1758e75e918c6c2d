package mapping

import (
	"fmt"
	"sort"
	"sync"
)

// FormatterRegistry maps formatter names used in table files to functions.
// It is safe for concurrent use; registration normally happens once at
// start-up.
type FormatterRegistry struct {
	mu         sync.RWMutex
	formatters map[string]FormatFunc
}

// NewFormatterRegistry creates a new empty registry.
func NewFormatterRegistry() *FormatterRegistry {
	return &FormatterRegistry{
		formatters: make(map[string]FormatFunc),
	}
}

// Register adds fn under name. Names are unique.
func (r *FormatterRegistry) Register(name string, fn FormatFunc) error {
	if name == "" {
		return fmt.Errorf("formatter name must not be empty")
	}

	if fn == nil {
		return fmt.Errorf("formatter %q: nil function", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[name]; exists {
		return fmt.Errorf("formatter %q already registered", name)
	}

	r.formatters[name] = fn

	return nil
}

// MustRegister is Register that panics on error.
func (r *FormatterRegistry) MustRegister(name string, fn FormatFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get returns the formatter registered under name.
func (r *FormatterRegistry) Get(name string) (FormatFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.formatters[name]

	return fn, ok
}

// Has returns true if a formatter with the given name exists.
func (r *FormatterRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Spec returns a Format spec bound to the named formatter.
func (r *FormatterRegistry) Spec(name string) (Spec, bool) {
	fn, ok := r.Get(name)
	if !ok {
		return Spec{}, false
	}

	return FormatNamed(name, fn), true
}

// Names returns all formatter names, sorted.
func (r *FormatterRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
