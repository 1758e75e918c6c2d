package mapping

import (
	"errors"
	"fmt"
	"strings"

	"response-mapper/internal/match"
)

// Catalog looks mapping tables up by entity type name.
type Catalog struct {
	tables map[string]*Table
	order  []string
}

// NewCatalog builds a catalog. Table names must be unique.
func NewCatalog(tables ...*Table) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]*Table, len(tables))}

	var dups []string

	for _, t := range tables {
		if _, exists := c.tables[t.Name()]; exists {
			dups = append(dups, t.Name())
			continue
		}

		c.tables[t.Name()] = t
		c.order = append(c.order, t.Name())
	}

	if len(dups) > 0 {
		return nil, fmt.Errorf("duplicate mapping tables: %s", strings.Join(dups, ", "))
	}

	return c, nil
}

// With returns a new catalog holding c's tables plus tables. A table with
// the name of an existing one replaces it in place.
func (c *Catalog) With(tables ...*Table) *Catalog {
	out := &Catalog{tables: make(map[string]*Table, len(c.tables)+len(tables))}

	for _, name := range c.order {
		out.tables[name] = c.tables[name]
		out.order = append(out.order, name)
	}

	for _, t := range tables {
		if _, exists := out.tables[t.Name()]; !exists {
			out.order = append(out.order, t.Name())
		}

		out.tables[t.Name()] = t
	}

	return out
}

// Get returns the table registered for name.
func (c *Catalog) Get(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Lookup is Get with a descriptive error, including near-miss names.
func (c *Catalog) Lookup(name string) (*Table, error) {
	if t, ok := c.tables[name]; ok {
		return t, nil
	}

	msg := fmt.Sprintf("no mapping table for %q", name)
	if s := match.Suggest(name, c.order, 3); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}

	return nil, errors.New(msg)
}

// Names returns the table names in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Tables returns the tables in registration order.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tables[name])
	}

	return out
}
