// Package catalog holds the definitions of the gateway parameters managed by
// gwconfig. A Catalog is created once per run, may grow while the operator
// adds custom variables, and never shrinks.
package catalog

import (
	"fmt"
	"strings"
)

// DefaultNamespace is the path prefix of every gateway parameter
const DefaultNamespace = "/IB_Gateway/"

// Category groups parameters for the interactive editor
type Category string

const (
	Main     Category = "Main"
	Advanced Category = "Advanced"
)

// ParseCategory maps operator input to a category. Anything that is not
// "main" (case-insensitive) is Advanced.
func ParseCategory(s string) Category {
	if strings.EqualFold(strings.TrimSpace(s), string(Main)) {
		return Main
	}
	return Advanced
}

// Definition describes one named parameter
type Definition struct {
	Name        string
	Category    Category
	Description string
	Default     *string
}

// DefaultValue returns the default and whether one is defined
func (d Definition) DefaultValue() (string, bool) {
	if d.Default == nil {
		return "", false
	}
	return *d.Default, true
}

// Catalog is an ordered registry of definitions keyed by full parameter name
type Catalog struct {
	namespace string
	defs      []Definition
	index     map[string]int
}

// New creates an empty catalog for the given namespace
func New(namespace string) *Catalog {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Catalog{
		namespace: namespace,
		index:     make(map[string]int),
	}
}

// Namespace returns the path prefix applied to short names
func (c *Catalog) Namespace() string {
	return c.namespace
}

// FullName prefixes a short name with the namespace. Names that already
// start with "/" are returned unchanged.
func (c *Catalog) FullName(short string) string {
	if strings.HasPrefix(short, "/") {
		return short
	}
	return c.namespace + short
}

// Add registers a definition. Names must be unique.
func (c *Catalog) Add(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("parameter definition has no name")
	}
	if _, exists := c.index[def.Name]; exists {
		return fmt.Errorf("parameter %s is already defined", def.Name)
	}
	if def.Category == "" {
		def.Category = Advanced
	}
	c.index[def.Name] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

// Has reports whether name is defined
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Lookup returns the definition for name
func (c *Catalog) Lookup(name string) (Definition, bool) {
	i, ok := c.index[name]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Definitions returns a copy of all definitions in registration order
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Names returns the names in the given category in registration order
func (c *Catalog) Names(category Category) []string {
	var names []string
	for _, d := range c.defs {
		if d.Category == category {
			names = append(names, d.Name)
		}
	}
	return names
}
