package lathe

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lathehq/lathe/graph"
	"golang.org/x/exp/maps"
)

// Catalog maps node kinds to their definitions. Hosts register every
// operator they ship once at startup and instantiate nodes from the catalog
// from then on, so all nodes of a kind share one pin layout and one set of
// parameter defaults.
type Catalog struct {
	defs map[string]graph.Definition
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]graph.Definition)}
}

// Register adds a definition under its kind. Kinds are unique; registering
// the same kind twice is an error.
func (c *Catalog) Register(def graph.Definition) error {
	if def.Kind == "" {
		return fmt.Errorf("%w: empty kind", ErrBadDefinition)
	}
	if _, ok := c.defs[def.Kind]; ok {
		return fmt.Errorf("%w: %s", ErrKindExists, def.Kind)
	}
	c.defs[def.Kind] = def
	return nil
}

// MustRegister registers a definition, panicking on error. Meant for
// registering built-in operators at startup.
func (c *Catalog) MustRegister(def graph.Definition) {
	if err := c.Register(def); err != nil {
		panic(err)
	}
}

// Definition looks up a kind.
func (c *Catalog) Definition(kind string) (graph.Definition, bool) {
	def, ok := c.defs[kind]
	return def, ok
}

// Kinds returns all registered kinds, sorted.
func (c *Catalog) Kinds() []string {
	kinds := maps.Keys(c.defs)
	slices.Sort(kinds)
	return kinds
}

var (
	ErrKindExists    = errors.New("node kind already registered")
	ErrBadDefinition = errors.New("invalid node definition")
)
