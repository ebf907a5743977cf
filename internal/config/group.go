package config

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// PersistentGroup is the reserved group that is always present and
// implicitly active. It cannot be renamed, removed, activated, or
// deactivated.
const PersistentGroup = "persistent"

// Structural errors shared by group operations.
var (
	// ErrReservedGroup indicates an attempt to mutate the persistent
	// group's existence or activation.
	ErrReservedGroup = errors.New("the persistent group is reserved")

	// ErrNoSuchGroup indicates a reference to an undefined group.
	ErrNoSuchGroup = errors.New("no such group")

	// ErrDuplicateGroup indicates a name collision on create or rename.
	ErrDuplicateGroup = errors.New("group already exists")
)

// Group is a named collection of aliases, environment variables, and
// shell functions that activate and deactivate together.
type Group struct {
	Name        string
	Description string
	Aliases     map[string]string
	EnvVars     map[string]string
	Functions   map[string]string
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{
		Name:      name,
		Aliases:   make(map[string]string),
		EnvVars:   make(map[string]string),
		Functions: make(map[string]string),
	}
}

// Mapping returns the key/value map holding items of the given type,
// allocating it if needed. Returns nil for unknown types.
func (g *Group) Mapping(t ItemType) map[string]string {
	switch t {
	case TypeAlias:
		if g.Aliases == nil {
			g.Aliases = make(map[string]string)
		}
		return g.Aliases
	case TypeEnvVar:
		if g.EnvVars == nil {
			g.EnvVars = make(map[string]string)
		}
		return g.EnvVars
	case TypeFunction:
		if g.Functions == nil {
			g.Functions = make(map[string]string)
		}
		return g.Functions
	}
	return nil
}

// Items returns the group's items of one type sorted by key.
func (g *Group) Items(t ItemType) []Item {
	m := g.Mapping(t)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, Item{Type: t, Key: k, Value: m[k]})
	}
	return items
}

// AllItems returns every item in the group, by type in rendering order
// and sorted by key within each type.
func (g *Group) AllItems() []Item {
	var items []Item
	for _, t := range Types() {
		items = append(items, g.Items(t)...)
	}
	return items
}

// ItemCount returns the number of items across all types.
func (g *Group) ItemCount() int {
	return len(g.Aliases) + len(g.EnvVars) + len(g.Functions)
}

// Empty reports whether the group holds no items.
func (g *Group) Empty() bool {
	return g.ItemCount() == 0
}
