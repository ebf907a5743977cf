// Package config holds the shtick group configuration: the data model
// for groups of aliases, environment variables, and shell functions,
// plus the TOML store that persists them.
package config

import (
	"sort"
	"strings"
)

// Configuration is the complete set of groups, keyed by case-sensitive
// unique name. The persistent group is always present.
type Configuration struct {
	groups map[string]*Group
}

// New returns a configuration containing only the persistent group.
func New() *Configuration {
	c := &Configuration{groups: make(map[string]*Group)}
	c.groups[PersistentGroup] = NewGroup(PersistentGroup)
	return c
}

// Group returns the named group.
func (c *Configuration) Group(name string) (*Group, bool) {
	g, ok := c.groups[name]
	return g, ok
}

// HasGroup reports whether the named group exists.
func (c *Configuration) HasGroup(name string) bool {
	_, ok := c.groups[name]
	return ok
}

// EnsureGroup returns the named group, creating it empty if absent.
func (c *Configuration) EnsureGroup(name string) *Group {
	if g, ok := c.groups[name]; ok {
		return g
	}
	g := NewGroup(name)
	c.groups[name] = g
	return g
}

// Groups returns all groups, persistent first, the rest sorted by name.
func (c *Configuration) Groups() []*Group {
	groups := make([]*Group, 0, len(c.groups))
	if p, ok := c.groups[PersistentGroup]; ok {
		groups = append(groups, p)
	}
	groups = append(groups, c.RegularGroups()...)
	return groups
}

// GroupNames returns all group names in Groups() order.
func (c *Configuration) GroupNames() []string {
	groups := c.Groups()
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

// RegularGroups returns all non-persistent groups sorted by name.
func (c *Configuration) RegularGroups() []*Group {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		if name != PersistentGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	groups := make([]*Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, c.groups[name])
	}
	return groups
}

// GroupCount returns the number of groups including persistent.
func (c *Configuration) GroupCount() int {
	return len(c.groups)
}

// TotalItems returns the number of items across all groups.
func (c *Configuration) TotalItems() int {
	total := 0
	for _, g := range c.groups {
		total += g.ItemCount()
	}
	return total
}

// AddItem stores an item in the named group, creating the group lazily.
// An existing item with the same type and key is overwritten.
func (c *Configuration) AddItem(group string, item Item) {
	g := c.EnsureGroup(group)
	g.Mapping(item.Type)[item.Key] = item.Value
}

// RemoveItem deletes an item and reports whether it existed. Removing
// the last item of a group keeps the group itself.
func (c *Configuration) RemoveItem(group string, t ItemType, key string) bool {
	g, ok := c.groups[group]
	if !ok {
		return false
	}
	m := g.Mapping(t)
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

// HasItem reports whether the named group holds an item of the given
// type and key.
func (c *Configuration) HasItem(group string, t ItemType, key string) bool {
	_, ok := c.Value(group, t, key)
	return ok
}

// Value returns the value of an item.
func (c *Configuration) Value(group string, t ItemType, key string) (string, bool) {
	g, ok := c.groups[group]
	if !ok {
		return "", false
	}
	v, ok := g.Mapping(t)[key]
	return v, ok
}

// Items returns the named group's items of one type sorted by key.
// A missing group yields an empty slice.
func (c *Configuration) Items(group string, t ItemType) []Item {
	g, ok := c.groups[group]
	if !ok {
		return nil
	}
	return g.Items(t)
}

// RemoveGroup deletes a group and reports whether it existed.
// Callers enforce the persistent reservation.
func (c *Configuration) RemoveGroup(name string) bool {
	if _, ok := c.groups[name]; !ok {
		return false
	}
	delete(c.groups, name)
	return true
}

// RenameGroup moves a group to a new name. It reports false when the
// old name is missing or the new name is taken.
// Callers enforce the persistent reservation.
func (c *Configuration) RenameGroup(oldName, newName string) bool {
	g, ok := c.groups[oldName]
	if !ok {
		return false
	}
	if _, taken := c.groups[newName]; taken {
		return false
	}
	delete(c.groups, oldName)
	g.Name = newName
	c.groups[newName] = g
	return true
}

// Match pairs an item with the group containing it.
type Match struct {
	Group string
	Item  Item
}

// FindItems returns items whose key contains substring
// (case-insensitive). A non-empty group or type narrows the search; an
// empty substring matches everything. Results follow Groups() order,
// then type rendering order, then key.
func (c *Configuration) FindItems(t ItemType, group, substring string) []Match {
	needle := strings.ToLower(substring)

	var matches []Match
	for _, g := range c.Groups() {
		if group != "" && g.Name != group {
			continue
		}
		for _, typ := range Types() {
			if t != "" && typ != t {
				continue
			}
			for _, item := range g.Items(typ) {
				if needle == "" || strings.Contains(strings.ToLower(item.Key), needle) {
					matches = append(matches, Match{Group: g.Name, Item: item})
				}
			}
		}
	}
	return matches
}
