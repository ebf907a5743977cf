// Package conflict finds items sharing a key across groups, caching
// lookups so repeated checks against an unchanged configuration stay
// cheap.
package conflict

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/thoreinstein/shtick/internal/config"
	"github.com/thoreinstein/shtick/internal/errors"
)

type cacheKey struct {
	itemType config.ItemType
	key      string
}

// Checker answers which groups define a given (type, key) pair. Results
// are cached in a bounded LRU; callers invalidate after any
// configuration mutation.
type Checker struct {
	cache *lru.Cache[cacheKey, []string]

	hits          int64
	misses        int64
	invalidations int64
}

// Stats is a snapshot of the checker's cache counters.
type Stats struct {
	Hits          int64
	Misses        int64
	Invalidations int64
	Entries       int
}

// NewChecker returns a checker whose cache holds at most size entries.
func NewChecker(size int) (*Checker, error) {
	cache, err := lru.New[cacheKey, []string](size)
	if err != nil {
		return nil, errors.Wrap(err, "creating conflict cache")
	}
	return &Checker{cache: cache}, nil
}

// FindConflicts returns the names of every group defining (t, key),
// the persistent group first and the rest in lexicographic order.
func (c *Checker) FindConflicts(cfg *config.Configuration, t config.ItemType, key string) []string {
	ck := cacheKey{itemType: t, key: key}
	if groups, ok := c.cache.Get(ck); ok {
		c.hits++
		return append([]string(nil), groups...)
	}
	c.misses++

	var groups []string
	for _, g := range cfg.Groups() {
		if _, ok := g.Mapping(t)[key]; ok {
			groups = append(groups, g.Name)
		}
	}
	c.cache.Add(ck, groups)
	return append([]string(nil), groups...)
}

// Warnings renders the user-facing messages for adding (t, key) to the
// target group: one when the add would overwrite the target's existing
// value, and one per other group already defining the same key.
func (c *Checker) Warnings(cfg *config.Configuration, t config.ItemType, key, target string) []string {
	var warnings []string
	if existing, ok := cfg.Value(target, t, key); ok {
		warnings = append(warnings, fmt.Sprintf(
			"will overwrite existing %s %q = %q in group %q", t.Label(), key, existing, target))
	}
	for _, name := range c.FindConflicts(cfg, t, key) {
		if name == target {
			continue
		}
		value, _ := cfg.Value(name, t, key)
		warnings = append(warnings, fmt.Sprintf(
			"%s %q also exists in group %q = %q", t.Label(), key, name, value))
	}
	return warnings
}

// Invalidate purges every cached result. Call after any mutation that
// can change which groups define a key.
func (c *Checker) Invalidate() {
	c.cache.Purge()
	c.invalidations++
}

// Stats returns the current counter values.
func (c *Checker) Stats() Stats {
	return Stats{
		Hits:          c.hits,
		Misses:        c.misses,
		Invalidations: c.invalidations,
		Entries:       c.cache.Len(),
	}
}
