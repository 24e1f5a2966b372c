package winreg

import (
	"fmt"

	gocache "github.com/patrickmn/go-cache"

	"github.com/qraux/plaso/pkg/types"
)

// Cache entry names. Plugins look entries up by these; a missing entry means
// the lookup failed at build time and must be tolerated.
const (
	// CacheCurrentControlSet holds the resolved control set path of a
	// SYSTEM hive, e.g. `\ControlSet001`.
	CacheCurrentControlSet = "current_control_set"
)

// PathCache holds per-hive precomputed key lookups. It is built once before
// traversal and read-only afterwards.
type PathCache struct {
	store *gocache.Cache
}

// BuildCache performs the type-specific lookups plugins need repeatedly.
// Unresolvable paths are simply left out of the cache.
func BuildCache(f types.File, ht types.HiveType) *PathCache {
	c := &PathCache{store: gocache.New(gocache.NoExpiration, 0)}
	if ht == types.System {
		if path, ok := resolveCurrentControlSet(f); ok {
			c.store.Set(CacheCurrentControlSet, path, gocache.NoExpiration)
		}
	}
	return c
}

// Get returns a cached entry by name.
func (c *PathCache) Get(name string) (string, bool) {
	if c == nil || c.store == nil {
		return "", false
	}
	v, ok := c.store.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// CurrentControlSet returns the control set path resolved for a SYSTEM hive.
func (c *PathCache) CurrentControlSet() (string, bool) {
	return c.Get(CacheCurrentControlSet)
}

// resolveCurrentControlSet reads the Select key's Current value and maps it
// to the matching ControlSetNNN path.
func resolveCurrentControlSet(f types.File) (string, bool) {
	sel, ok := f.KeyByPath(`\Select`)
	if !ok {
		return "", false
	}
	v, ok := sel.Value("Current")
	if !ok {
		return "", false
	}
	current, err := v.AsDWORD()
	if err != nil || current == 0 {
		return "", false
	}
	path := fmt.Sprintf(`\ControlSet%03d`, current)
	if _, ok := f.KeyByPath(path); !ok {
		return "", false
	}
	return path, true
}
