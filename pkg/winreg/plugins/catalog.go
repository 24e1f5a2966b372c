// Package plugins provides the statically registered plugin catalog and the
// concrete registry key interpreters shipped with it.
package plugins

import (
	"slices"

	"github.com/qraux/plaso/pkg/types"
	"github.com/qraux/plaso/pkg/winreg"
)

// Precedence weights. Lower weights are tried first: targeted key-centric
// interpreters, then value-centric ones, then the catch-all formatter.
const (
	WeightKeyPlugin     = 10
	WeightValuePlugin   = 20
	WeightDefaultPlugin = 30
)

type entry struct {
	plugin winreg.Plugin
	// hiveTypes limits the entry to specific hive types; empty means the
	// plugin applies to every type.
	hiveTypes []types.HiveType
}

// StaticCatalog is an explicit weight-ordered plugin table. It is populated
// before a parse and read-only afterwards.
type StaticCatalog struct {
	weights  []int
	byWeight map[int][]entry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *StaticCatalog {
	return &StaticCatalog{byWeight: make(map[int][]entry)}
}

// Register adds a plugin at the given weight. Without hive types the plugin
// applies to every hive. Registration order within a weight is preserved.
func (c *StaticCatalog) Register(weight int, p winreg.Plugin, hiveTypes ...types.HiveType) {
	if _, ok := c.byWeight[weight]; !ok {
		c.weights = append(c.weights, weight)
		slices.Sort(c.weights)
	}
	c.byWeight[weight] = append(c.byWeight[weight], entry{plugin: p, hiveTypes: hiveTypes})
}

// Weights returns the distinct registered weights in ascending order.
func (c *StaticCatalog) Weights() []int {
	return slices.Clone(c.weights)
}

// PluginsFor returns the plugins active at weight for the hive type, in
// registration order. Type-specific and any-type plugins are merged.
func (c *StaticCatalog) PluginsFor(weight int, ht types.HiveType) []winreg.Plugin {
	var out []winreg.Plugin
	for _, e := range c.byWeight[weight] {
		if len(e.hiveTypes) == 0 || slices.Contains(e.hiveTypes, ht) {
			out = append(out, e.plugin)
		}
	}
	return out
}

// Default returns the catalog with every built-in plugin registered.
func Default() *StaticCatalog {
	c := NewCatalog()
	c.Register(WeightKeyPlugin, AppPaths{}, types.Software)
	c.Register(WeightKeyPlugin, Services{}, types.System)
	c.Register(WeightValuePlugin, Run{})
	c.Register(WeightDefaultPlugin, CatchAll{})
	return c
}

var _ winreg.Catalog = (*StaticCatalog)(nil)
