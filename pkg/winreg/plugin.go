package winreg

import (
	"time"

	"github.com/qraux/plaso/pkg/types"
)

// TimestampDescModification labels events timestamped with a key's last
// write time.
const TimestampDescModification = "Content Modification Time"

// Event is one interpreted record produced by a plugin. The engine
// guarantees Offset, HiveType, and Plugin are populated by the time an event
// reaches the consumer; everything else is plugin-defined.
type Event struct {
	Timestamp     time.Time
	TimestampDesc string
	KeyPath       string
	Attributes    map[string]string

	// Offset is the absolute file offset of the originating data. Zero
	// means the plugin left it unset and the engine fills in the key
	// offset during enrichment.
	Offset   int64
	HiveType types.HiveType
	Plugin   string
	URL      string
}

// Result is what a plugin returns for a key it recognizes. A nil *Result
// declines the key. A non-nil Result with zero events still claims the key:
// no further plugin is tried for it.
type Result struct {
	Events []Event

	// URLs document the interpreted artifact. During enrichment they are
	// joined with " - " onto every event of this result.
	URLs []string
}

// Plugin interprets individual registry keys.
type Plugin interface {
	// Name identifies the plugin on emitted events and diagnostics.
	Name() string

	// Process inspects key and returns nil to decline it, a Result to
	// claim it, or an error for a localized failure. The cache is the
	// per-hive PathCache and may lack entries.
	Process(key types.Key, cache *PathCache) (*Result, error)
}

// Catalog supplies the plugins active for a parse. Implementations are
// read-only during a pass.
type Catalog interface {
	// Weights returns the distinct precedence weights in ascending order.
	Weights() []int

	// PluginsFor returns the plugins active at a weight for the given hive
	// type, in stable declared order. The engine never re-sorts the list.
	PluginsFor(weight int, ht types.HiveType) []Plugin
}
