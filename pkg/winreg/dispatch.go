package winreg

import (
	"iter"
	"log/slog"

	"github.com/qraux/plaso/pkg/types"
)

// Parser runs the classification and dispatch pipeline over opened hives.
// One Parser may be reused across hives; each Parse call is an independent
// single-threaded pass.
type Parser struct {
	catalog Catalog
	opts    Options
	log     *slog.Logger
}

// NewParser builds a Parser around a plugin catalog.
func NewParser(catalog Catalog, opts Options) *Parser {
	opts.setDefaults()
	return &Parser{catalog: catalog, opts: opts, log: opts.Logger}
}

// Parse classifies the hive, builds its path cache, and returns the detected
// type, the lazy enriched event sequence, and the diagnostics collector for
// the pass. The sequence is single-use; the consumer may stop pulling at any
// point. Diagnostics fill in as the sequence is consumed.
//
// The hive handle stays owned by the caller. Structural failures of the
// artifact surface from Open before this point; Parse itself never fails.
func (p *Parser) Parse(f types.File) (types.HiveType, iter.Seq[Event], *Diagnostics) {
	ht := DetectHiveType(f)
	cache := BuildCache(f, ht)
	diags := newDiagnostics()

	weights := p.catalog.Weights()
	plugins := make([][]Plugin, len(weights))
	total := 0
	for i, w := range weights {
		plugins[i] = p.catalog.PluginsFor(w, ht)
		total += len(plugins[i])
	}
	p.log.Debug("hive classified",
		"hive", f.Name(), "type", ht.String(), "plugins", total, "session", diags.SessionID)

	seq := func(yield func(Event) bool) {
		root, ok := f.Root()
		if !ok {
			// No root key is a zero-event parse, not an error.
			return
		}
		for key := range Traverse(root) {
			if !p.dispatchKey(key, ht, plugins, cache, diags, yield) {
				return
			}
		}
	}
	return ht, seq, diags
}

// dispatchKey offers one key to the plugins in ascending weight then catalog
// order. The first non-nil result claims the key; its enriched events are
// yielded. Returns false when the consumer stopped pulling.
func (p *Parser) dispatchKey(
	key types.Key,
	ht types.HiveType,
	plugins [][]Plugin,
	cache *PathCache,
	diags *Diagnostics,
	yield func(Event) bool,
) bool {
	for _, list := range plugins {
		for _, pl := range list {
			res, err := pl.Process(key, cache)
			if err != nil {
				// Localized failure: record it and keep the key
				// eligible for the remaining plugins.
				diags.record(pl.Name(), key.Path(), err)
				p.log.Debug("plugin failed",
					"plugin", pl.Name(), "key", key.Path(), "err", err)
				continue
			}
			if res == nil {
				continue
			}
			for _, ev := range enrichEvents(res, key, ht, pl.Name()) {
				if !yield(ev) {
					return false
				}
			}
			return true
		}
	}
	return true
}

// ParseFile opens the hive at path, runs a full pass eagerly, and closes the
// hive again. It returns the detected type, all events, and the pass
// diagnostics. Open failures are the only error.
func (p *Parser) ParseFile(path string) (types.HiveType, []Event, *Diagnostics, error) {
	f, err := Open(path, p.opts)
	if err != nil {
		return types.Unknown, nil, nil, err
	}
	defer f.Close()

	ht, seq, diags := p.Parse(f)
	var events []Event
	for ev := range seq {
		events = append(events, ev)
	}
	return ht, events, diags, nil
}
