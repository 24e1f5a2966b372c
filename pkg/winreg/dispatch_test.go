package winreg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qraux/plaso/internal/testhive"
	"github.com/qraux/plaso/pkg/types"
)

func collect(p *Parser, f types.File) (types.HiveType, []Event, *Diagnostics) {
	ht, seq, diags := p.Parse(f)
	var events []Event
	for ev := range seq {
		events = append(events, ev)
	}
	return ht, events, diags
}

func matchSuffix(suffix string) func(types.Key) bool {
	return func(k types.Key) bool {
		return strings.HasSuffix(strings.ToLower(k.Path()), strings.ToLower(suffix))
	}
}

func TestLowerWeightPluginWins(t *testing.T) {
	light := &stubPlugin{name: "light", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "from-light"}}}}
	heavy := &stubPlugin{name: "heavy", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "from-heavy"}}}}
	catalog := &stubCatalog{
		weights: []int{10, 20},
		table:   map[int][]Plugin{10: {light}, 20: {heavy}},
	}

	f := &memFile{name: "h", root: newMemKey("ROOT", newMemKey("Target"))}
	_, events, diags := collect(NewParser(catalog, Options{}), f)

	require.Len(t, events, 1)
	assert.Equal(t, "from-light", events[0].KeyPath)
	assert.Equal(t, "light", events[0].Plugin)
	assert.Zero(t, diags.FailureCount())

	// The claimed key is never offered to the heavier plugin.
	assert.NotContains(t, heavy.seen, `\Target`)
}

func TestCatalogOrderBreaksWeightTies(t *testing.T) {
	first := &stubPlugin{name: "first", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "first"}}}}
	second := &stubPlugin{name: "second", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "second"}}}}
	catalog := &stubCatalog{weights: []int{10}, table: map[int][]Plugin{10: {first, second}}}

	f := &memFile{name: "h", root: newMemKey("ROOT", newMemKey("Target"))}
	_, events, _ := collect(NewParser(catalog, Options{}), f)

	require.Len(t, events, 1)
	assert.Equal(t, "first", events[0].KeyPath)
}

func TestEmptyResultStillClaimsKey(t *testing.T) {
	// A non-nil result with zero events claims the key without emitting.
	silent := &stubPlugin{name: "silent", match: matchSuffix(`\Target`), result: &Result{}}
	loud := &stubPlugin{name: "loud", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "loud"}}}}
	catalog := &stubCatalog{
		weights: []int{10, 20},
		table:   map[int][]Plugin{10: {silent}, 20: {loud}},
	}

	f := &memFile{name: "h", root: newMemKey("ROOT", newMemKey("Target"))}
	_, events, _ := collect(NewParser(catalog, Options{}), f)

	assert.Empty(t, events)
	assert.NotContains(t, loud.seen, `\Target`)
}

func TestPluginFailureIsLocalized(t *testing.T) {
	boom := errors.New("boom")
	failing := &stubPlugin{name: "failing", err: boom}
	backup := &stubPlugin{name: "backup", match: matchSuffix(`\Target`),
		result: &Result{Events: []Event{{KeyPath: "rescued"}}}}
	catalog := &stubCatalog{
		weights: []int{10, 20},
		table:   map[int][]Plugin{10: {failing}, 20: {backup}},
	}

	root := newMemKey("ROOT", newMemKey("Target"), newMemKey("Other"))
	_, events, diags := collect(NewParser(catalog, Options{}), &memFile{name: "h", root: root})

	// The failing plugin never blocks later plugins or other keys.
	require.Len(t, events, 1)
	assert.Equal(t, "rescued", events[0].KeyPath)

	// Every visited key produced one recorded failure.
	assert.Equal(t, 3, diags.FailureCount())
	assert.Equal(t, "failing", diags.Failures[0].Plugin)
	assert.Equal(t, `\`, diags.Failures[0].KeyPath)
	assert.ErrorIs(t, diags.Failures[0].Err, boom)
	assert.NotEqual(t, [16]byte{}, [16]byte(diags.SessionID))
}

func TestZeroPluginsZeroEvents(t *testing.T) {
	catalog := &stubCatalog{}
	f := &memFile{name: "h", root: newMemKey("ROOT", newMemKey("A"))}

	_, events, diags := collect(NewParser(catalog, Options{}), f)
	assert.Empty(t, events)
	assert.Zero(t, diags.FailureCount())
}

func TestEnrichmentStampsProvenance(t *testing.T) {
	plugin := &stubPlugin{name: "stamped", match: matchSuffix(`\Target`),
		result: &Result{
			Events: []Event{
				{KeyPath: `\Target`},                 // offset unset
				{KeyPath: `\Target`, Offset: 0x7777}, // plugin-set offset
			},
			URLs: []string{"https://a.example", "https://b.example"},
		}}
	catalog := &stubCatalog{weights: []int{10}, table: map[int][]Plugin{10: {plugin}}}

	root := newMemKey("ROOT", newMemKey("Target"))
	_, events, _ := collect(NewParser(catalog, Options{}), &memFile{name: "h", root: root})

	require.Len(t, events, 2)
	target, _ := root.Subkey("Target")
	assert.Equal(t, target.Offset(), events[0].Offset)
	assert.Equal(t, int64(0x7777), events[1].Offset)
	for _, ev := range events {
		assert.Equal(t, "stamped", ev.Plugin)
		assert.Equal(t, "https://a.example - https://b.example", ev.URL)
	}
}

func TestEnrichEventsNeverDrops(t *testing.T) {
	res := &Result{Events: make([]Event, 5)}
	out := enrichEvents(res, newMemKey("K"), types.Software, "p")
	assert.Len(t, out, 5)
}

func TestParseEndToEndSoftwareHive(t *testing.T) {
	f := openImage(t, testhive.Key{Name: "ROOT", Subkeys: []testhive.Key{
		chain("Microsoft", "Windows", "CurrentVersion", "App Paths"),
	}})

	plugin := &stubPlugin{
		name:   "apppaths-stub",
		match:  matchSuffix(`\App Paths`),
		result: &Result{Events: []Event{{KeyPath: `App Paths`}}},
	}
	catalog := &stubCatalog{weights: []int{10}, table: map[int][]Plugin{10: {plugin}}}

	ht, events, diags := collect(NewParser(catalog, Options{}), f)
	assert.Equal(t, types.Software, ht)
	require.Len(t, events, 1)

	appPaths, ok := f.KeyByPath(`\Microsoft\Windows\CurrentVersion\App Paths`)
	require.True(t, ok)
	assert.Equal(t, appPaths.Offset(), events[0].Offset)
	assert.Equal(t, types.Software, events[0].HiveType)
	assert.Equal(t, "apppaths-stub", events[0].Plugin)
	assert.Zero(t, diags.FailureCount())
}

func TestParseEndToEndNoPlugins(t *testing.T) {
	f := openImage(t, testhive.Key{Name: "ROOT", Subkeys: []testhive.Key{
		chain("Microsoft", "Windows", "CurrentVersion", "App Paths"),
	}})

	ht, events, diags := collect(NewParser(&stubCatalog{}, Options{}), f)
	assert.Equal(t, types.Software, ht)
	assert.Empty(t, events)
	assert.Zero(t, diags.FailureCount())
}

func TestParseEndToEndNoRoot(t *testing.T) {
	plugin := &stubPlugin{name: "p", result: &Result{Events: []Event{{}}}}
	catalog := &stubCatalog{weights: []int{10}, table: map[int][]Plugin{10: {plugin}}}

	ht, events, diags := collect(NewParser(catalog, Options{}), &memFile{name: "rootless"})
	assert.Equal(t, types.Unknown, ht)
	assert.Empty(t, events)
	assert.Zero(t, diags.FailureCount())
	assert.Empty(t, plugin.seen)
}

func TestParseLazyEarlyStop(t *testing.T) {
	plugin := &stubPlugin{name: "all", result: &Result{Events: []Event{{}}}}
	catalog := &stubCatalog{weights: []int{10}, table: map[int][]Plugin{10: {plugin}}}

	root := newMemKey("ROOT", newMemKey("A"), newMemKey("B"), newMemKey("C"))
	_, seq, _ := NewParser(catalog, Options{}).Parse(&memFile{name: "h", root: root})

	pulled := 0
	for range seq {
		pulled++
		if pulled == 2 {
			break
		}
	}
	assert.Equal(t, 2, pulled)
	// Dispatch did not run ahead of the consumer.
	assert.Len(t, plugin.seen, 2)
}
