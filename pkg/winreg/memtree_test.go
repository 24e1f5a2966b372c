package winreg

import (
	"strings"
	"time"

	"github.com/qraux/plaso/pkg/types"
)

// memKey is a minimal in-memory types.Key for engine tests that do not need
// a binary hive image.
type memKey struct {
	name    string
	path    string
	offset  int64
	last    time.Time
	subkeys []*memKey
	values  []types.Value
}

func newMemKey(name string, subkeys ...*memKey) *memKey {
	k := &memKey{name: name, path: `\`, subkeys: subkeys}
	k.renumber(`\`, 4096)
	return k
}

// renumber assigns paths and distinct offsets through the subtree.
func (k *memKey) renumber(path string, offset int64) int64 {
	k.path = path
	k.offset = offset
	offset += 0x80
	for _, sub := range k.subkeys {
		child := path + `\` + sub.name
		if path == `\` {
			child = `\` + sub.name
		}
		offset = sub.renumber(child, offset)
	}
	return offset
}

func (k *memKey) Name() string         { return k.name }
func (k *memKey) Path() string         { return k.path }
func (k *memKey) Offset() int64        { return k.offset }
func (k *memKey) LastWrite() time.Time { return k.last }

func (k *memKey) Subkeys() []types.Key {
	out := make([]types.Key, len(k.subkeys))
	for i, sub := range k.subkeys {
		out[i] = sub
	}
	return out
}

func (k *memKey) Subkey(name string) (types.Key, bool) {
	for _, sub := range k.subkeys {
		if strings.EqualFold(sub.name, name) {
			return sub, true
		}
	}
	return nil, false
}

func (k *memKey) Values() []types.Value { return k.values }

func (k *memKey) Value(name string) (types.Value, bool) {
	for _, v := range k.values {
		if strings.EqualFold(v.Name(), name) {
			return v, true
		}
	}
	return nil, false
}

// memFile wraps a memKey tree as a types.File. A nil root models a hive
// without a root key.
type memFile struct {
	name string
	root *memKey
}

func (f *memFile) Name() string { return f.name }
func (f *memFile) Close() error { return nil }

func (f *memFile) Root() (types.Key, bool) {
	if f.root == nil {
		return nil, false
	}
	return f.root, true
}

func (f *memFile) KeyByPath(path string) (types.Key, bool) {
	root, ok := f.Root()
	if !ok {
		return nil, false
	}
	cur := root
	for _, seg := range strings.Split(strings.Trim(path, `\`), `\`) {
		if seg == "" {
			continue
		}
		next, found := cur.Subkey(seg)
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

var (
	_ types.Key  = (*memKey)(nil)
	_ types.File = (*memFile)(nil)
)

// stubPlugin claims keys selected by match and records every key it saw.
type stubPlugin struct {
	name   string
	match  func(types.Key) bool
	result *Result
	err    error
	seen   []string
}

func (s *stubPlugin) Name() string { return s.name }

func (s *stubPlugin) Process(key types.Key, _ *PathCache) (*Result, error) {
	s.seen = append(s.seen, key.Path())
	if s.err != nil {
		return nil, s.err
	}
	if s.match != nil && !s.match(key) {
		return nil, nil
	}
	return s.result, nil
}

// stubCatalog is a fixed weight table for dispatch tests.
type stubCatalog struct {
	weights []int
	table   map[int][]Plugin
}

func (c *stubCatalog) Weights() []int { return c.weights }

func (c *stubCatalog) PluginsFor(weight int, _ types.HiveType) []Plugin {
	return c.table[weight]
}
