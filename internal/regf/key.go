package regf

import (
	"strings"
	"time"

	"github.com/qraux/plaso/internal/format"
	"github.com/qraux/plaso/pkg/types"
)

// key implements types.Key over a decoded NK record. Keys are cheap views;
// the backing buffer is owned by the Hive.
type key struct {
	h    *Hive
	off  uint32 // hive-relative cell offset of the NK record
	nk   format.NKRecord
	path string
}

// keyAt decodes the NK cell at the given hive-relative offset.
func (h *Hive) keyAt(off uint32, path string) (*key, error) {
	cell, err := h.cell(off)
	if err != nil {
		return nil, err
	}
	nk, err := format.DecodeNK(cell.Data)
	if err != nil {
		return nil, wrapFormatErr(h.name, err)
	}
	return &key{h: h, off: off, nk: nk, path: path}, nil
}

func (k *key) Name() string {
	name, err := k.h.decodeName(k.nk.NameRaw, k.nk.NameIsCompressed())
	if err != nil {
		return ""
	}
	return name
}

func (k *key) Path() string { return k.path }

// Offset reports the absolute file offset of the NK cell, which is what
// downstream provenance records.
func (k *key) Offset() int64 {
	return int64(format.HeaderSize) + int64(k.off)
}

func (k *key) LastWrite() time.Time {
	return format.FiletimeToTime(k.nk.LastWriteRaw)
}

func (k *key) Subkeys() []types.Key {
	offsets := k.subkeyOffsets()
	if len(offsets) == 0 {
		return nil
	}
	out := make([]types.Key, 0, len(offsets))
	for _, off := range offsets {
		child, err := k.h.keyAt(off, "")
		if err != nil {
			// Skip children we can't decode; the rest of the tree is
			// still navigable.
			continue
		}
		child.path = childPath(k.path, child.Name())
		out = append(out, child)
	}
	return out
}

func (k *key) Subkey(name string) (types.Key, bool) {
	for _, off := range k.subkeyOffsets() {
		child, err := k.h.keyAt(off, "")
		if err != nil {
			continue
		}
		if strings.EqualFold(child.Name(), name) {
			child.path = childPath(k.path, child.Name())
			return child, true
		}
	}
	return nil, false
}

func (k *key) subkeyOffsets() []uint32 {
	if k.nk.SubkeyCount == 0 || k.nk.SubkeyListOffset == format.InvalidOffset {
		return nil
	}
	list, err := k.h.subkeyList(k.nk.SubkeyListOffset, k.nk.SubkeyCount)
	if err != nil {
		return nil
	}
	return list
}

func (k *key) Values() []types.Value {
	offsets := k.valueOffsets()
	if len(offsets) == 0 {
		return nil
	}
	out := make([]types.Value, 0, len(offsets))
	for _, off := range offsets {
		v, err := k.h.valueAt(off)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (k *key) Value(name string) (types.Value, bool) {
	for _, off := range k.valueOffsets() {
		v, err := k.h.valueAt(off)
		if err != nil {
			continue
		}
		if strings.EqualFold(v.Name(), name) {
			return v, true
		}
	}
	return nil, false
}

func (k *key) valueOffsets() []uint32 {
	if k.nk.ValueCount == 0 || k.nk.ValueListOffset == format.InvalidOffset {
		return nil
	}
	cell, err := k.h.cell(k.nk.ValueListOffset)
	if err != nil {
		return nil
	}
	list, err := format.DecodeValueList(cell.Data, k.nk.ValueCount)
	if err != nil {
		return nil
	}
	out := list[:0]
	for _, off := range list {
		if off != 0 && off != format.InvalidOffset {
			out = append(out, off)
		}
	}
	return out
}

func childPath(parent, name string) string {
	if parent == `\` || parent == "" {
		return `\` + name
	}
	return parent + `\` + name
}

// splitPath splits a backslash-delimited key path into segments. Backslash
// is the only separator; forward slashes are legal inside key names.
func splitPath(path string) []string {
	path = strings.Trim(path, `\`)
	if path == "" {
		return nil
	}
	parts := strings.Split(path, `\`)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ types.Key = (*key)(nil)
