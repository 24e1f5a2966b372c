// Package regf provides the concrete types.File implementation over raw REGF
// bytes. The exported entry points are used by the public winreg package to
// obtain a navigable key tree without exposing the parsing machinery directly.
package regf

import (
	"errors"
	"fmt"
	"sort"

	"github.com/qraux/plaso/internal/format"
	"github.com/qraux/plaso/internal/mmfile"
	"github.com/qraux/plaso/pkg/types"
)

// Options controls how a hive is opened.
type Options struct {
	// Codepage names the 8-bit encoding used for compressed key and value
	// names. Empty means cp1252.
	Codepage string

	// MaxCellSize caps the size of any single cell; 0 means the default
	// 64 MiB safeguard.
	MaxCellSize int
}

const defaultMaxCellSize = 64 << 20

// Hive is an opened registry hive backed by a read-only byte buffer.
type Hive struct {
	name   string
	buf    []byte
	unmap  func() error
	head   format.Header
	opts   Options
	dec    *codepageDecoder
	hbins  []hbinEntry
	closed bool
}

// hbinEntry stores HBIN position for bounds checks during cell resolution.
type hbinEntry struct {
	offset int // absolute offset in the file (including REGF header)
	size   int // total HBIN size including header
}

// Open maps the hive at path and returns a navigable Hive.
func Open(path string, opts Options) (*Hive, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindState, Msg: fmt.Sprintf("open hive %s", path), Err: err}
	}
	h, err := newHive(path, data, unmap, opts)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	return h, nil
}

// OpenBytes creates a Hive backed by the provided buffer. name is used in
// error messages only.
func OpenBytes(name string, b []byte, opts Options) (*Hive, error) {
	return newHive(name, b, nil, opts)
}

func newHive(name string, b []byte, unmap func() error, opts Options) (*Hive, error) {
	head, err := format.ParseHeader(b)
	if err != nil {
		return nil, wrapFormatErr(name, err)
	}
	if opts.MaxCellSize <= 0 {
		opts.MaxCellSize = defaultMaxCellSize
	}
	dec, err := newCodepageDecoder(opts.Codepage)
	if err != nil {
		return nil, err
	}

	h := &Hive{
		name:  name,
		buf:   b,
		unmap: unmap,
		head:  head,
		opts:  opts,
		dec:   dec,
	}

	// Validate the HBIN chain up front so a structurally broken hive fails
	// before any traversal starts.
	if err := h.indexHBINs(); err != nil {
		return nil, err
	}
	return h, nil
}

// indexHBINs walks the HBIN chain once, validating headers and recording
// positions for later cell bounds checks.
func (h *Hive) indexHBINs() error {
	offset := format.HeaderSize
	dataEnd := format.HeaderSize + int(h.head.HiveBinsDataSize)
	if dataEnd > len(h.buf) {
		dataEnd = len(h.buf)
	}
	for offset < dataEnd {
		hbin, next, err := format.NextHBIN(h.buf, offset)
		if err != nil {
			return wrapFormatErr(h.name, err)
		}
		h.hbins = append(h.hbins, hbinEntry{offset: offset, size: int(hbin.Size)})
		if next <= offset {
			return &types.Error{
				Kind: types.ErrKindCorrupt,
				Msg:  fmt.Sprintf("%s: hbin iteration failed to advance", h.name),
				Err:  types.ErrCorrupt,
			}
		}
		offset = next
	}
	return nil
}

// Name returns the artifact name supplied at open time.
func (h *Hive) Name() string { return h.name }

// Info exposes header fields for informational output.
func (h *Hive) Info() format.Header { return h.head }

// Close releases the underlying mapping.
func (h *Hive) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.unmap != nil {
		return h.unmap()
	}
	return nil
}

// Root returns the root key, or ok=false when the hive has none.
func (h *Hive) Root() (types.Key, bool) {
	if h.closed || h.head.RootCellOffset == format.InvalidOffset {
		return nil, false
	}
	k, err := h.keyAt(h.head.RootCellOffset, `\`)
	if err != nil {
		return nil, false
	}
	return k, true
}

// KeyByPath resolves a backslash-delimited path from the root.
func (h *Hive) KeyByPath(path string) (types.Key, bool) {
	root, ok := h.Root()
	if !ok {
		return nil, false
	}
	segments := splitPath(path)
	cur := root
	for _, seg := range segments {
		next, found := cur.Subkey(seg)
		if !found {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// cell resolves the cell at the given hive-relative offset.
func (h *Hive) cell(offset uint32) (format.Cell, error) {
	abs := format.HeaderSize + int(offset)
	if abs < format.HeaderSize || abs >= len(h.buf) || !h.inHBIN(abs) {
		return format.Cell{}, &types.Error{
			Kind: types.ErrKindFormat,
			Msg:  fmt.Sprintf("cell offset %d out of range", offset),
			Err:  types.ErrCorrupt,
		}
	}
	cell, err := format.ParseCell(h.buf[abs:])
	if err != nil {
		return format.Cell{}, wrapFormatErr(h.name, err)
	}
	if cell.Size > h.opts.MaxCellSize {
		return format.Cell{}, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  "cell exceeds MaxCellSize",
			Err:  types.ErrCorrupt,
		}
	}
	cell.Offset = abs
	return cell, nil
}

// inHBIN reports whether abs falls inside the data region of a validated
// HBIN, i.e. past its header and before its end.
func (h *Hive) inHBIN(abs int) bool {
	i := sort.Search(len(h.hbins), func(i int) bool {
		return h.hbins[i].offset+h.hbins[i].size > abs
	})
	if i >= len(h.hbins) {
		return false
	}
	return abs >= h.hbins[i].offset+format.HBINHeaderSize
}

// maxListDepth bounds RI indirection. The format only legitimately nests an
// RI list above LF/LH/LI lists, so anything deeper is a crafted loop.
const maxListDepth = 4

// subkeyList resolves a subkey list cell, following RI indirection.
func (h *Hive) subkeyList(offset uint32, expected uint32) ([]uint32, error) {
	return h.subkeyListAt(offset, expected, 0)
}

func (h *Hive) subkeyListAt(offset uint32, expected uint32, depth int) ([]uint32, error) {
	if depth > maxListDepth {
		return nil, wrapFormatErr(h.name,
			fmt.Errorf("subkey list nesting exceeds %d: %w", maxListDepth, format.ErrSanityLimit))
	}
	cell, err := h.cell(offset)
	if err != nil {
		return nil, err
	}
	if format.IsRIList(cell.Data) {
		subListOffsets, err := format.DecodeRIList(cell.Data)
		if err != nil {
			return nil, wrapFormatErr(h.name, err)
		}
		var result []uint32
		for _, subOffset := range subListOffsets {
			subList, err := h.subkeyListAt(subOffset, 0, depth+1)
			if err != nil {
				return nil, err
			}
			result = append(result, subList...)
		}
		return result, nil
	}
	list, err := format.DecodeSubkeyList(cell.Data, expected)
	if err != nil {
		return nil, wrapFormatErr(h.name, err)
	}
	return list, nil
}

// Error helpers --------------------------------------------------------------

func wrapFormatErr(name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, format.ErrSignatureMismatch):
		return &types.Error{Kind: types.ErrKindFormat, Msg: name + ": " + types.ErrNotHive.Msg, Err: err}
	case errors.Is(err, format.ErrTruncated):
		return &types.Error{Kind: types.ErrKindFormat, Msg: name + ": hive truncated", Err: err}
	default:
		return &types.Error{Kind: types.ErrKindCorrupt, Msg: name + ": " + err.Error(), Err: err}
	}
}

var _ types.File = (*Hive)(nil)
