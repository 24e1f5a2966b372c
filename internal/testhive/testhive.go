// Package testhive builds minimal but structurally valid REGF images in
// memory for tests. The generated hives use a single HBIN, compressed
// (ASCII) names, and LF subkey lists, which matches what the decoders in
// internal/format expect from real hives.
package testhive

import (
	"encoding/binary"
	"time"

	"github.com/qraux/plaso/internal/format"
)

// Key describes one registry key in a declarative tree.
type Key struct {
	Name      string
	LastWrite time.Time
	Values    []Value
	Subkeys   []Key
}

// Value describes one registry value.
type Value struct {
	Name string
	Type uint32
	Data []byte
}

// SZ builds a REG_SZ value with UTF-16LE encoded, NUL-terminated data.
func SZ(name, s string) Value {
	return Value{Name: name, Type: 1, Data: utf16le(s + "\x00")}
}

// ExpandSZ builds a REG_EXPAND_SZ value.
func ExpandSZ(name, s string) Value {
	return Value{Name: name, Type: 2, Data: utf16le(s + "\x00")}
}

// MultiSZ builds a REG_MULTI_SZ value from the given strings.
func MultiSZ(name string, parts ...string) Value {
	var s string
	for _, p := range parts {
		s += p + "\x00"
	}
	s += "\x00"
	return Value{Name: name, Type: 7, Data: utf16le(s)}
}

// DWORD builds a REG_DWORD value.
func DWORD(name string, v uint32) Value {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return Value{Name: name, Type: 4, Data: data}
}

// QWORD builds a REG_QWORD value.
func QWORD(name string, v uint64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, v)
	return Value{Name: name, Type: 11, Data: data}
}

// Binary builds a REG_BINARY value.
func Binary(name string, data []byte) Value {
	return Value{Name: name, Type: 3, Data: data}
}

// Build assembles a complete hive image with the given root key.
func Build(root Key) []byte {
	b := &builder{data: make([]byte, format.HBINHeaderSize)}
	rootOff := b.key(root)
	return b.finish(rootOff)
}

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(uint16(r)>>8))
	}
	return out
}

// builder accumulates the hive bins data area. Cell offsets handed out are
// relative to the start of the first HBIN, as the format requires.
type builder struct {
	data []byte
}

// addCell appends an allocated cell with the given payload and returns its
// hive-relative offset. Cells are padded to 8-byte alignment.
func (b *builder) addCell(payload []byte) uint32 {
	off := uint32(len(b.data))
	size := format.CellHeaderSize + len(payload)
	if rem := size % 8; rem != 0 {
		size += 8 - rem
	}
	cell := make([]byte, size)
	binary.LittleEndian.PutUint32(cell, uint32(int32(-size)))
	copy(cell[format.CellHeaderSize:], payload)
	b.data = append(b.data, cell...)
	return off
}

// key emits the cells for k and its whole subtree, returning the offset of
// the NK cell.
func (b *builder) key(k Key) uint32 {
	valueListOff := uint32(format.InvalidOffset)
	if len(k.Values) > 0 {
		offsets := make([]uint32, len(k.Values))
		for i, v := range k.Values {
			offsets[i] = b.value(v)
		}
		valueListOff = b.offsetList(nil, offsets, format.OffsetFieldSize)
	}

	subkeyListOff := uint32(format.InvalidOffset)
	if len(k.Subkeys) > 0 {
		offsets := make([]uint32, len(k.Subkeys))
		for i, sub := range k.Subkeys {
			offsets[i] = b.key(sub)
		}
		subkeyListOff = b.offsetList(format.LFSignature, offsets, format.LFEntrySize)
	}

	name := []byte(k.Name)
	payload := make([]byte, format.NKNameOffset+len(name))
	copy(payload, format.NKSignature)
	binary.LittleEndian.PutUint16(payload[format.NKFlagsOffset:], format.NKFlagCompressedName)
	binary.LittleEndian.PutUint64(payload[format.NKLastWriteOffset:], filetime(k.LastWrite))
	binary.LittleEndian.PutUint32(payload[format.NKParentOffset:], format.InvalidOffset)
	binary.LittleEndian.PutUint32(payload[format.NKSubkeyCountOffset:], uint32(len(k.Subkeys)))
	binary.LittleEndian.PutUint32(payload[format.NKSubkeyListOffset:], subkeyListOff)
	binary.LittleEndian.PutUint32(payload[format.NKValueCountOffset:], uint32(len(k.Values)))
	binary.LittleEndian.PutUint32(payload[format.NKValueListOffset:], valueListOff)
	binary.LittleEndian.PutUint16(payload[format.NKNameLenOffset:], uint16(len(name)))
	copy(payload[format.NKNameOffset:], name)
	return b.addCell(payload)
}

// value emits a VK cell (and a data cell when the payload does not fit
// inline) and returns the VK offset.
func (b *builder) value(v Value) uint32 {
	dataLen := uint32(len(v.Data))
	var dataOff uint32
	if len(v.Data) > 0 && len(v.Data) <= format.OffsetFieldSize {
		dataLen |= format.VKDataInlineBit
		var inline [format.OffsetFieldSize]byte
		copy(inline[:], v.Data)
		dataOff = binary.LittleEndian.Uint32(inline[:])
	} else if len(v.Data) > 0 {
		dataOff = b.addCell(v.Data)
	}

	name := []byte(v.Name)
	payload := make([]byte, format.VKNameOffset+len(name))
	copy(payload, format.VKSignature)
	binary.LittleEndian.PutUint16(payload[format.VKNameLenOffset:], uint16(len(name)))
	binary.LittleEndian.PutUint32(payload[format.VKDataLenOffset:], dataLen)
	binary.LittleEndian.PutUint32(payload[format.VKDataOffOffset:], dataOff)
	binary.LittleEndian.PutUint32(payload[format.VKTypeOffset:], v.Type)
	binary.LittleEndian.PutUint16(payload[format.VKFlagsOffset:], format.VKFlagASCIIName)
	copy(payload[format.VKNameOffset:], name)
	return b.addCell(payload)
}

// offsetList emits a list cell. A nil signature produces a bare value list;
// otherwise an LF/LH-style record with the given entry stride is written
// (the hash halves of LF entries are left zero, which the readers ignore).
func (b *builder) offsetList(sig []byte, offsets []uint32, stride int) uint32 {
	var payload []byte
	if sig == nil {
		payload = make([]byte, len(offsets)*stride)
		for i, off := range offsets {
			binary.LittleEndian.PutUint32(payload[i*stride:], off)
		}
	} else {
		payload = make([]byte, format.ListHeaderSize+len(offsets)*stride)
		copy(payload, sig)
		binary.LittleEndian.PutUint16(payload[format.SignatureSize:], uint16(len(offsets)))
		for i, off := range offsets {
			binary.LittleEndian.PutUint32(payload[format.ListHeaderSize+i*stride:], off)
		}
	}
	return b.addCell(payload)
}

// finish pads the bins area to HBIN alignment, fills in the HBIN header,
// and prepends the REGF file header.
func (b *builder) finish(rootOff uint32) []byte {
	if rem := len(b.data) % format.HBINAlignment; rem != 0 {
		b.data = append(b.data, make([]byte, format.HBINAlignment-rem)...)
	}
	copy(b.data, format.HBINSignature)
	binary.LittleEndian.PutUint32(b.data[format.HBINFileOffsetField:], 0)
	binary.LittleEndian.PutUint32(b.data[format.HBINSizeOffset:], uint32(len(b.data)))

	head := make([]byte, format.HeaderSize)
	copy(head, format.REGFSignature)
	binary.LittleEndian.PutUint32(head[format.REGFPrimarySeqOffset:], 1)
	binary.LittleEndian.PutUint32(head[format.REGFSecondarySeqOffset:], 1)
	binary.LittleEndian.PutUint32(head[format.REGFMajorVersionOffset:], 1)
	binary.LittleEndian.PutUint32(head[format.REGFMinorVersionOffset:], 5)
	binary.LittleEndian.PutUint32(head[format.REGFRootCellOffset:], rootOff)
	binary.LittleEndian.PutUint32(head[format.REGFDataSizeOffset:], uint32(len(b.data)))
	return append(head, b.data...)
}

func filetime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixNano()/100 + 116444736000000000)
}
