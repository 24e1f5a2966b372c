package format

import (
	"bytes"
	"fmt"

	"github.com/qraux/plaso/internal/buf"
)

// NKRecord captures the metadata extracted from an NK record. NK cells
// describe registry keys. The structure (simplified):
//
//	Offset  Size  Field
//	0x00    2     'n' 'k'
//	0x02    2     Flags (bit 0x20 => name stored as 8-bit codepage bytes)
//	0x04    8     Last write time (FILETIME)
//	0x10    4     Parent cell offset
//	0x14    4     Number of subkeys
//	0x1C    4     Offset to subkey list
//	0x24    4     Number of values
//	0x28    4     Offset to value list
//	0x48    2     Name length
//	0x4C    n     Name bytes (codepage or UTF-16LE)
type NKRecord struct {
	Flags            uint16
	LastWriteRaw     uint64
	ParentOffset     uint32
	SubkeyCount      uint32
	SubkeyListOffset uint32
	ValueCount       uint32
	ValueListOffset  uint32
	NameLength       uint16
	NameRaw          []byte
}

// NameIsCompressed returns true when the name is stored in 8-bit form.
func (nk NKRecord) NameIsCompressed() bool {
	return nk.Flags&NKFlagCompressedName != 0
}

// DecodeNK decodes an NK record payload with bounds checking.
func DecodeNK(b []byte) (NKRecord, error) {
	if len(b) < NKMinSize {
		return NKRecord{}, fmt.Errorf("nk: %w (have %d, need %d)", ErrTruncated, len(b), NKMinSize)
	}
	if !bytes.Equal(b[:SignatureSize], NKSignature) {
		return NKRecord{}, fmt.Errorf("nk: %w", ErrSignatureMismatch)
	}

	flags, err := CheckedReadU16(b, NKFlagsOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk flags: %w", err)
	}
	lastWrite, err := CheckedReadU64(b, NKLastWriteOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk lastwrite: %w", err)
	}
	parent, err := CheckedReadU32(b, NKParentOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk parent: %w", err)
	}
	subkeyCount, err := CheckedReadU32(b, NKSubkeyCountOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk subkey count: %w", err)
	}
	if subkeyCount > MaxSubkeyCount {
		return NKRecord{}, fmt.Errorf("nk subkey count %d exceeds limit %d: %w",
			subkeyCount, MaxSubkeyCount, ErrSanityLimit)
	}
	subkeyListOff, err := CheckedReadU32(b, NKSubkeyListOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk subkey list: %w", err)
	}
	valueCount, err := CheckedReadU32(b, NKValueCountOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk value count: %w", err)
	}
	if valueCount > MaxValueCount {
		return NKRecord{}, fmt.Errorf("nk value count %d exceeds limit %d: %w",
			valueCount, MaxValueCount, ErrSanityLimit)
	}
	valueListOff, err := CheckedReadU32(b, NKValueListOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk value list: %w", err)
	}
	nameLen, err := CheckedReadU16(b, NKNameLenOffset)
	if err != nil {
		return NKRecord{}, fmt.Errorf("nk name len: %w", err)
	}
	if int(nameLen) > MaxNameLen {
		return NKRecord{}, fmt.Errorf("nk name len %d exceeds limit %d: %w",
			nameLen, MaxNameLen, ErrSanityLimit)
	}

	name, ok := buf.Slice(b, NKNameOffset, int(nameLen))
	if !ok {
		return NKRecord{}, fmt.Errorf("nk name: %w (need %d bytes from %d, have %d)",
			ErrTruncated, nameLen, NKNameOffset, len(b))
	}

	return NKRecord{
		Flags:            flags,
		LastWriteRaw:     lastWrite,
		ParentOffset:     parent,
		SubkeyCount:      subkeyCount,
		SubkeyListOffset: subkeyListOff,
		ValueCount:       valueCount,
		ValueListOffset:  valueListOff,
		NameLength:       nameLen,
		NameRaw:          name,
	}, nil
}
