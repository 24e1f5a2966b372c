// Package format houses low-level decoders for the Windows Registry hive file
// format (REGF). The goal is to keep the parsing focused, allocation-free
// where possible, and independent from the public API so higher-level packages
// can orchestrate the data in a more ergonomic form.
package format

var (
	// REGFSignature is the four-byte signature at the start of every hive file.
	REGFSignature = []byte{'r', 'e', 'g', 'f'}

	// HBINSignature is the four-byte signature at the beginning of each hive bin.
	HBINSignature = []byte{'h', 'b', 'i', 'n'}

	// NKSignature identifies an NK (Node Key) cell payload.
	NKSignature = []byte{'n', 'k'}

	// VKSignature identifies a VK (Value Key) cell payload.
	VKSignature = []byte{'v', 'k'}

	// LFSignature, LHSignature, and LISignature identify subkey list variants.
	// LF/LH include hashed names, while LI is a linear list without hashes.
	LFSignature = []byte{'l', 'f'}
	LHSignature = []byte{'l', 'h'}
	LISignature = []byte{'l', 'i'}

	// RISignature identifies an RI (indirect) subkey list record used when a
	// key has many subkeys. RI lists contain offsets to multiple LF/LH lists.
	RISignature = []byte{'r', 'i'}
)

const (
	// HeaderSize is the size of the REGF header in bytes. In all observed
	// hive variants this is 4096 bytes (the size of a single memory page).
	HeaderSize = 4096

	// HBINHeaderSize is the size of the HBIN header in bytes.
	HBINHeaderSize = 0x20

	// HBINAlignment is the required alignment of hive bins.
	HBINAlignment = 0x1000

	// CellHeaderSize is the number of bytes used by the cell header preceding
	// every allocation (free or in-use) within an HBIN.
	CellHeaderSize = 4

	// InvalidOffset is a placeholder value used for unused/invalid offset fields.
	InvalidOffset = 0xFFFFFFFF

	// SignatureSize is the standard size for record signatures (NK, VK, ...).
	SignatureSize = 2

	// ListHeaderSize is the size of list headers (signature + count).
	ListHeaderSize = 4

	// OffsetFieldSize is the size of cell offset fields (uint32).
	OffsetFieldSize = 4

	// LFEntrySize is the size of each entry in LF/LH lists: an offset
	// (4 bytes) and a name hash (4 bytes).
	LFEntrySize = 8

	// DWORDSize and QWORDSize are the payload sizes of the fixed-width
	// registry value types.
	DWORDSize = 4
	QWORDSize = 8
)

// REGF header field offsets.
const (
	REGFSignatureSize      = 4
	REGFPrimarySeqOffset   = 0x004
	REGFSecondarySeqOffset = 0x008
	REGFTimeStampOffset    = 0x00C
	REGFMajorVersionOffset = 0x014
	REGFMinorVersionOffset = 0x018
	REGFTypeOffset         = 0x01C
	REGFRootCellOffset     = 0x024
	REGFDataSizeOffset     = 0x028
)

// HBIN header field offsets.
const (
	HBINFileOffsetField = 0x04
	HBINSizeOffset      = 0x08
)

// NK field offsets within the record structure (payload start == "nk").
const (
	NKFlagsOffset       = 0x02 // USHORT
	NKLastWriteOffset   = 0x04 // FILETIME (8 bytes)
	NKParentOffset      = 0x10 // ULONG cell index of parent
	NKSubkeyCountOffset = 0x14 // ULONG stable subkey count
	NKSubkeyListOffset  = 0x1C // ULONG cell index of stable subkey list
	NKValueCountOffset  = 0x24 // ULONG value count
	NKValueListOffset   = 0x28 // ULONG cell index of value list
	NKNameLenOffset     = 0x48 // USHORT name length in bytes
	NKNameOffset        = 0x4C // start of inline name

	// NKFlagCompressedName marks names stored in 8-bit (codepage) form.
	NKFlagCompressedName = 0x20

	// NKMinSize is the fixed header size preceding the inline name.
	NKMinSize = NKNameOffset
)

// VK field offsets within the record structure.
const (
	VKNameLenOffset = 0x02 // USHORT
	VKDataLenOffset = 0x04 // ULONG, high bit = inline flag
	VKDataOffOffset = 0x08 // ULONG data offset or inline data
	VKTypeOffset    = 0x0C // ULONG value type
	VKFlagsOffset   = 0x10 // USHORT
	VKNameOffset    = 0x14 // start of inline name

	// VKFlagASCIIName marks names stored in 8-bit (codepage) form.
	VKFlagASCIIName = 0x0001

	// VKDataInlineBit is the high bit of DataLength indicating the data is
	// stored in the DataOffset field itself.
	VKDataInlineBit = 0x80000000

	// VKDataLengthMask extracts the actual data length from DataLength.
	VKDataLengthMask = 0x7FFFFFFF

	// VKMinSize is the fixed header size preceding the inline name.
	VKMinSize = VKNameOffset
)

// Sanity limits applied while decoding. Crafted hives can declare absurd
// counts; refusing them early keeps downstream allocations bounded.
const (
	MaxSubkeyCount  = 1 << 21
	MaxValueCount   = 1 << 21
	MaxNameLen      = 32766
	MaxValueDataLen = 1 << 30
)
