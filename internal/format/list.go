package format

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/qraux/plaso/internal/buf"
)

// DecodeSubkeyList extracts NK offsets from list records (LI, LF, LH). Each
// entry stores the relative offset of a child NK cell. LF/LH additionally
// store a hashed name which is skipped here because higher layers compare
// names directly.
func DecodeSubkeyList(b []byte, expected uint32) ([]uint32, error) {
	if len(b) < ListHeaderSize {
		return nil, fmt.Errorf("subkey list: %w", ErrTruncated)
	}
	sig := b[:SignatureSize]
	count := uint32(buf.U16LE(b[SignatureSize:ListHeaderSize]))
	if expected != 0 && expected < count {
		count = expected
	}
	switch {
	case bytes.Equal(sig, LISignature):
		return decodeOffsets(b[ListHeaderSize:], count, OffsetFieldSize)
	case bytes.Equal(sig, LFSignature), bytes.Equal(sig, LHSignature):
		return decodeOffsets(b[ListHeaderSize:], count, LFEntrySize)
	default:
		return nil, fmt.Errorf("subkey list: %w", ErrUnsupported)
	}
}

func decodeOffsets(b []byte, count uint32, stride int) ([]uint32, error) {
	if len(b) < int(count)*stride {
		return nil, fmt.Errorf("subkey list entries: %w", ErrTruncated)
	}
	out := make([]uint32, count)
	for i := range count {
		out[i] = buf.U32LE(b[int(i)*stride:])
	}
	return out, nil
}

// IsRIList checks if a byte slice contains an RI (indirect) subkey list.
// RI lists are used when a key has many subkeys and contain offsets to
// multiple LF/LH lists rather than direct NK offsets.
func IsRIList(b []byte) bool {
	return len(b) >= SignatureSize && bytes.Equal(b[:SignatureSize], RISignature)
}

// DecodeRIList decodes an RI (indirect) subkey list and returns the offsets
// to the constituent LF/LH lists. The caller must fetch and decode each
// sub-list.
func DecodeRIList(b []byte) ([]uint32, error) {
	if len(b) < ListHeaderSize {
		return nil, fmt.Errorf("ri list: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:SignatureSize], RISignature) {
		return nil, errors.New("ri list: invalid signature")
	}
	count := uint32(buf.U16LE(b[SignatureSize:ListHeaderSize]))
	return decodeOffsets(b[ListHeaderSize:], count, OffsetFieldSize)
}

// DecodeValueList decodes a value list containing offsets to VK records.
func DecodeValueList(b []byte, count uint32) ([]uint32, error) {
	need := int(count) * OffsetFieldSize
	if need == 0 {
		return nil, nil
	}
	if len(b) < need {
		return nil, fmt.Errorf("value list: %w", ErrTruncated)
	}
	out := make([]uint32, count)
	for i := range count {
		out[i] = buf.U32LE(b[int(i)*OffsetFieldSize:])
	}
	return out, nil
}
