package format

import (
	"errors"
	"fmt"
)

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrFreeCell indicates a cell marked free was encountered where allocation was required.
	ErrFreeCell = errors.New("format: cell not in use")
	// ErrUnsupported indicates the structure or feature is not yet supported.
	ErrUnsupported = errors.New("format: unsupported feature")
	// ErrSanityLimit indicates a declared count or length exceeded a hard limit.
	ErrSanityLimit = errors.New("format: sanity limit exceeded")
)

// CheckedReadU16 reads a little-endian uint16 at off, failing on short buffers.
func CheckedReadU16(b []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(b) {
		return 0, fmt.Errorf("read u16 at %d: %w", off, ErrTruncated)
	}
	return uint16(b[off]) | uint16(b[off+1])<<8, nil
}

// CheckedReadU32 reads a little-endian uint32 at off, failing on short buffers.
func CheckedReadU32(b []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(b) {
		return 0, fmt.Errorf("read u32 at %d: %w", off, ErrTruncated)
	}
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24, nil
}

// CheckedReadU64 reads a little-endian uint64 at off, failing on short buffers.
func CheckedReadU64(b []byte, off int) (uint64, error) {
	lo, err := CheckedReadU32(b, off)
	if err != nil {
		return 0, err
	}
	hi, err := CheckedReadU32(b, off+4)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}
