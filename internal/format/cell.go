package format

import (
	"errors"
	"fmt"

	"github.com/qraux/plaso/internal/buf"
)

// Cell represents a single allocation (free or in-use) within an HBIN.
//
// Cell header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Signed size. Negative => allocated, positive => free.
//	              The absolute value includes the 4-byte header.
//	0x04    ...   Payload. First two bytes form the record tag when allocated.
type Cell struct {
	Offset int  // Offset relative to the start of the hive data slice
	Size   int  // Total size including header
	Free   bool // True when the cell is marked as free
	Data   []byte
}

// ParseCell decodes the cell starting at the beginning of b.
func ParseCell(b []byte) (Cell, error) {
	if len(b) < CellHeaderSize {
		return Cell{}, fmt.Errorf("cell: %w", ErrTruncated)
	}
	raw := buf.I32LE(b)
	if raw == 0 {
		return Cell{}, errors.New("cell: zero length")
	}
	allocated := raw < 0
	size := int(raw)
	if allocated {
		size = -size
	}
	if size < CellHeaderSize || size > len(b) {
		return Cell{}, fmt.Errorf("cell: %w", ErrTruncated)
	}
	return Cell{
		Size: size,
		Free: !allocated,
		Data: b[CellHeaderSize:size],
	}, nil
}
