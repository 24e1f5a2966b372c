package types

import "time"

// The interfaces below define the boundary between the dispatch engine and
// whatever supplies the parsed key tree. Implementations own every Key and
// Value they hand out; consumers borrow references for the duration of one
// parse pass and must never retain them past File.Close.

// File is an opened, navigable registry hive.
type File interface {
	// Name returns the artifact name used in error and diagnostic messages.
	Name() string

	// Root returns the root key. ok is false when the hive has no root key,
	// which is a zero-event parse rather than an error.
	Root() (Key, bool)

	// KeyByPath resolves a backslash-delimited path from the root. ok is
	// false when any segment is missing. Lookups are case-insensitive.
	KeyByPath(path string) (Key, bool)

	// Close releases the underlying mapping. Keys and Values obtained from
	// this File are invalid afterwards.
	Close() error
}

// Key is a read-only view of one registry key.
type Key interface {
	// Name returns the key's own name (last path segment).
	Name() string

	// Path returns the full backslash-delimited path from the root, where
	// the root itself is `\`.
	Path() string

	// Offset returns the byte offset of the key record in the source
	// artifact.
	Offset() int64

	// LastWrite returns the key's last-written timestamp.
	LastWrite() time.Time

	// Subkeys returns the direct children in deterministic order.
	Subkeys() []Key

	// Subkey returns the direct child with the given name
	// (case-insensitive); ok is false when absent.
	Subkey(name string) (Key, bool)

	// Values returns the key's values in stored order.
	Values() []Value

	// Value returns the value with the given name (case-insensitive,
	// "" addresses the default value); ok is false when absent.
	Value(name string) (Value, bool)
}

// Value is a read-only view of one registry value.
type Value interface {
	Name() string
	Type() RegType

	// Data returns the raw payload bytes. May be nil for empty values.
	Data() ([]byte, error)

	// AsString decodes REG_SZ/REG_EXPAND_SZ data. Returns ErrTypeMismatch
	// for other types.
	AsString() (string, error)

	// AsStrings decodes REG_MULTI_SZ data.
	AsStrings() ([]string, error)

	// AsDWORD decodes REG_DWORD/REG_DWORD_BE data.
	AsDWORD() (uint32, error)

	// AsQWORD decodes REG_QWORD data.
	AsQWORD() (uint64, error)
}
