package types

import (
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat   ErrKind = iota // malformed headers/signatures (e.g., bad "regf")
	ErrKindCorrupt                 // structural corruption (bad sizes/offsets/tags)
	ErrKindNotFound                // missing key/value/path
	ErrKindType                    // requested decode doesn't match value RegType
	ErrKindState                   // invalid operation for current state (e.g., closed)
	ErrKindConfig                  // unrecognized option value (e.g., unknown codepage)
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrNotHive indicates the file lacks a valid "regf" header.
	ErrNotHive = &Error{Kind: ErrKindFormat, Msg: "not a registry hive (bad regf header)"}
	// ErrCorrupt indicates non-recoverable structural inconsistency.
	ErrCorrupt = &Error{Kind: ErrKindCorrupt, Msg: "corrupt hive structure"}
	// ErrNotFound indicates a missing key/value/path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrTypeMismatch indicates the requested decode doesn't match the value type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "registry value has different type"}
	// ErrClosed indicates an access after the hive handle was released.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "hive is closed"}
)

// -----------------------------------------------------------------------------
// Hive classification
// -----------------------------------------------------------------------------

// HiveType identifies which well-known Windows registry file a hive is.
// Exactly one value applies per hive; Unknown is the fallback when no
// diagnostic key set matches.
type HiveType int

const (
	Unknown HiveType = iota
	NTUser
	Software
	Security
	System
	SAM
)

func (t HiveType) String() string {
	switch t {
	case NTUser:
		return "NTUSER"
	case Software:
		return "SOFTWARE"
	case Security:
		return "SECURITY"
	case System:
		return "SYSTEM"
	case SAM:
		return "SAM"
	default:
		return "UNKNOWN"
	}
}

// -----------------------------------------------------------------------------
// Registry value types
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types commonly encountered.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}
