// Package types defines the shared vocabulary of the module: typed errors,
// registry value types, hive classification, and the read-only key tree
// interfaces that decouple the dispatch engine from the binary decoder.
//
// Higher-level packages (pkg/winreg, internal/regf) depend on this package;
// it depends on nothing but the standard library.
package types
