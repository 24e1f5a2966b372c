package winreg

import (
	"github.com/qraux/plaso/internal/regf"
	"github.com/qraux/plaso/pkg/types"
)

// Open maps the hive file at path and returns its key tree. The caller owns
// the returned handle and must Close it.
func Open(path string, opts Options) (types.File, error) {
	return regf.Open(path, regf.Options{Codepage: opts.Codepage})
}

// OpenBytes opens an in-memory hive image. name is used in error messages.
func OpenBytes(name string, b []byte, opts Options) (types.File, error) {
	return regf.OpenBytes(name, b, regf.Options{Codepage: opts.Codepage})
}
