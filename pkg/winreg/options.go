package winreg

import (
	"io"
	"log/slog"
)

// Options configures a Parser. The zero value is usable.
type Options struct {
	// Codepage names the 8-bit encoding for compressed key and value names
	// when opening hives through Open. Empty means cp1252.
	Codepage string

	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
