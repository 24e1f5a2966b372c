package regf

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"

	"github.com/qraux/plaso/pkg/types"
)

// codepageDecoder converts 8-bit "compressed" names to UTF-8 using a
// configured Windows codepage.
type codepageDecoder struct {
	cm *charmap.Charmap
}

// codepages maps accepted option spellings to their decoder tables.
var codepages = map[string]*charmap.Charmap{
	"":             charmap.Windows1252,
	"cp1250":       charmap.Windows1250,
	"windows-1250": charmap.Windows1250,
	"cp1251":       charmap.Windows1251,
	"windows-1251": charmap.Windows1251,
	"cp1252":       charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"cp1253":       charmap.Windows1253,
	"windows-1253": charmap.Windows1253,
	"cp1254":       charmap.Windows1254,
	"windows-1254": charmap.Windows1254,
	"cp1255":       charmap.Windows1255,
	"windows-1255": charmap.Windows1255,
	"cp1256":       charmap.Windows1256,
	"windows-1256": charmap.Windows1256,
	"cp1257":       charmap.Windows1257,
	"windows-1257": charmap.Windows1257,
	"cp1258":       charmap.Windows1258,
	"windows-1258": charmap.Windows1258,
}

func newCodepageDecoder(name string) (*codepageDecoder, error) {
	cm, ok := codepages[strings.ToLower(name)]
	if !ok {
		return nil, &types.Error{
			Kind: types.ErrKindConfig,
			Msg:  fmt.Sprintf("unsupported codepage %q", name),
		}
	}
	return &codepageDecoder{cm: cm}, nil
}

// decode converts codepage bytes to a string. Pure ASCII skips the table.
func (d *codepageDecoder) decode(b []byte) (string, error) {
	if isASCII(b) {
		return string(b), nil
	}
	out, err := d.cm.NewDecoder().Bytes(b)
	if err != nil {
		return "", &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  "name not decodable in configured codepage",
			Err:  err,
		}
	}
	return string(out), nil
}

// decodeName converts a raw NK/VK name to UTF-8. Compressed names use the
// configured codepage; uncompressed names are UTF-16LE.
func (h *Hive) decodeName(raw []byte, compressed bool) (string, error) {
	if compressed {
		return h.dec.decode(raw)
	}
	return decodeUTF16LE(raw), nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// decodeUTF16LE converts UTF-16LE bytes to a string, dropping a trailing
// odd byte from truncated input.
func decodeUTF16LE(b []byte) string {
	n := len(b) / 2
	if n == 0 {
		return ""
	}
	u := make([]uint16, n)
	for i := range u {
		u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return string(utf16.Decode(u))
}

// decodeUTF16String decodes a string value payload, trimming the NUL
// terminator the registry stores with REG_SZ data.
func decodeUTF16String(b []byte) (string, error) {
	s := decodeUTF16LE(b)
	return strings.TrimRight(s, "\x00"), nil
}

// decodeMultiString decodes a REG_MULTI_SZ payload: NUL-terminated UTF-16LE
// strings followed by an empty terminator.
func decodeMultiString(b []byte) ([]string, error) {
	s := decodeUTF16LE(b)
	s = strings.TrimRight(s, "\x00")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\x00"), nil
}
