package plugins

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/qraux/plaso/pkg/types"
	"github.com/qraux/plaso/pkg/winreg"
)

// CatchAll claims every key no targeted plugin wanted and renders its values
// generically. Registered at the heaviest weight so it only ever sees
// leftovers.
type CatchAll struct{}

func (CatchAll) Name() string { return "winreg_default" }

func (CatchAll) Process(key types.Key, _ *winreg.PathCache) (*winreg.Result, error) {
	attrs := make(map[string]string)
	for _, v := range key.Values() {
		name := v.Name()
		if name == "" {
			name = "(default)"
		}
		attrs[name] = renderValue(v)
	}
	return &winreg.Result{
		Events: []winreg.Event{{
			Timestamp:     key.LastWrite(),
			TimestampDesc: winreg.TimestampDescModification,
			KeyPath:       key.Path(),
			Attributes:    attrs,
		}},
	}, nil
}

// renderValue formats a value for generic display, falling back to a hex
// dump for binary or undecodable data.
func renderValue(v types.Value) string {
	switch v.Type() {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		if s, err := v.AsString(); err == nil {
			return s
		}
	case types.REG_MULTI_SZ:
		if parts, err := v.AsStrings(); err == nil {
			return strings.Join(parts, " ")
		}
	case types.REG_DWORD, types.REG_DWORD_BE:
		if d, err := v.AsDWORD(); err == nil {
			return strconv.FormatUint(uint64(d), 10)
		}
	case types.REG_QWORD:
		if q, err := v.AsQWORD(); err == nil {
			return strconv.FormatUint(q, 10)
		}
	}
	data, err := v.Data()
	if err != nil || len(data) == 0 {
		return "(empty)"
	}
	const maxDump = 64
	if len(data) > maxDump {
		return hex.EncodeToString(data[:maxDump]) + "..."
	}
	return hex.EncodeToString(data)
}
