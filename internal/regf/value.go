package regf

import (
	"encoding/binary"

	"github.com/qraux/plaso/internal/format"
	"github.com/qraux/plaso/pkg/types"
)

// value implements types.Value over a decoded VK record.
type value struct {
	h  *Hive
	vk format.VKRecord
}

// valueAt decodes the VK cell at the given hive-relative offset.
func (h *Hive) valueAt(off uint32) (*value, error) {
	cell, err := h.cell(off)
	if err != nil {
		return nil, err
	}
	vk, err := format.DecodeVK(cell.Data)
	if err != nil {
		return nil, wrapFormatErr(h.name, err)
	}
	return &value{h: h, vk: vk}, nil
}

func (v *value) Name() string {
	name, err := v.h.decodeName(v.vk.NameRaw, v.vk.NameIsCompressed())
	if err != nil {
		return ""
	}
	return name
}

func (v *value) Type() types.RegType {
	return types.RegType(v.vk.Type)
}

// Data returns the value payload, reading inline or out-of-line storage.
func (v *value) Data() ([]byte, error) {
	length := int(v.vk.DataLength & format.VKDataLengthMask)
	if length == 0 {
		return nil, nil
	}
	if v.vk.DataInline() {
		var buf [format.OffsetFieldSize]byte
		binary.LittleEndian.PutUint32(buf[:], v.vk.DataOffset)
		if length > len(buf) {
			return nil, &types.Error{
				Kind: types.ErrKindCorrupt,
				Msg:  "inline length exceeds field",
				Err:  types.ErrCorrupt,
			}
		}
		data := make([]byte, length)
		copy(data, buf[:length])
		return data, nil
	}
	cell, err := v.h.cell(v.vk.DataOffset)
	if err != nil {
		return nil, err
	}
	if len(cell.Data) < length {
		return nil, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  "value data truncated",
			Err:  types.ErrCorrupt,
		}
	}
	return cell.Data[:length], nil
}

func (v *value) AsString() (string, error) {
	switch v.Type() {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		data, err := v.Data()
		if err != nil {
			return "", err
		}
		return decodeUTF16String(data)
	default:
		return "", types.ErrTypeMismatch
	}
}

func (v *value) AsStrings() ([]string, error) {
	if v.Type() != types.REG_MULTI_SZ {
		return nil, types.ErrTypeMismatch
	}
	data, err := v.Data()
	if err != nil {
		return nil, err
	}
	return decodeMultiString(data)
}

func (v *value) AsDWORD() (uint32, error) {
	t := v.Type()
	if t != types.REG_DWORD && t != types.REG_DWORD_BE {
		return 0, types.ErrTypeMismatch
	}
	data, err := v.Data()
	if err != nil {
		return 0, err
	}
	if len(data) < format.DWORDSize {
		return 0, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  "value too short for DWORD",
			Err:  types.ErrCorrupt,
		}
	}
	if t == types.REG_DWORD_BE {
		return binary.BigEndian.Uint32(data[:format.DWORDSize]), nil
	}
	return binary.LittleEndian.Uint32(data[:format.DWORDSize]), nil
}

func (v *value) AsQWORD() (uint64, error) {
	if v.Type() != types.REG_QWORD {
		return 0, types.ErrTypeMismatch
	}
	data, err := v.Data()
	if err != nil {
		return 0, err
	}
	if len(data) < format.QWORDSize {
		return 0, &types.Error{
			Kind: types.ErrKindCorrupt,
			Msg:  "value too short for QWORD",
			Err:  types.ErrCorrupt,
		}
	}
	return binary.LittleEndian.Uint64(data[:format.QWORDSize]), nil
}

var _ types.Value = (*value)(nil)
