package format

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"
)

func TestParseHeader(t *testing.T) {
	b := make([]byte, HeaderSize)
	copy(b, REGFSignature)
	binary.LittleEndian.PutUint32(b[REGFPrimarySeqOffset:], 3)
	binary.LittleEndian.PutUint32(b[REGFSecondarySeqOffset:], 3)
	binary.LittleEndian.PutUint32(b[REGFMajorVersionOffset:], 1)
	binary.LittleEndian.PutUint32(b[REGFMinorVersionOffset:], 5)
	binary.LittleEndian.PutUint32(b[REGFRootCellOffset:], 0x20)
	binary.LittleEndian.PutUint32(b[REGFDataSizeOffset:], 0x1000)

	h, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if h.RootCellOffset != 0x20 {
		t.Errorf("RootCellOffset: expected 0x20, got 0x%x", h.RootCellOffset)
	}
	if h.HiveBinsDataSize != 0x1000 {
		t.Errorf("HiveBinsDataSize: expected 0x1000, got 0x%x", h.HiveBinsDataSize)
	}
	if h.MajorVersion != 1 || h.MinorVersion != 5 {
		t.Errorf("version: expected 1.5, got %d.%d", h.MajorVersion, h.MinorVersion)
	}
}

func TestParseHeaderErrors(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 16)); !errors.Is(err, ErrTruncated) {
		t.Errorf("short header: expected ErrTruncated, got %v", err)
	}

	b := make([]byte, HeaderSize)
	copy(b, []byte("CROM"))
	if _, err := ParseHeader(b); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("bad signature: expected ErrSignatureMismatch, got %v", err)
	}
}

func TestNextHBIN(t *testing.T) {
	b := make([]byte, 2*HBINAlignment)
	copy(b, HBINSignature)
	binary.LittleEndian.PutUint32(b[HBINSizeOffset:], HBINAlignment)

	hbin, next, err := NextHBIN(b, 0)
	if err != nil {
		t.Fatalf("NextHBIN failed: %v", err)
	}
	if hbin.Size != HBINAlignment {
		t.Errorf("Size: expected 0x1000, got 0x%x", hbin.Size)
	}
	if next != HBINAlignment {
		t.Errorf("next: expected 0x1000, got 0x%x", next)
	}

	// Misaligned size is rejected.
	binary.LittleEndian.PutUint32(b[HBINSizeOffset:], HBINAlignment+8)
	if _, _, err := NextHBIN(b, 0); err == nil {
		t.Error("misaligned hbin size: expected error")
	}
}

func TestParseCell(t *testing.T) {
	b := make([]byte, 16)
	allocSize := int32(-16)
	binary.LittleEndian.PutUint32(b, uint32(allocSize))
	copy(b[4:], []byte("payload"))

	cell, err := ParseCell(b)
	if err != nil {
		t.Fatalf("ParseCell failed: %v", err)
	}
	if cell.Free {
		t.Error("negative size should mean allocated")
	}
	if cell.Size != 16 {
		t.Errorf("Size: expected 16, got %d", cell.Size)
	}
	if string(cell.Data[:7]) != "payload" {
		t.Errorf("Data: got %q", cell.Data)
	}

	// Positive size marks a free cell.
	binary.LittleEndian.PutUint32(b, 16)
	cell, err = ParseCell(b)
	if err != nil {
		t.Fatalf("ParseCell free failed: %v", err)
	}
	if !cell.Free {
		t.Error("positive size should mean free")
	}

	// Declared size past the buffer end is truncation.
	oversize := int32(-64)
	binary.LittleEndian.PutUint32(b, uint32(oversize))
	if _, err := ParseCell(b); !errors.Is(err, ErrTruncated) {
		t.Errorf("oversized cell: expected ErrTruncated, got %v", err)
	}
}

func buildNK(name string, flags uint16) []byte {
	b := make([]byte, NKNameOffset+len(name))
	copy(b, NKSignature)
	binary.LittleEndian.PutUint16(b[NKFlagsOffset:], flags)
	binary.LittleEndian.PutUint64(b[NKLastWriteOffset:], 0x01CD0000DEADBEEF)
	binary.LittleEndian.PutUint32(b[NKSubkeyCountOffset:], 2)
	binary.LittleEndian.PutUint32(b[NKSubkeyListOffset:], 0x100)
	binary.LittleEndian.PutUint32(b[NKValueCountOffset:], 1)
	binary.LittleEndian.PutUint32(b[NKValueListOffset:], 0x200)
	binary.LittleEndian.PutUint16(b[NKNameLenOffset:], uint16(len(name)))
	copy(b[NKNameOffset:], name)
	return b
}

func TestDecodeNK(t *testing.T) {
	nk, err := DecodeNK(buildNK("Select", NKFlagCompressedName))
	if err != nil {
		t.Fatalf("DecodeNK failed: %v", err)
	}
	if !nk.NameIsCompressed() {
		t.Error("expected compressed name flag")
	}
	if string(nk.NameRaw) != "Select" {
		t.Errorf("NameRaw: got %q", nk.NameRaw)
	}
	if nk.SubkeyCount != 2 || nk.SubkeyListOffset != 0x100 {
		t.Errorf("subkeys: got count=%d off=0x%x", nk.SubkeyCount, nk.SubkeyListOffset)
	}
	if nk.ValueCount != 1 || nk.ValueListOffset != 0x200 {
		t.Errorf("values: got count=%d off=0x%x", nk.ValueCount, nk.ValueListOffset)
	}
}

func TestDecodeNKErrors(t *testing.T) {
	if _, err := DecodeNK([]byte{'n', 'k'}); !errors.Is(err, ErrTruncated) {
		t.Errorf("short nk: expected ErrTruncated, got %v", err)
	}

	bad := buildNK("X", 0)
	bad[0] = 'z'
	if _, err := DecodeNK(bad); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("bad signature: expected ErrSignatureMismatch, got %v", err)
	}

	// Name extending past the record is truncation.
	lying := buildNK("AB", NKFlagCompressedName)
	binary.LittleEndian.PutUint16(lying[NKNameLenOffset:], 500)
	if _, err := DecodeNK(lying); !errors.Is(err, ErrTruncated) {
		t.Errorf("lying name len: expected ErrTruncated, got %v", err)
	}

	// Absurd subkey counts hit the sanity limit.
	crafted := buildNK("X", 0)
	binary.LittleEndian.PutUint32(crafted[NKSubkeyCountOffset:], MaxSubkeyCount+1)
	if _, err := DecodeNK(crafted); !errors.Is(err, ErrSanityLimit) {
		t.Errorf("crafted count: expected ErrSanityLimit, got %v", err)
	}
}

func TestDecodeVKInline(t *testing.T) {
	name := "Start"
	b := make([]byte, VKNameOffset+len(name))
	copy(b, VKSignature)
	binary.LittleEndian.PutUint16(b[VKNameLenOffset:], uint16(len(name)))
	binary.LittleEndian.PutUint32(b[VKDataLenOffset:], VKDataInlineBit|4)
	binary.LittleEndian.PutUint32(b[VKDataOffOffset:], 2)
	binary.LittleEndian.PutUint32(b[VKTypeOffset:], 4)
	binary.LittleEndian.PutUint16(b[VKFlagsOffset:], VKFlagASCIIName)
	copy(b[VKNameOffset:], name)

	vk, err := DecodeVK(b)
	if err != nil {
		t.Fatalf("DecodeVK failed: %v", err)
	}
	if !vk.DataInline() {
		t.Error("expected inline data")
	}
	if vk.DataLength&VKDataLengthMask != 4 {
		t.Errorf("masked length: expected 4, got %d", vk.DataLength&VKDataLengthMask)
	}
	if !vk.NameIsCompressed() {
		t.Error("expected compressed name flag")
	}
	if string(vk.NameRaw) != name {
		t.Errorf("NameRaw: got %q", vk.NameRaw)
	}
}

func buildList(sig []byte, stride int, offsets ...uint32) []byte {
	b := make([]byte, ListHeaderSize+len(offsets)*stride)
	copy(b, sig)
	binary.LittleEndian.PutUint16(b[SignatureSize:], uint16(len(offsets)))
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(b[ListHeaderSize+i*stride:], off)
	}
	return b
}

func TestDecodeSubkeyList(t *testing.T) {
	want := []uint32{0x20, 0xA0, 0x1F0}

	for _, tc := range []struct {
		sig    []byte
		stride int
	}{
		{LISignature, OffsetFieldSize},
		{LFSignature, LFEntrySize},
		{LHSignature, LFEntrySize},
	} {
		got, err := DecodeSubkeyList(buildList(tc.sig, tc.stride, want...), 0)
		if err != nil {
			t.Fatalf("%s: DecodeSubkeyList failed: %v", tc.sig, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d offsets, got %d", tc.sig, len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s[%d]: expected 0x%x, got 0x%x", tc.sig, i, want[i], got[i])
			}
		}
	}

	if _, err := DecodeSubkeyList(buildList([]byte("zz"), 4, 1), 0); !errors.Is(err, ErrUnsupported) {
		t.Errorf("unknown list: expected ErrUnsupported, got %v", err)
	}
}

func TestDecodeRIList(t *testing.T) {
	b := buildList(RISignature, OffsetFieldSize, 0x1000, 0x2000)
	if !IsRIList(b) {
		t.Fatal("IsRIList should recognize the ri signature")
	}
	got, err := DecodeRIList(b)
	if err != nil {
		t.Fatalf("DecodeRIList failed: %v", err)
	}
	if len(got) != 2 || got[0] != 0x1000 || got[1] != 0x2000 {
		t.Errorf("offsets: got %v", got)
	}
}

func TestDecodeValueList(t *testing.T) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, 0x30)
	binary.LittleEndian.PutUint32(b[4:], 0x60)

	got, err := DecodeValueList(b, 2)
	if err != nil {
		t.Fatalf("DecodeValueList failed: %v", err)
	}
	if len(got) != 2 || got[0] != 0x30 || got[1] != 0x60 {
		t.Errorf("offsets: got %v", got)
	}

	if _, err := DecodeValueList(b, 5); !errors.Is(err, ErrTruncated) {
		t.Errorf("short list: expected ErrTruncated, got %v", err)
	}
}

func TestFiletimeToTime(t *testing.T) {
	if !FiletimeToTime(0).IsZero() {
		t.Error("zero FILETIME should map to the zero time")
	}

	// 2012-03-10 14:30:00 UTC.
	want := time.Date(2012, 3, 10, 14, 30, 0, 0, time.UTC)
	ft := uint64(want.UnixNano()/100 + 116444736000000000)
	got := FiletimeToTime(ft)
	if !got.Equal(want) {
		t.Errorf("FiletimeToTime: expected %v, got %v", want, got)
	}
}
