package smbios

import "encoding/binary"

// fields reads fixed offset fields out of a formatted area. Every accessor
// checks the bounds, reading past the end yields the zero value and false.
// Multi-byte fields are always little endian.
type fields []byte

func (f fields) has(off, width int) bool {
	return off >= 0 && off+width <= len(f)
}

func (f fields) u8(off int) (uint8, bool) {
	if !f.has(off, 1) {
		return 0, false
	}
	return f[off], true
}

func (f fields) u16(off int) (uint16, bool) {
	if !f.has(off, 2) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(f[off:]), true
}

func (f fields) u32(off int) (uint32, bool) {
	if !f.has(off, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(f[off:]), true
}

func (f fields) u64(off int) (uint64, bool) {
	if !f.has(off, 8) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(f[off:]), true
}

func (f fields) bytes(off, width int) ([]byte, bool) {
	if !f.has(off, width) {
		return nil, false
	}
	return f[off : off+width], true
}

// BYTE, WORD, DWORD and QWORD readers for fields inside the fixed layout of
// a projection. Project only builds a projection after checking the payload
// size, so the bounds check can't fail there.

func (f fields) byteAt(off int) uint8 {
	v, _ := f.u8(off)
	return v
}

func (f fields) wordAt(off int) uint16 {
	v, _ := f.u16(off)
	return v
}

func (f fields) dwordAt(off int) uint32 {
	v, _ := f.u32(off)
	return v
}

func (f fields) qwordAt(off int) uint64 {
	v, _ := f.u64(off)
	return v
}
