package smbios

import (
	"bytes"
	"encoding/binary"

	"github.com/blang/semver"
	"github.com/pkg/errors"
)

const (
	// EntryPoint32Size is the on-wire size of the 32-bit (SMBIOS 2.x) entry point
	EntryPoint32Size = 31
	// EntryPoint64Size is the on-wire size of the 64-bit (SMBIOS 3.x) entry point
	EntryPoint64Size = 24
)

var (
	anchor32             = []byte("_SM_")
	anchor64             = []byte("_SM3_")
	intermediateAnchor32 = []byte("_DMI_")

	// ErrNoEntryPoint is returned when no entry point anchor is found in a buffer
	ErrNoEntryPoint = errors.New("no smbios entry point found")
	// ErrTooShort is returned when a buffer can't hold the structure being parsed
	ErrTooShort = errors.New("buffer too short")
)

// EntryPoint describes where the structure table lives and how large it is.
type EntryPoint interface {
	// IsValid runs the anchor/checksum check of the entry point
	IsValid() bool
	// Version of the smbios specification implemented by the firmware
	Version() semver.Version
	// Table returns the physical address and the (maximum) size of the structure table
	Table() (address uint64, size uint32)
}

// EntryPoint32 is the SMBIOS 2.x entry point structure ("_SM_")
type EntryPoint32 struct {
	Anchor               [4]byte
	Checksum             uint8
	Length               uint8
	MajorVersion         uint8
	MinorVersion         uint8
	MaxStructureSize     uint16
	Revision             uint8
	Formatted            [5]byte
	IntermediateAnchor   [5]byte
	IntermediateChecksum uint8
	TableLength          uint16
	TableAddress         uint32
	StructureCount       uint16
	BCDRevision          uint8
}

var _ EntryPoint = (*EntryPoint32)(nil)

// IsValid sums the anchor, checksum, length, versions, the low byte of the
// max structure size, the revision and the formatted area. The entry point is
// valid if the 8 bit sum wraps to zero.
//
// Only that leading part of the structure is covered. The intermediate
// anchor, its checksum and the table fields are not validated.
func (e *EntryPoint32) IsValid() bool {
	var sum uint8
	for _, b := range e.Anchor {
		sum += b
	}
	sum += e.Checksum
	sum += e.Length
	sum += e.MajorVersion
	sum += e.MinorVersion
	sum += uint8(e.MaxStructureSize)
	sum += e.Revision
	for _, b := range e.Formatted {
		sum += b
	}

	return sum == 0
}

// Version returns major.minor.0
func (e *EntryPoint32) Version() semver.Version {
	return semver.Version{Major: uint64(e.MajorVersion), Minor: uint64(e.MinorVersion)}
}

// Table returns the structure table address and length
func (e *EntryPoint32) Table() (uint64, uint32) {
	return uint64(e.TableAddress), uint32(e.TableLength)
}

// HasIntermediateAnchor checks the "_DMI_" anchor of the entry point. It is
// informational only and not part of IsValid.
func (e *EntryPoint32) HasIntermediateAnchor() bool {
	return bytes.Equal(e.IntermediateAnchor[:], intermediateAnchor32)
}

// EntryPoint64 is the SMBIOS 3.x entry point structure ("_SM3_")
type EntryPoint64 struct {
	Anchor       [5]byte
	Checksum     uint8
	Length       uint8
	MajorVersion uint8
	MinorVersion uint8
	DocRevision  uint8
	Revision     uint8
	Reserved     uint8
	TableMaxSize uint32
	TableAddress uint64
}

var _ EntryPoint = (*EntryPoint64)(nil)

// IsValid only compares the anchor. The checksum field is decoded but
// not verified.
func (e *EntryPoint64) IsValid() bool {
	return bytes.Equal(e.Anchor[:], anchor64)
}

// Version returns major.minor.docrev
func (e *EntryPoint64) Version() semver.Version {
	return semver.Version{
		Major: uint64(e.MajorVersion),
		Minor: uint64(e.MinorVersion),
		Patch: uint64(e.DocRevision),
	}
}

// Table returns the structure table address and its maximum size
func (e *EntryPoint64) Table() (uint64, uint32) {
	return e.TableAddress, e.TableMaxSize
}

// ParseEntryPoint32 decodes a 32-bit entry point from the start of b.
// It does not check the anchor, use IsValid for that.
func ParseEntryPoint32(b []byte) (*EntryPoint32, error) {
	if len(b) < EntryPoint32Size {
		return nil, errors.Wrapf(ErrTooShort, "32-bit entry point needs %d bytes, got %d", EntryPoint32Size, len(b))
	}

	var ep EntryPoint32
	if err := binary.Read(bytes.NewReader(b[:EntryPoint32Size]), binary.LittleEndian, &ep); err != nil {
		return nil, errors.Wrap(err, "failed to decode 32-bit entry point")
	}

	return &ep, nil
}

// ParseEntryPoint64 decodes a 64-bit entry point from the start of b.
func ParseEntryPoint64(b []byte) (*EntryPoint64, error) {
	if len(b) < EntryPoint64Size {
		return nil, errors.Wrapf(ErrTooShort, "64-bit entry point needs %d bytes, got %d", EntryPoint64Size, len(b))
	}

	var ep EntryPoint64
	if err := binary.Read(bytes.NewReader(b[:EntryPoint64Size]), binary.LittleEndian, &ep); err != nil {
		return nil, errors.Wrap(err, "failed to decode 64-bit entry point")
	}

	return &ep, nil
}

// ParseEntryPoint decodes the entry point at the start of b, picking the
// variant from its anchor.
func ParseEntryPoint(b []byte) (EntryPoint, error) {
	switch {
	case bytes.HasPrefix(b, anchor64):
		return ParseEntryPoint64(b)
	case bytes.HasPrefix(b, anchor32):
		return ParseEntryPoint32(b)
	}

	n := len(b)
	if n > 5 {
		n = 5
	}
	return nil, errors.Wrapf(ErrNoEntryPoint, "unknown anchor %q", b[:n])
}

// FindEntryPoint scans mem on 16 bytes boundaries for an entry point anchor,
// the way firmware exposes it in the legacy 0xF0000-0xFFFFF segment. It
// returns the first entry point that passes IsValid and its offset in mem.
func FindEntryPoint(mem []byte) (EntryPoint, int, error) {
	for offset := 0; offset+len(anchor32) <= len(mem); offset += 16 {
		chunk := mem[offset:]
		if !bytes.HasPrefix(chunk, anchor64) && !bytes.HasPrefix(chunk, anchor32) {
			continue
		}

		ep, err := ParseEntryPoint(chunk)
		if err != nil {
			// anchor found too close to the end of the region
			continue
		}

		if ep.IsValid() {
			return ep, offset, nil
		}
	}

	return nil, -1, ErrNoEntryPoint
}
