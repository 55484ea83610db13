package smbios

import (
	"bytes"

	"github.com/blang/semver"
	"github.com/google/uuid"
)

// SystemInfoSize is the size of the system information fixed layout
const SystemInfoSize = 4

// WakeUpType of the system
type WakeUpType uint8

// Known wake up types
const (
	WakeUpReserved WakeUpType = iota
	WakeUpOther
	WakeUpUnknown
	WakeUpAPMTimer
	WakeUpModemRing
	WakeUpLANRemote
	WakeUpPowerSwitch
	WakeUpPCIPME
	WakeUpACPowerRestored
)

var wakeUpNames = map[WakeUpType]string{
	WakeUpReserved:        "Reserved",
	WakeUpOther:           "Other",
	WakeUpUnknown:         "Unknown",
	WakeUpAPMTimer:        "APM Timer",
	WakeUpModemRing:       "Modem Ring",
	WakeUpLANRemote:       "LAN Remote",
	WakeUpPowerSwitch:     "Power Switch",
	WakeUpPCIPME:          "PCI PME#",
	WakeUpACPowerRestored: "AC Power Restored",
}

func (w WakeUpType) String() string {
	if s, ok := wakeUpNames[w]; ok {
		return s
	}
	return "<OUT OF SPEC>"
}

// SystemInfo (type 1)
type SystemInfo struct {
	f fields
}

// Type implements Info
func (SystemInfo) Type() Type { return TypeSystem }

func (SystemInfo) info() {}

// Manufacturer string index
func (s SystemInfo) Manufacturer() uint8 { return s.f.byteAt(0) }

// ProductName string index
func (s SystemInfo) ProductName() uint8 { return s.f.byteAt(1) }

// Version string index
func (s SystemInfo) Version() uint8 { return s.f.byteAt(2) }

// SerialNumber string index
func (s SystemInfo) SerialNumber() uint8 { return s.f.byteAt(3) }

// uuidLittleEndian is the first version that stores the first three UUID
// fields little endian. Older firmware uses network order.
var uuidLittleEndian = semver.Version{Major: 2, Minor: 6}

// UUID of the system (smbios 2.1+), decoded with the smbios 2.6+ layout
// where the first three fields are stored little endian. Use UUIDFor when
// the entry point is known. A UUID of all 0x00 (not present) or all 0xFF
// (not set) is reported as missing.
func (s SystemInfo) UUID() (uuid.UUID, bool) {
	return s.uuid(true)
}

// UUIDFor decodes the UUID with the byte order used by the firmware that
// published ep. A nil ep is treated as smbios 2.6+.
func (s SystemInfo) UUIDFor(ep EntryPoint) (uuid.UUID, bool) {
	if ep == nil {
		return s.uuid(true)
	}

	return s.uuid(ep.Version().GTE(uuidLittleEndian))
}

func (s SystemInfo) uuid(littleEndian bool) (uuid.UUID, bool) {
	raw, ok := s.f.bytes(4, 16)
	if !ok {
		return uuid.Nil, false
	}

	if bytes.Equal(raw, make([]byte, 16)) || bytes.Equal(raw, bytes.Repeat([]byte{0xff}, 16)) {
		return uuid.Nil, false
	}

	var u uuid.UUID
	copy(u[:], raw)
	if littleEndian {
		u[0], u[1], u[2], u[3] = raw[3], raw[2], raw[1], raw[0]
		u[4], u[5] = raw[5], raw[4]
		u[6], u[7] = raw[7], raw[6]
	}

	return u, true
}

// WakeUpType (smbios 2.1+)
func (s SystemInfo) WakeUpType() (WakeUpType, bool) {
	v, ok := s.f.u8(20)
	return WakeUpType(v), ok
}

// SKU string index (smbios 2.4+)
func (s SystemInfo) SKU() (uint8, bool) {
	return s.f.u8(21)
}

// Family string index (smbios 2.4+)
func (s SystemInfo) Family() (uint8, bool) {
	return s.f.u8(22)
}
