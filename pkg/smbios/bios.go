package smbios

// BIOSInfoSize is the size of the BIOS information fixed layout
const BIOSInfoSize = 14

// BIOSInfo (type 0)
type BIOSInfo struct {
	f fields
}

// Type implements Info
func (BIOSInfo) Type() Type { return TypeBIOS }

func (BIOSInfo) info() {}

// Vendor string index
func (b BIOSInfo) Vendor() uint8 { return b.f.byteAt(0) }

// Version string index
func (b BIOSInfo) Version() uint8 { return b.f.byteAt(1) }

// StartingSegment of the BIOS image in the legacy address space
func (b BIOSInfo) StartingSegment() uint16 { return b.f.wordAt(2) }

// ReleaseDate string index
func (b BIOSInfo) ReleaseDate() uint8 { return b.f.byteAt(4) }

// ROMSize as encoded in the table, the size is (n+1)*64K
func (b BIOSInfo) ROMSize() uint8 { return b.f.byteAt(5) }

// ROMSizeBytes returns the size of the BIOS rom in bytes
func (b BIOSInfo) ROMSizeBytes() uint64 {
	return (uint64(b.ROMSize()) + 1) * 64 * 1024
}

// Characteristics bit field
func (b BIOSInfo) Characteristics() uint64 { return b.f.qwordAt(6) }

// Release of the system BIOS (major, minor). Only present starting
// smbios 2.4, 0xFF means not supported.
func (b BIOSInfo) Release() (major, minor uint8, ok bool) {
	major, ok = b.f.u8(0x14 - HeaderSize)
	if !ok {
		return 0, 0, false
	}
	minor, ok = b.f.u8(0x15 - HeaderSize)
	return major, minor, ok
}
