package smbios

// MemoryDeviceSize is the size of the memory device fixed layout
const MemoryDeviceSize = 36

const (
	memorySizeUnknown  = 0xFFFF
	memorySizeExtended = 0x7FFF
	memorySizeKiB      = 0x8000
)

// MemoryDevice (type 17)
type MemoryDevice struct {
	f fields
}

// Type implements Info
func (MemoryDevice) Type() Type { return TypeMemoryDevice }

func (MemoryDevice) info() {}

// ArrayHandle of the physical memory array this device belongs to
func (m MemoryDevice) ArrayHandle() uint16 { return m.f.wordAt(0) }

// ErrorInfoHandle of the memory error structure, 0xFFFE if not provided
func (m MemoryDevice) ErrorInfoHandle() uint16 { return m.f.wordAt(2) }

// TotalWidth in bits, including error correction bits
func (m MemoryDevice) TotalWidth() uint16 { return m.f.wordAt(4) }

// DataWidth in bits
func (m MemoryDevice) DataWidth() uint16 { return m.f.wordAt(6) }

// Size raw value, see SizeBytes
func (m MemoryDevice) Size() uint16 { return m.f.wordAt(8) }

// FormFactor raw value
func (m MemoryDevice) FormFactor() uint8 { return m.f.byteAt(10) }

// DeviceSet raw value
func (m MemoryDevice) DeviceSet() uint8 { return m.f.byteAt(11) }

// DeviceLocator string index
func (m MemoryDevice) DeviceLocator() uint8 { return m.f.byteAt(12) }

// BankLocator string index
func (m MemoryDevice) BankLocator() uint8 { return m.f.byteAt(13) }

// MemoryType raw value
func (m MemoryDevice) MemoryType() uint8 { return m.f.byteAt(14) }

// TypeDetail bit field
func (m MemoryDevice) TypeDetail() uint16 { return m.f.wordAt(15) }

// Speed in MT/s, 0 if unknown
func (m MemoryDevice) Speed() uint16 { return m.f.wordAt(17) }

// Manufacturer string index
func (m MemoryDevice) Manufacturer() uint8 { return m.f.byteAt(19) }

// SerialNumber string index
func (m MemoryDevice) SerialNumber() uint8 { return m.f.byteAt(20) }

// AssetTag string index
func (m MemoryDevice) AssetTag() uint8 { return m.f.byteAt(21) }

// PartNumber string index
func (m MemoryDevice) PartNumber() uint8 { return m.f.byteAt(22) }

// Attributes raw value, the low nibble is the rank
func (m MemoryDevice) Attributes() uint8 { return m.f.byteAt(23) }

// ExtendedSize in MiB, only meaningful when Size is 0x7FFF
func (m MemoryDevice) ExtendedSize() uint32 { return m.f.dwordAt(24) }

// ConfiguredSpeed in MT/s
func (m MemoryDevice) ConfiguredSpeed() uint16 { return m.f.wordAt(28) }

// MinimumVoltage in mV
func (m MemoryDevice) MinimumVoltage() uint16 { return m.f.wordAt(30) }

// MaximumVoltage in mV
func (m MemoryDevice) MaximumVoltage() uint16 { return m.f.wordAt(32) }

// ConfiguredVoltage in mV
func (m MemoryDevice) ConfiguredVoltage() uint16 { return m.f.wordAt(34) }

// SizeBytes decodes the size of the device. An empty slot reports 0 and
// true, an unknown size reports false.
func (m MemoryDevice) SizeBytes() (uint64, bool) {
	size := m.Size()
	switch {
	case size == memorySizeUnknown:
		return 0, false
	case size == memorySizeExtended:
		// bit 31 is reserved
		return uint64(m.ExtendedSize()&0x7FFFFFFF) << 20, true
	case size&memorySizeKiB != 0:
		return uint64(size&^memorySizeKiB) << 10, true
	default:
		return uint64(size) << 20, true
	}
}
