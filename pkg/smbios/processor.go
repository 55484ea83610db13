package smbios

// ProcessorInfoSize is the size of the processor fixed layout
const ProcessorInfoSize = 38

const (
	processorPopulated   = 1 << 6
	processorStatusMask  = 0x07
	processorStatusUsing = 0x01
)

// ProcessorInfo (type 4)
type ProcessorInfo struct {
	f fields
}

// Type implements Info
func (ProcessorInfo) Type() Type { return TypeProcessor }

func (ProcessorInfo) info() {}

// SocketDesignation string index
func (p ProcessorInfo) SocketDesignation() uint8 { return p.f.byteAt(0) }

// ProcessorType (central, math, dsp, video)
func (p ProcessorInfo) ProcessorType() uint8 { return p.f.byteAt(1) }

// Family of the processor. 0xFE means the value is in Family2.
func (p ProcessorInfo) Family() uint8 { return p.f.byteAt(2) }

// Manufacturer string index
func (p ProcessorInfo) Manufacturer() uint8 { return p.f.byteAt(3) }

// ID is the raw processor identification (CPUID eax and edx on x86)
func (p ProcessorInfo) ID() uint64 { return p.f.qwordAt(4) }

// Version string index
func (p ProcessorInfo) Version() uint8 { return p.f.byteAt(12) }

// Voltage raw value
func (p ProcessorInfo) Voltage() uint8 { return p.f.byteAt(13) }

// ExternalClock in MHz, 0 if unknown
func (p ProcessorInfo) ExternalClock() uint16 { return p.f.wordAt(14) }

// MaxSpeed in MHz, 0 if unknown
func (p ProcessorInfo) MaxSpeed() uint16 { return p.f.wordAt(16) }

// CurrentSpeed in MHz, 0 if unknown
func (p ProcessorInfo) CurrentSpeed() uint16 { return p.f.wordAt(18) }

// Status raw value
func (p ProcessorInfo) Status() uint8 { return p.f.byteAt(20) }

// Upgrade (socket kind)
func (p ProcessorInfo) Upgrade() uint8 { return p.f.byteAt(21) }

// L1CacheHandle handle of the L1 cache structure, 0xFFFF if none
func (p ProcessorInfo) L1CacheHandle() uint16 { return p.f.wordAt(22) }

// L2CacheHandle handle of the L2 cache structure, 0xFFFF if none
func (p ProcessorInfo) L2CacheHandle() uint16 { return p.f.wordAt(24) }

// L3CacheHandle handle of the L3 cache structure, 0xFFFF if none
func (p ProcessorInfo) L3CacheHandle() uint16 { return p.f.wordAt(26) }

// SerialNumber string index
func (p ProcessorInfo) SerialNumber() uint8 { return p.f.byteAt(28) }

// AssetTag string index
func (p ProcessorInfo) AssetTag() uint8 { return p.f.byteAt(29) }

// PartNumber string index
func (p ProcessorInfo) PartNumber() uint8 { return p.f.byteAt(30) }

// CoreCount per socket, 0 if unknown
func (p ProcessorInfo) CoreCount() uint8 { return p.f.byteAt(31) }

// CoreEnabled number of enabled cores
func (p ProcessorInfo) CoreEnabled() uint8 { return p.f.byteAt(32) }

// ThreadCount per socket
func (p ProcessorInfo) ThreadCount() uint8 { return p.f.byteAt(33) }

// Characteristics bit field
func (p ProcessorInfo) Characteristics() uint16 { return p.f.wordAt(34) }

// Family2 is the extended family
func (p ProcessorInfo) Family2() uint16 { return p.f.wordAt(36) }

// Populated reports if the socket holds a processor
func (p ProcessorInfo) Populated() bool {
	return p.Status()&processorPopulated != 0
}

// Enabled reports if the processor in the socket is enabled
func (p ProcessorInfo) Enabled() bool {
	return p.Populated() && p.Status()&processorStatusMask == processorStatusUsing
}
