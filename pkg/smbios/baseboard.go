package smbios

// BaseBoardInfoSize is the size of the base board fixed layout
const BaseBoardInfoSize = 5

// BaseBoardInfo (type 2)
type BaseBoardInfo struct {
	f fields
}

// Type implements Info
func (BaseBoardInfo) Type() Type { return TypeBaseboard }

func (BaseBoardInfo) info() {}

// Manufacturer string index
func (b BaseBoardInfo) Manufacturer() uint8 { return b.f.byteAt(0) }

// Product string index
func (b BaseBoardInfo) Product() uint8 { return b.f.byteAt(1) }

// Version string index
func (b BaseBoardInfo) Version() uint8 { return b.f.byteAt(2) }

// SerialNumber string index
func (b BaseBoardInfo) SerialNumber() uint8 { return b.f.byteAt(3) }

// AssetTag string index
func (b BaseBoardInfo) AssetTag() uint8 { return b.f.byteAt(4) }
