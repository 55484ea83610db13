package smbios

// ChassisInfoSize is the size of the chassis fixed layout
const ChassisInfoSize = 5

const chassisLockBit = 0x80

var chassisKinds = []string{
	"Other",
	"Unknown",
	"Desktop",
	"Low Profile Desktop",
	"Pizza Box",
	"Mini Tower",
	"Tower",
	"Portable",
	"Laptop",
	"Notebook",
	"Hand Held",
	"Docking Station",
	"All In One",
	"Sub Notebook",
	"Space-saving",
	"Lunch Box",
	"Main Server Chassis",
	"Expansion Chassis",
	"Sub Chassis",
	"Bus Expansion Chassis",
	"Peripheral Chassis",
	"RAID Chassis",
	"Rack Mount Chassis",
	"Sealed-case PC",
	"Multi-system",
	"CompactPCI",
	"AdvancedTCA",
	"Blade",
	"Blade Enclosing",
	"Tablet",
	"Convertible",
	"Detachable",
	"IoT Gateway",
	"Embedded PC",
	"Mini PC",
	"Stick PC",
}

// ChassisInfo (type 3)
type ChassisInfo struct {
	f fields
}

// Type implements Info
func (ChassisInfo) Type() Type { return TypeChassis }

func (ChassisInfo) info() {}

// Manufacturer string index
func (c ChassisInfo) Manufacturer() uint8 { return c.f.byteAt(0) }

// ChassisType raw value. Bit 7 is the lock flag, see Locked and Kind.
func (c ChassisInfo) ChassisType() uint8 { return c.f.byteAt(1) }

// Version string index
func (c ChassisInfo) Version() uint8 { return c.f.byteAt(2) }

// SerialNumber string index
func (c ChassisInfo) SerialNumber() uint8 { return c.f.byteAt(3) }

// AssetTag string index
func (c ChassisInfo) AssetTag() uint8 { return c.f.byteAt(4) }

// Locked reports if a chassis lock is present
func (c ChassisInfo) Locked() bool {
	return c.ChassisType()&chassisLockBit != 0
}

// Kind returns the name of the chassis type. Returns false for values that
// are not defined.
func (c ChassisInfo) Kind() (string, bool) {
	v := int(c.ChassisType() &^ chassisLockBit)
	if v == 0 || v > len(chassisKinds) {
		return "<OUT OF SPEC>", false
	}

	return chassisKinds[v-1], true
}
