package dmi

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/threefoldtech/dmi/pkg/smbios"
)

var biosCharacteristics = []string{
	4:  "ISA is supported",
	5:  "MCA is supported",
	6:  "EISA is supported",
	7:  "PCI is supported",
	8:  "PC Card (PCMCIA) is supported",
	9:  "PNP is supported",
	10: "APM is supported",
	11: "BIOS is upgradeable",
	12: "BIOS shadowing is allowed",
	13: "VLB is supported",
	14: "ESCD support is available",
	15: "Boot from CD is supported",
	16: "Selectable boot is supported",
	17: "BIOS ROM is socketed",
	18: "Boot from PC Card (PCMCIA) is supported",
	19: "EDD is supported",
	20: "Japanese floppy for NEC 9800 1.2 MB is supported (int 13h)",
	21: "Japanese floppy for Toshiba 1.2 MB is supported (int 13h)",
	22: "5.25\"/360 kB floppy services are supported (int 13h)",
	23: "5.25\"/1.2 MB floppy services are supported (int 13h)",
	24: "3.5\"/720 kB floppy services are supported (int 13h)",
	25: "3.5\"/2.88 MB floppy services are supported (int 13h)",
	26: "Print screen service is supported (int 5h)",
	27: "8042 keyboard services are supported (int 9h)",
	28: "Serial services are supported (int 14h)",
	29: "Printer services are supported (int 17h)",
	30: "CGA/mono video services are supported (int 10h)",
	31: "NEC PC-98",
}

var processorTypes = []string{
	"Other",
	"Unknown",
	"Central Processor",
	"Math Processor",
	"DSP Processor",
	"Video Processor",
}

var processorFamilies = map[uint16]string{
	0x01: "Other",
	0x02: "Unknown",
	0x0B: "Pentium",
	0x6B: "Zen",
	0xB3: "Xeon",
	0xBF: "Core 2 Duo",
	0xC6: "Core i7",
	0xCD: "Core i5",
	0xCE: "Core i3",
}

var memoryFormFactors = []string{
	"Other",
	"Unknown",
	"SIMM",
	"SIP",
	"Chip",
	"DIP",
	"ZIP",
	"Proprietary Card",
	"DIMM",
	"TSOP",
	"Row Of Chips",
	"RIMM",
	"SODIMM",
	"SRIMM",
	"FB-DIMM",
	"Die",
}

var memoryTypes = []string{
	"Other",
	"Unknown",
	"DRAM",
	"EDRAM",
	"VRAM",
	"SRAM",
	"RAM",
	"ROM",
	"Flash",
	"EEPROM",
	"FEPROM",
	"EPROM",
	"CDRAM",
	"3DRAM",
	"SDRAM",
	"SGRAM",
	"RDRAM",
	"DDR",
	"DDR2",
	"DDR2 FB-DIMM",
	"Reserved",
	"Reserved",
	"Reserved",
	"DDR3",
	"FBD2",
	"DDR4",
	"LPDDR",
	"LPDDR2",
	"LPDDR3",
	"LPDDR4",
	"Logical non-volatile device",
	"HBM",
	"HBM2",
	"DDR5",
	"LPDDR5",
}

// lookup maps a 1-based enumeration value to its name
func lookup(names []string, v uint8) string {
	if v == 0 || int(v) > len(names) {
		return "<OUT OF SPEC>"
	}
	return names[v-1]
}

type properties map[string]PropertyData

func (p properties) set(key, value string) {
	p[key] = PropertyData{Val: value}
}

func (p properties) str(key string, t *smbios.Table, index uint8) {
	s, ok := t.String(index)
	if !ok {
		s = notSpecified
	}
	p.set(key, s)
}

func render(ep smbios.EntryPoint, t *smbios.Table) SubSection {
	props := properties{}
	var title string

	switch info := smbios.Project(t).(type) {
	case smbios.BIOSInfo:
		title = "BIOS Information"
		renderBIOS(props, t, info)
	case smbios.SystemInfo:
		title = "System Information"
		renderSystem(props, ep, t, info)
	case smbios.BaseBoardInfo:
		title = "Base Board Information"
		props.str("Manufacturer", t, info.Manufacturer())
		props.str("Product Name", t, info.Product())
		props.str("Version", t, info.Version())
		props.str("Serial Number", t, info.SerialNumber())
		props.str("Asset Tag", t, info.AssetTag())
	case smbios.ChassisInfo:
		title = "Chassis Information"
		renderChassis(props, t, info)
	case smbios.ProcessorInfo:
		title = "Processor Information"
		renderProcessor(props, t, info)
	case smbios.MemoryDevice:
		title = "Memory Device"
		renderMemory(props, t, info)
	case smbios.Unknown:
		title = fmt.Sprintf("%s Structure", info.Type())
		renderUnknown(props, info.Table)
	}

	return SubSection{
		Title:      title,
		Properties: props,
	}
}

func renderBIOS(props properties, t *smbios.Table, bios smbios.BIOSInfo) {
	props.str("Vendor", t, bios.Vendor())
	props.str("Version", t, bios.Version())
	props.str("Release Date", t, bios.ReleaseDate())
	props.set("Address", fmt.Sprintf("0x%04X0", bios.StartingSegment()))
	props.set("ROM Size", humanize.IBytes(bios.ROMSizeBytes()))

	var items []string
	chars := bios.Characteristics()
	if chars&(1<<3) != 0 {
		items = append(items, "BIOS characteristics not supported")
	} else {
		for bit, name := range biosCharacteristics {
			if name != "" && chars&(1<<uint(bit)) != 0 {
				items = append(items, name)
			}
		}
	}
	props["Characteristics"] = PropertyData{Items: items}

	if major, minor, ok := bios.Release(); ok && major != 0xFF {
		props.set("BIOS Revision", fmt.Sprintf("%d.%d", major, minor))
	}
}

func renderSystem(props properties, ep smbios.EntryPoint, t *smbios.Table, sys smbios.SystemInfo) {
	props.str("Manufacturer", t, sys.Manufacturer())
	props.str("Product Name", t, sys.ProductName())
	props.str("Version", t, sys.Version())
	props.str("Serial Number", t, sys.SerialNumber())

	if id, ok := sys.UUIDFor(ep); ok {
		props.set("UUID", id.String())
	}
	if wake, ok := sys.WakeUpType(); ok {
		props.set("Wake-up Type", wake.String())
	}
	if sku, ok := sys.SKU(); ok {
		props.str("SKU Number", t, sku)
	}
	if family, ok := sys.Family(); ok {
		props.str("Family", t, family)
	}
}

func renderChassis(props properties, t *smbios.Table, chassis smbios.ChassisInfo) {
	props.str("Manufacturer", t, chassis.Manufacturer())
	kind, _ := chassis.Kind()
	props.set("Type", kind)
	if chassis.Locked() {
		props.set("Lock", "Present")
	} else {
		props.set("Lock", "Not Present")
	}
	props.str("Version", t, chassis.Version())
	props.str("Serial Number", t, chassis.SerialNumber())
	props.str("Asset Tag", t, chassis.AssetTag())
}

func speed(v uint16) string {
	if v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d MHz", v)
}

func cacheHandle(v uint16) string {
	if v == 0xFFFF {
		return "Not Provided"
	}
	return fmt.Sprintf("0x%04X", v)
}

func renderProcessor(props properties, t *smbios.Table, cpu smbios.ProcessorInfo) {
	props.str("Socket Designation", t, cpu.SocketDesignation())
	props.set("Type", lookup(processorTypes, cpu.ProcessorType()))

	family := uint16(cpu.Family())
	if family == 0xFE {
		family = cpu.Family2()
	}
	if name, ok := processorFamilies[family]; ok {
		props.set("Family", name)
	} else {
		props.set("Family", fmt.Sprintf("0x%02X", family))
	}

	props.str("Manufacturer", t, cpu.Manufacturer())

	id := cpu.ID()
	var raw [8]byte
	for i := range raw {
		raw[i] = byte(id >> (8 * i))
	}
	props.set("ID", hexRows(raw[:])[0])

	props.str("Version", t, cpu.Version())
	if v := cpu.Voltage(); v&0x80 != 0 {
		props.set("Voltage", fmt.Sprintf("%.1f V", float64(v&0x7F)/10))
	} else {
		props.set("Voltage", "Unknown")
	}
	props.set("External Clock", speed(cpu.ExternalClock()))
	props.set("Max Speed", speed(cpu.MaxSpeed()))
	props.set("Current Speed", speed(cpu.CurrentSpeed()))

	switch {
	case !cpu.Populated():
		props.set("Status", "Unpopulated")
	case cpu.Enabled():
		props.set("Status", "Populated, Enabled")
	default:
		props.set("Status", "Populated, Disabled")
	}

	props.set("L1 Cache Handle", cacheHandle(cpu.L1CacheHandle()))
	props.set("L2 Cache Handle", cacheHandle(cpu.L2CacheHandle()))
	props.set("L3 Cache Handle", cacheHandle(cpu.L3CacheHandle()))
	props.str("Serial Number", t, cpu.SerialNumber())
	props.str("Asset Tag", t, cpu.AssetTag())
	props.str("Part Number", t, cpu.PartNumber())
	props.set("Core Count", fmt.Sprint(cpu.CoreCount()))
	props.set("Core Enabled", fmt.Sprint(cpu.CoreEnabled()))
	props.set("Thread Count", fmt.Sprint(cpu.ThreadCount()))
}

func width(v uint16) string {
	if v == 0xFFFF || v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d bits", v)
}

func transfers(v uint16) string {
	if v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d MT/s", v)
}

func voltage(v uint16) string {
	if v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.3g V", float64(v)/1000)
}

func renderMemory(props properties, t *smbios.Table, mem smbios.MemoryDevice) {
	props.set("Array Handle", fmt.Sprintf("0x%04X", mem.ArrayHandle()))
	switch h := mem.ErrorInfoHandle(); h {
	case 0xFFFE:
		props.set("Error Information Handle", "Not Provided")
	case 0xFFFF:
		props.set("Error Information Handle", "No Error")
	default:
		props.set("Error Information Handle", fmt.Sprintf("0x%04X", h))
	}
	props.set("Total Width", width(mem.TotalWidth()))
	props.set("Data Width", width(mem.DataWidth()))

	size, ok := mem.SizeBytes()
	switch {
	case !ok:
		props.set("Size", "Unknown")
	case size == 0:
		props.set("Size", "No Module Installed")
	default:
		props.set("Size", humanize.IBytes(size))
	}

	props.set("Form Factor", lookup(memoryFormFactors, mem.FormFactor()))
	props.str("Locator", t, mem.DeviceLocator())
	props.str("Bank Locator", t, mem.BankLocator())
	props.set("Type", lookup(memoryTypes, mem.MemoryType()))
	props.set("Speed", transfers(mem.Speed()))
	props.str("Manufacturer", t, mem.Manufacturer())
	props.str("Serial Number", t, mem.SerialNumber())
	props.str("Asset Tag", t, mem.AssetTag())
	props.str("Part Number", t, mem.PartNumber())

	if rank := mem.Attributes() & 0x0F; rank != 0 {
		props.set("Rank", fmt.Sprint(rank))
	} else {
		props.set("Rank", "Unknown")
	}
	props.set("Configured Memory Speed", transfers(mem.ConfiguredSpeed()))
	props.set("Minimum Voltage", voltage(mem.MinimumVoltage()))
	props.set("Maximum Voltage", voltage(mem.MaximumVoltage()))
	props.set("Configured Voltage", voltage(mem.ConfiguredVoltage()))
}

// renderUnknown dumps the raw structure, the same way dmidecode does for
// types it can't decode
func renderUnknown(props properties, t *smbios.Table) {
	raw := []byte{
		byte(t.Header.Type),
		t.Header.Length,
		byte(t.Header.Handle),
		byte(t.Header.Handle >> 8),
	}
	raw = append(raw, t.Data...)
	props["Header and Data"] = PropertyData{Items: hexRows(raw)}

	var strs []string
	for _, s := range t.Strings {
		if s != "" {
			strs = append(strs, s)
		}
	}
	if len(strs) > 0 {
		props["Strings"] = PropertyData{Items: strs}
	}
}
