package dmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/dmi/pkg/smbios"
)

// raw builds a structure table out of (type, handle, data, strings) parts
func raw(parts ...structure) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, byte(p.typ), byte(len(p.data)+smbios.HeaderSize), byte(p.handle), byte(p.handle>>8))
		b = append(b, p.data...)
		b = append(b, p.strings...)
	}
	return append(b, byte(smbios.TypeEndOfTable), 4, 0xff, 0xfe, 0, 0)
}

type structure struct {
	typ     smbios.Type
	handle  uint16
	data    []byte
	strings string
}

var (
	lenovoBIOS = structure{
		typ:    smbios.TypeBIOS,
		handle: 0x0000,
		data: []byte{
			0x01, 0x02, 0x00, 0xe0, 0x03, 0x1f,
			0x80, 0x98, 0xf9, 0x4b, 0x00, 0x00, 0x00, 0x00,
			0x00, 0x00, 0x01, 0x28,
		},
		strings: "LENOVO\x0029CN40WW(V2.17)\x0004/13/2011\x00\x00",
	}
	lenovoSystem = structure{
		typ:    smbios.TypeSystem,
		handle: 0x0001,
		data: []byte{
			0x01, 0x02, 0x03, 0x04,
			0x50, 0x6a, 0x3e, 0xcb, 0x7b, 0xa7, 0x11, 0xe0,
			0x88, 0xe9, 0xb8, 0x70, 0xf4, 0x16, 0x57, 0x34,
			0x06, 0x05, 0x06,
		},
		strings: "LENOVO\x0020042\x00Lenovo G560\x002677240001087\x00Calpella_CRB\x00Intel_Mobile\x00\x00",
	}
	lenovoBoard = structure{
		typ:     smbios.TypeBaseboard,
		handle:  0x0002,
		data:    []byte{0x01, 0x02, 0x03, 0x04, 0x00},
		strings: "LENOVO\x00Base Board Product Name\x00Base Board Version\x00Base Board Serial Number\x00\x00",
	}
	configOptions = structure{
		typ:     smbios.TypeSystemConfigurationOptions,
		handle:  0x000d,
		data:    []byte{0x02},
		strings: "String1 for Type12 Equipment Manufacturer\x00String2 for Type12 Equipment Manufacturer\x00\x00",
	}
)

func decode(parts ...structure) *DMI {
	return FromTables(nil, smbios.Decode(raw(parts...)))
}

func TestFromTablesTooling(t *testing.T) {
	dmi := decode()
	assert.Equal(t, "unknown", dmi.Tooling.Aggregator)
	assert.Equal(t, DecoderVersion, dmi.Tooling.Decoder)
	assert.Empty(t, dmi.Sections)

	ep := &smbios.EntryPoint32{MajorVersion: 2, MinorVersion: 6}
	dmi = FromTables(ep, nil)
	assert.Equal(t, "SMBIOS 2.6 present.", dmi.Tooling.Aggregator)
}

func TestBIOSSection(t *testing.T) {
	dmi := decode(lenovoBIOS)
	require.Len(t, dmi.Sections, 1)

	sec := dmi.Sections[0]
	assert.Equal(t, "Handle 0x0000, DMI type 0, 22 bytes", sec.HandleLine)
	assert.Equal(t, smbios.TypeBIOS, sec.Type)
	assert.Equal(t, "BIOS", sec.TypeStr)
	require.Len(t, sec.SubSections, 1)

	sub := sec.SubSections[0]
	assert.Equal(t, "BIOS Information", sub.Title)
	assert.Equal(t, "LENOVO", sub.Properties["Vendor"].Val)
	assert.Equal(t, "29CN40WW(V2.17)", sub.Properties["Version"].Val)
	assert.Equal(t, "04/13/2011", sub.Properties["Release Date"].Val)
	assert.Equal(t, "0xE0000", sub.Properties["Address"].Val)
	assert.Equal(t, "2.0 MiB", sub.Properties["ROM Size"].Val)
	assert.Equal(t, "1.40", sub.Properties["BIOS Revision"].Val)
	assert.Equal(t, []string{
		"PCI is supported",
		"BIOS is upgradeable",
		"BIOS shadowing is allowed",
		"Boot from CD is supported",
		"Selectable boot is supported",
		"EDD is supported",
		"Japanese floppy for NEC 9800 1.2 MB is supported (int 13h)",
		"Japanese floppy for Toshiba 1.2 MB is supported (int 13h)",
		"5.25\"/360 kB floppy services are supported (int 13h)",
		"5.25\"/1.2 MB floppy services are supported (int 13h)",
		"3.5\"/720 kB floppy services are supported (int 13h)",
		"3.5\"/2.88 MB floppy services are supported (int 13h)",
		"8042 keyboard services are supported (int 9h)",
		"CGA/mono video services are supported (int 10h)",
	}, sub.Properties["Characteristics"].Items)
}

func TestSystemSection(t *testing.T) {
	dmi := decode(lenovoSystem)
	require.Len(t, dmi.Sections, 1)

	props := dmi.Sections[0].SubSections[0].Properties
	expected := map[string]string{
		"Manufacturer":  "LENOVO",
		"Product Name":  "20042",
		"Version":       "Lenovo G560",
		"Serial Number": "2677240001087",
		"UUID":          "cb3e6a50-a77b-e011-88e9-b870f4165734",
		"Wake-up Type":  "Power Switch",
		"SKU Number":    "Calpella_CRB",
		"Family":        "Intel_Mobile",
	}

	require.Len(t, props, len(expected))
	for key, value := range expected {
		assert.Equal(t, value, props[key].Val, key)
	}
}

func TestBoard(t *testing.T) {
	dmi := decode(lenovoBIOS, lenovoSystem, lenovoBoard)
	require.Len(t, dmi.Sections, 3)

	assert.Equal(t, "Base Board Version", dmi.BoardVersion())
	assert.Equal(t, "Base Board Serial Number", dmi.BoardSerial())

	props := dmi.Sections[2].SubSections[0].Properties
	assert.Equal(t, notSpecified, props["Asset Tag"].Val)

	empty := decode(lenovoBIOS)
	assert.Empty(t, empty.BoardVersion())
	assert.Empty(t, empty.BoardSerial())
}

func TestUnknownSection(t *testing.T) {
	dmi := decode(configOptions)
	require.Len(t, dmi.Sections, 1)

	sec := dmi.Sections[0]
	assert.Equal(t, "Handle 0x000D, DMI type 12, 5 bytes", sec.HandleLine)
	assert.Equal(t, "SystemConfigurationOptions", sec.TypeStr)

	sub := sec.SubSections[0]
	assert.Equal(t, "SystemConfigurationOptions Structure", sub.Title)
	assert.Equal(t, []string{"0C 05 0D 00 02"}, sub.Properties["Header and Data"].Items)
	assert.Equal(t, []string{
		"String1 for Type12 Equipment Manufacturer",
		"String2 for Type12 Equipment Manufacturer",
	}, sub.Properties["Strings"].Items)
}

func TestShortStructureIsUnknown(t *testing.T) {
	short := structure{
		typ:     smbios.TypeBaseboard,
		handle:  0x0002,
		data:    []byte{0x01, 0x00},
		strings: "LENOVO\x00\x00",
	}

	dmi := decode(short)
	require.Len(t, dmi.Sections, 1)
	sub := dmi.Sections[0].SubSections[0]
	assert.Equal(t, "Baseboard Structure", sub.Title)
	assert.Equal(t, []string{"02 06 02 00 01 00"}, sub.Properties["Header and Data"].Items)
	assert.Empty(t, dmi.BoardVersion())
}

func TestMemorySection(t *testing.T) {
	data := make([]byte, smbios.MemoryDeviceSize)
	data[2], data[3] = 0xfe, 0xff
	data[4] = 72
	data[6] = 64
	data[8], data[9] = 0x00, 0x40
	data[10] = 0x09
	data[12] = 1
	data[13] = 2
	data[14] = 0x1a
	data[17], data[18] = 0x60, 0x09
	data[19] = 3
	data[23] = 0x02
	data[30], data[31] = 0xb0, 0x04

	dmi := decode(structure{
		typ:     smbios.TypeMemoryDevice,
		handle:  0x0030,
		data:    data,
		strings: "DIMM_A1\x00BANK 0\x00Samsung\x00\x00",
	})
	require.Len(t, dmi.Sections, 1)

	props := dmi.Sections[0].SubSections[0].Properties
	assert.Equal(t, "Memory Device", dmi.Sections[0].SubSections[0].Title)
	assert.Equal(t, "Not Provided", props["Error Information Handle"].Val)
	assert.Equal(t, "72 bits", props["Total Width"].Val)
	assert.Equal(t, "64 bits", props["Data Width"].Val)
	assert.Equal(t, "16 GiB", props["Size"].Val)
	assert.Equal(t, "DIMM", props["Form Factor"].Val)
	assert.Equal(t, "DIMM_A1", props["Locator"].Val)
	assert.Equal(t, "BANK 0", props["Bank Locator"].Val)
	assert.Equal(t, "DDR4", props["Type"].Val)
	assert.Equal(t, "2400 MT/s", props["Speed"].Val)
	assert.Equal(t, "Samsung", props["Manufacturer"].Val)
	assert.Equal(t, notSpecified, props["Part Number"].Val)
	assert.Equal(t, "2", props["Rank"].Val)
	assert.Equal(t, "Unknown", props["Configured Memory Speed"].Val)
	assert.Equal(t, "1.2 V", props["Minimum Voltage"].Val)
}

func TestProcessorSection(t *testing.T) {
	data := make([]byte, smbios.ProcessorInfoSize)
	data[0] = 1
	data[1] = 0x03
	data[2] = 0xb3
	data[3] = 2
	data[4], data[5], data[6], data[7] = 0x54, 0x06, 0x05, 0x00
	data[8], data[9], data[10], data[11] = 0xff, 0xfb, 0xeb, 0xbf
	data[13] = 0x8c
	data[16], data[17] = 0xb8, 0x0b
	data[20] = 0x41
	data[22], data[23] = 0xff, 0xff
	data[31] = 8

	dmi := decode(structure{
		typ:     smbios.TypeProcessor,
		handle:  0x0040,
		data:    data,
		strings: "CPU0\x00Intel\x00\x00",
	})
	require.Len(t, dmi.Sections, 1)

	props := dmi.Sections[0].SubSections[0].Properties
	assert.Equal(t, "CPU0", props["Socket Designation"].Val)
	assert.Equal(t, "Central Processor", props["Type"].Val)
	assert.Equal(t, "Xeon", props["Family"].Val)
	assert.Equal(t, "Intel", props["Manufacturer"].Val)
	assert.Equal(t, "54 06 05 00 FF FB EB BF", props["ID"].Val)
	assert.Equal(t, "1.2 V", props["Voltage"].Val)
	assert.Equal(t, "Unknown", props["External Clock"].Val)
	assert.Equal(t, "3000 MHz", props["Max Speed"].Val)
	assert.Equal(t, "Populated, Enabled", props["Status"].Val)
	assert.Equal(t, "Not Provided", props["L1 Cache Handle"].Val)
	assert.Equal(t, "0x0000", props["L2 Cache Handle"].Val)
	assert.Equal(t, "8", props["Core Count"].Val)
}

func TestChassisSection(t *testing.T) {
	dmi := decode(structure{
		typ:     smbios.TypeChassis,
		handle:  0x0003,
		data:    []byte{0x01, 0x17, 0x00, 0x02, 0x00},
		strings: "Supermicro\x000123456789\x00\x00",
	})
	require.Len(t, dmi.Sections, 1)

	props := dmi.Sections[0].SubSections[0].Properties
	assert.Equal(t, "Supermicro", props["Manufacturer"].Val)
	assert.Equal(t, "Rack Mount Chassis", props["Type"].Val)
	assert.Equal(t, "Not Present", props["Lock"].Val)
	assert.Equal(t, notSpecified, props["Version"].Val)
	assert.Equal(t, "0123456789", props["Serial Number"].Val)
}

func TestDecodeSysfs(t *testing.T) {
	_, err := Decode(t.TempDir())
	require.Error(t, err)
}

func TestSystemSectionLegacyUUID(t *testing.T) {
	ep := &smbios.EntryPoint32{MajorVersion: 2, MinorVersion: 4}
	dmi := FromTables(ep, smbios.Decode(raw(lenovoSystem)))
	require.Len(t, dmi.Sections, 1)

	props := dmi.Sections[0].SubSections[0].Properties
	assert.Equal(t, "506a3ecb-7ba7-11e0-88e9-b870f4165734", props["UUID"].Val)
}
