package capacity

import (
	"github.com/threefoldtech/dmi/pkg/smbios"
)

type structure struct {
	typ     smbios.Type
	handle  uint16
	data    []byte
	strings string
}

func raw(parts ...structure) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, byte(p.typ), byte(len(p.data)+smbios.HeaderSize), byte(p.handle), byte(p.handle>>8))
		b = append(b, p.data...)
		b = append(b, p.strings...)
	}
	return append(b, byte(smbios.TypeEndOfTable), 4, 0xff, 0xfe, 0, 0)
}

func memoryDevice(handle uint16, sizeMiB uint16) structure {
	data := make([]byte, smbios.MemoryDeviceSize)
	data[8], data[9] = byte(sizeMiB), byte(sizeMiB>>8)
	data[12] = 1
	data[17], data[18] = 0x60, 0x09
	data[19] = 2
	data[22] = 3
	return structure{
		typ:     smbios.TypeMemoryDevice,
		handle:  handle,
		data:    data,
		strings: "DIMM\x00Samsung\x00M393A2K43BB1\x00\x00",
	}
}

func processor(handle uint16, status byte) structure {
	data := make([]byte, smbios.ProcessorInfoSize)
	data[0] = 1
	data[3] = 2
	data[12] = 3
	data[16], data[17] = 0xb8, 0x0b
	data[20] = status
	data[31] = 8
	data[33] = 16
	return structure{
		typ:     smbios.TypeProcessor,
		handle:  handle,
		data:    data,
		strings: "CPU\x00Intel\x00Xeon\x00\x00",
	}
}

// sampleTables is a small machine: 1 populated socket out of 2 and 2
// memory modules out of 3 slots
func sampleTables() []byte {
	return raw(
		structure{
			typ:     smbios.TypeBIOS,
			handle:  0,
			data:    []byte{0x01, 0x02, 0x00, 0xe0, 0x03, 0x1f, 0, 0, 0, 0, 0, 0, 0, 0},
			strings: "LENOVO\x0029CN40WW\x0004/13/2011\x00\x00",
		},
		structure{
			typ:    smbios.TypeSystem,
			handle: 1,
			data: []byte{
				0x01, 0x02, 0x00, 0x03,
				0x50, 0x6a, 0x3e, 0xcb, 0x7b, 0xa7, 0x11, 0xe0,
				0x88, 0xe9, 0xb8, 0x70, 0xf4, 0x16, 0x57, 0x34,
				0x06,
			},
			strings: "LENOVO\x0020042\x002677240001087\x00\x00",
		},
		structure{
			typ:     smbios.TypeBaseboard,
			handle:  2,
			data:    []byte{0x01, 0x02, 0x00, 0x03, 0x00},
			strings: "LENOVO\x00Board\x00BSN-001\x00\x00",
		},
		processor(0x40, 0x41),
		processor(0x41, 0x00),
		memoryDevice(0x50, 0x4000),
		memoryDevice(0x51, 0),
		memoryDevice(0x52, 0x4000),
	)
}
