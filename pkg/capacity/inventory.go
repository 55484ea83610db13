package capacity

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/threefoldtech/dmi/pkg/smbios"
)

// Product identifies a piece of hardware
type Product struct {
	Vendor  string `json:"vendor,omitempty"`
	Product string `json:"product,omitempty"`
	Version string `json:"version,omitempty"`
	Serial  string `json:"serial,omitempty"`
}

// BIOS firmware information
type BIOS struct {
	Vendor  string `json:"vendor,omitempty"`
	Version string `json:"version,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Processor in a populated socket
type Processor struct {
	Socket       string `json:"socket,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Version      string `json:"version,omitempty"`
	Cores        uint8  `json:"cores"`
	Threads      uint8  `json:"threads"`
	MaxSpeed     uint16 `json:"max_speed"`
}

// MemoryModule installed in a memory slot
type MemoryModule struct {
	Locator      string `json:"locator,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	PartNumber   string `json:"part_number,omitempty"`
	Size         uint64 `json:"size"`
	Speed        uint16 `json:"speed"`
}

// Inventory is a short summary of the hardware described by the tables
type Inventory struct {
	System          Product        `json:"system"`
	UUID            string         `json:"uuid,omitempty"`
	Board           Product        `json:"board"`
	BIOS            BIOS           `json:"bios"`
	Processors      []Processor    `json:"processors"`
	Memory          []MemoryModule `json:"memory"`
	InstalledMemory uint64         `json:"installed_memory"`
}

func str(t *smbios.Table, index uint8) string {
	s, _ := t.String(index)
	return s
}

// NewInventory builds the inventory out of decoded tables. Empty sockets
// and memory slots are skipped. ep selects the UUID byte order, it can be
// nil.
func NewInventory(ep smbios.EntryPoint, tables []smbios.Table) Inventory {
	var inv Inventory
	for i := range tables {
		t := &tables[i]
		switch info := smbios.Project(t).(type) {
		case smbios.BIOSInfo:
			inv.BIOS = BIOS{
				Vendor:  str(t, info.Vendor()),
				Version: str(t, info.Version()),
				Date:    str(t, info.ReleaseDate()),
			}
		case smbios.SystemInfo:
			inv.System = Product{
				Vendor:  str(t, info.Manufacturer()),
				Product: str(t, info.ProductName()),
				Version: str(t, info.Version()),
				Serial:  str(t, info.SerialNumber()),
			}
			if id, ok := info.UUIDFor(ep); ok {
				inv.UUID = id.String()
			}
		case smbios.BaseBoardInfo:
			inv.Board = Product{
				Vendor:  str(t, info.Manufacturer()),
				Product: str(t, info.Product()),
				Version: str(t, info.Version()),
				Serial:  str(t, info.SerialNumber()),
			}
		case smbios.ProcessorInfo:
			if !info.Populated() {
				continue
			}
			inv.Processors = append(inv.Processors, Processor{
				Socket:       str(t, info.SocketDesignation()),
				Manufacturer: str(t, info.Manufacturer()),
				Version:      str(t, info.Version()),
				Cores:        info.CoreCount(),
				Threads:      info.ThreadCount(),
				MaxSpeed:     info.MaxSpeed(),
			})
		case smbios.MemoryDevice:
			size, ok := info.SizeBytes()
			if !ok || size == 0 {
				continue
			}
			inv.Memory = append(inv.Memory, MemoryModule{
				Locator:      str(t, info.DeviceLocator()),
				Manufacturer: str(t, info.Manufacturer()),
				PartNumber:   str(t, info.PartNumber()),
				Size:         size,
				Speed:        info.Speed(),
			})
			inv.InstalledMemory += size
		}
	}

	return inv
}

// Print writes a human readable form of the inventory
func (inv *Inventory) Print(w io.Writer) error {
	p := printer{w: w}
	p.printf("System:    %s %s (serial: %s)\n", inv.System.Vendor, inv.System.Product, inv.System.Serial)
	if inv.UUID != "" {
		p.printf("UUID:      %s\n", inv.UUID)
	}
	p.printf("Board:     %s %s %s (serial: %s)\n", inv.Board.Vendor, inv.Board.Product, inv.Board.Version, inv.Board.Serial)
	p.printf("BIOS:      %s %s (%s)\n", inv.BIOS.Vendor, inv.BIOS.Version, inv.BIOS.Date)

	for _, cpu := range inv.Processors {
		p.printf("CPU:       %s: %s, %d cores, %d threads, %d MHz\n", cpu.Socket, cpu.Version, cpu.Cores, cpu.Threads, cpu.MaxSpeed)
	}

	for _, m := range inv.Memory {
		p.printf("Memory:    %s: %s %s %s @ %d MT/s\n", m.Locator, humanize.IBytes(m.Size), m.Manufacturer, m.PartNumber, m.Speed)
	}
	p.printf("Installed: %s\n", humanize.IBytes(inv.InstalledMemory))

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
