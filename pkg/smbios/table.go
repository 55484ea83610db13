// Package smbios decodes the SMBIOS (DMI) structure table exposed by the
// platform firmware into typed records, without relying on external tools
// like dmidecode.
package smbios

import "fmt"

// HeaderSize is the size of the header that prefixes every structure
const HeaderSize = 4

// Header is the common header of all structures
type Header struct {
	Type Type `json:"type"`
	// Length of the formatted area including the header itself
	Length uint8 `json:"length"`
	// Handle is assigned by the firmware and unique in the table. Other
	// structures use it to reference this one.
	Handle uint16 `json:"handle"`
}

func (h Header) String() string {
	return fmt.Sprintf("Handle 0x%04X, DMI type %d, %d bytes", h.Handle, uint8(h.Type), h.Length)
}

// Table is a single decoded structure: its header, the formatted area that
// follows it and the strings set that trails the formatted area.
type Table struct {
	Header Header `json:"header"`
	// Data holds the formatted area without the header. It can be shorter
	// than Header.Length-HeaderSize if the buffer was truncated.
	Data []byte `json:"data"`
	// Strings in storage order. Fields reference them with a 1-based index.
	Strings []string `json:"strings"`
}

// String resolves a string reference. Index 0 means "no string", any index
// past the end of the strings set is reported as missing as well.
func (t *Table) String(index uint8) (string, bool) {
	if index == 0 || int(index) > len(t.Strings) {
		return "", false
	}

	return t.Strings[index-1], true
}

// Truncated reports whether the formatted area is shorter than declared
func (t *Table) Truncated() bool {
	return len(t.Data) < int(t.Header.Length)-HeaderSize
}
