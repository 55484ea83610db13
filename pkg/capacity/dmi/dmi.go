package dmi

import (
	"fmt"
	"strings"

	"github.com/threefoldtech/dmi/pkg/smbios"
)

// DecoderVersion is the information about the decoder in this package
const DecoderVersion = `Go smbios decoder v1.0.0`

// notSpecified is rendered for a string field that references no string
const notSpecified = "Not Specified"

// DMI represents the decoded structure table as a list of sections, as well
// as information about the tool used to get these sections.
// Property in section is in the form of key value pairs where values are optional
// and may include a list of items as well.
// k: [v]
//
//	[
//		item1
//		item2
//		...
//	]
type DMI struct {
	Tooling  Tooling   `json:"tooling"`
	Sections []Section `json:"sections"`
}

// Tooling holds the information and version about the tool used to
// read DMI information
type Tooling struct {
	Aggregator string `json:"aggregator"`
	Decoder    string `json:"decoder"`
}

// PropertyData represents a key value pair with optional list of items
type PropertyData struct {
	Val   string   `json:"value"`
	Items []string `json:"items,omitempty"`
}

// Section represents a complete section like BIOS or Baseboard
type Section struct {
	HandleLine  string       `json:"handleline"`
	TypeStr     string       `json:"typestr,omitempty"`
	Type        smbios.Type  `json:"typenum"`
	SubSections []SubSection `json:"subsections"`
}

// SubSection represents part of a section, identified by a title
type SubSection struct {
	Title      string                  `json:"title"`
	Properties map[string]PropertyData `json:"properties,omitempty"`
}

// Decode reads the structure table from sysfs and renders it. root is
// prefixed to the sysfs paths.
func Decode(root string) (*DMI, error) {
	ep, raw, err := smbios.ReadSysfs(root)
	if err != nil {
		return nil, err
	}

	return FromTables(ep, smbios.Decode(raw)), nil
}

// FromTables renders decoded tables. ep can be nil if the entry point is not
// known (a bare table file).
func FromTables(ep smbios.EntryPoint, tables []smbios.Table) *DMI {
	tooling := Tooling{
		Aggregator: "unknown",
		Decoder:    DecoderVersion,
	}

	if ep != nil {
		v := ep.Version()
		tooling.Aggregator = fmt.Sprintf("SMBIOS %d.%d present.", v.Major, v.Minor)
	}

	secs := make([]Section, 0, len(tables))
	for i := range tables {
		secs = append(secs, newSection(ep, &tables[i]))
	}

	return &DMI{
		Tooling:  tooling,
		Sections: secs,
	}
}

func newSection(ep smbios.EntryPoint, t *smbios.Table) Section {
	return Section{
		HandleLine:  t.Header.String(),
		TypeStr:     t.Header.Type.String(),
		Type:        t.Header.Type,
		SubSections: []SubSection{render(ep, t)},
	}
}

// Section returns the first section of type t
func (d *DMI) Section(t smbios.Type) (Section, bool) {
	for _, sec := range d.Sections {
		if sec.Type == t {
			return sec, true
		}
	}

	return Section{}, false
}

// Property returns the value of property key in the first section of type t
func (d *DMI) Property(t smbios.Type, key string) string {
	sec, ok := d.Section(t)
	if !ok || len(sec.SubSections) < 1 {
		return ""
	}

	return sec.SubSections[0].Properties[key].Val
}

// BoardVersion returns the version of the base board
func (d *DMI) BoardVersion() string {
	return d.Property(smbios.TypeBaseboard, "Version")
}

// BoardSerial returns the serial number of the base board
func (d *DMI) BoardSerial() string {
	return d.Property(smbios.TypeBaseboard, "Serial Number")
}

// hexRows formats b as rows of 16 hex bytes
func hexRows(b []byte) []string {
	var rows []string
	for len(b) > 0 {
		n := 16
		if len(b) < n {
			n = len(b)
		}

		hex := make([]string, n)
		for i, c := range b[:n] {
			hex[i] = fmt.Sprintf("%02X", c)
		}
		rows = append(rows, strings.Join(hex, " "))
		b = b[n:]
	}

	return rows
}
