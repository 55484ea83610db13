package smbios

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// structure builds the raw bytes of a structure: header, formatted area and
// the raw strings set (including its terminators).
func structure(typ Type, handle uint16, data []byte, strs string) []byte {
	b := []byte{byte(typ), byte(len(data) + HeaderSize), byte(handle), byte(handle >> 8)}
	b = append(b, data...)
	return append(b, strs...)
}

func endOfTable() []byte {
	return structure(TypeEndOfTable, 0xfeff, nil, "\x00\x00")
}

func concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

func TestDecodeEmpty(t *testing.T) {
	require.Empty(t, Decode(nil))
	require.Empty(t, Decode([]byte{}))
	require.Empty(t, Decode([]byte{0x00, 0x18}))
}

func TestDecodeEndOfTable(t *testing.T) {
	require.Empty(t, Decode(endOfTable()))

	buf := concat(
		structure(TypeSystem, 1, []byte{1, 2, 3, 4}, "a\x00b\x00\x00"),
		endOfTable(),
		structure(TypeChassis, 2, []byte{1, 2, 3, 4, 5}, "\x00\x00"),
	)

	tables := Decode(buf)
	require.Len(t, tables, 1)
	require.Equal(t, TypeSystem, tables[0].Header.Type)
}

func TestDecodeStrings(t *testing.T) {
	t.Run("no strings", func(t *testing.T) {
		tables := Decode(concat(
			structure(TypeBaseboard, 2, []byte{0, 0, 0, 0, 0}, "\x00\x00"),
			structure(TypeChassis, 3, []byte{0, 3, 0, 0, 0}, "\x00\x00"),
		))
		require.Len(t, tables, 2)
		require.Equal(t, []string{""}, tables[0].Strings)
		require.Equal(t, []string{""}, tables[1].Strings)
		require.Equal(t, uint16(3), tables[1].Header.Handle)
	})

	t.Run("strings", func(t *testing.T) {
		buf := structure(TypeSystem, 1, []byte{1, 2, 0, 0}, "Dell\x00XPS\x00\x00")
		tables := Decode(buf)
		require.Len(t, tables, 1)
		require.Equal(t, []string{"Dell", "XPS"}, tables[0].Strings)

		d := NewDecoder(buf)
		_, ok := d.Next()
		require.True(t, ok)
		require.Equal(t, len(buf), d.Offset())
	})

	t.Run("no strings consumes both nulls", func(t *testing.T) {
		buf := structure(TypeBaseboard, 2, []byte{0, 0, 0, 0, 0}, "\x00\x00")
		d := NewDecoder(buf)
		_, ok := d.Next()
		require.True(t, ok)
		require.Equal(t, len(buf), d.Offset())
	})

	t.Run("latin1", func(t *testing.T) {
		tables := Decode(structure(TypeSystem, 1, []byte{1, 0, 0, 0}, "Caf\xe9\x00\x00"))
		require.Len(t, tables, 1)
		require.Equal(t, []string{"Café"}, tables[0].Strings)
	})

	t.Run("unterminated", func(t *testing.T) {
		tables := Decode(structure(TypeSystem, 1, []byte{1, 0, 0, 0}, "Dell"))
		require.Len(t, tables, 1)
		require.Equal(t, []string{"Dell"}, tables[0].Strings)
	})
}

func TestDecodeRecord(t *testing.T) {
	buf := concat(
		structure(TypeBIOS, 0x0000, []byte{1, 2, 0x00, 0xf0, 3, 0x1f, 0, 0, 0, 0, 0, 0, 0, 0}, "LENOVO\x0029CN40WW\x0004/13/2011\x00\x00"),
		structure(TypeSystem, 0x0001, []byte{1, 0, 0, 2}, "LENOVO\x002677240001087\x00\x00"),
		endOfTable(),
	)

	tables := Decode(buf)
	require.Len(t, tables, 2)

	bios := tables[0]
	require.Equal(t, Header{Type: TypeBIOS, Length: 18, Handle: 0}, bios.Header)
	require.Len(t, bios.Data, 14)
	require.False(t, bios.Truncated())
	require.Equal(t, []string{"LENOVO", "29CN40WW", "04/13/2011"}, bios.Strings)

	sys := tables[1]
	require.Equal(t, uint16(1), sys.Header.Handle)
	require.Equal(t, []byte{1, 0, 0, 2}, sys.Data)

	serial, ok := sys.String(sys.Data[3])
	require.True(t, ok)
	require.Equal(t, "2677240001087", serial)
}

func TestDecodeMalformed(t *testing.T) {
	t.Run("truncated payload", func(t *testing.T) {
		buf := structure(TypeBIOS, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, "")
		buf = buf[:HeaderSize+6]

		tables := Decode(buf)
		require.Len(t, tables, 1)
		require.Equal(t, uint8(18), tables[0].Header.Length)
		require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, tables[0].Data)
		require.True(t, tables[0].Truncated())
		require.Empty(t, tables[0].Strings)

		_, ok := Get[BIOSInfo](&tables[0])
		require.False(t, ok)
	})

	t.Run("length below header size", func(t *testing.T) {
		buf := concat(
			structure(TypeSystem, 1, []byte{0, 0, 0, 0}, "\x00\x00"),
			[]byte{byte(TypeChassis), 3, 0x02, 0x00},
			structure(TypeChassis, 3, []byte{0, 3, 0, 0, 0}, "\x00\x00"),
		)

		tables := Decode(buf)
		require.Len(t, tables, 1)
		require.Equal(t, TypeSystem, tables[0].Header.Type)
	})

	t.Run("truncated header", func(t *testing.T) {
		buf := concat(
			structure(TypeSystem, 1, []byte{0, 0, 0, 0}, "\x00\x00"),
			[]byte{byte(TypeChassis), 9},
		)

		tables := Decode(buf)
		require.Len(t, tables, 1)
	})
}

func TestDecoderNext(t *testing.T) {
	buf := concat(
		structure(TypeSystem, 1, []byte{0, 0, 0, 0}, "\x00\x00"),
		endOfTable(),
	)

	d := NewDecoder(buf)
	table, ok := d.Next()
	require.True(t, ok)
	require.Equal(t, TypeSystem, table.Header.Type)
	require.Equal(t, 10, d.Offset())

	_, ok = d.Next()
	require.False(t, ok)

	// stays done
	_, ok = d.Next()
	require.False(t, ok)
}

func TestDecodeDoesNotAlias(t *testing.T) {
	buf := structure(TypeSystem, 1, []byte{1, 2, 3, 4}, "\x00\x00")
	tables := Decode(buf)
	require.Len(t, tables, 1)

	buf[HeaderSize] = 0xff
	require.Equal(t, byte(1), tables[0].Data[0])
}

func TestTableString(t *testing.T) {
	table := Table{Strings: []string{"Dell", "XPS"}}

	_, ok := table.String(0)
	require.False(t, ok)

	s, ok := table.String(1)
	require.True(t, ok)
	require.Equal(t, "Dell", s)

	s, ok = table.String(2)
	require.True(t, ok)
	require.Equal(t, "XPS", s)

	_, ok = table.String(3)
	require.False(t, ok)
}
