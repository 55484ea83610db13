package smbios

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	require.Equal(t, "BIOS", TypeBIOS.String())
	require.Equal(t, "MemoryDevice", TypeMemoryDevice.String())
	require.Equal(t, "EndOfTable", TypeEndOfTable.String())
	require.Equal(t, "Custom Type 200", Type(200).String())
}

func TestParseTypeRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		typ := Type(i)
		parsed, err := ParseType(typ.String())
		require.NoError(t, err, typ.String())
		require.Equal(t, typ, parsed)
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Processor")
	require.NoError(t, err)
	require.Equal(t, TypeProcessor, typ)

	typ, err = ParseType("17")
	require.NoError(t, err)
	require.Equal(t, TypeMemoryDevice, typ)

	typ, err = ParseType("200")
	require.NoError(t, err)
	require.Equal(t, Type(200), typ)

	typ, err = ParseType("Custom Type 200")
	require.NoError(t, err)
	require.Equal(t, Type(200), typ)

	_, err = ParseType("Custom Type")
	require.Error(t, err)

	_, err = ParseType("256")
	require.Error(t, err)

	_, err = ParseType("17abc")
	require.Error(t, err)

	_, err = ParseType("nothing")
	require.Error(t, err)
}
