package smbios

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"
)

// Decoder walks a structure table buffer one structure at a time.
// A Decoder is not safe for concurrent use, but independent decoders can
// walk the same buffer concurrently.
type Decoder struct {
	buf  []byte
	i    int
	done bool
}

// NewDecoder creates a decoder over buf. The buffer is never modified.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Offset of the decoder in the buffer
func (d *Decoder) Offset() int {
	return d.i
}

// Next decodes the next structure. It returns false once the end of table
// marker is found, the buffer is exhausted or a malformed header is read.
// After it returned false once, it keeps returning false.
func (d *Decoder) Next() (Table, bool) {
	if d.done {
		return Table{}, false
	}

	if len(d.buf)-d.i < HeaderSize {
		if d.i != len(d.buf) {
			log.Debug().Int("offset", d.i).Int("remaining", len(d.buf)-d.i).Msg("smbios table truncated in header")
		}
		return d.stop()
	}

	header := Header{
		Type:   Type(d.buf[d.i]),
		Length: d.buf[d.i+1],
		Handle: binary.LittleEndian.Uint16(d.buf[d.i+2 : d.i+4]),
	}
	d.i += HeaderSize

	if header.Type == TypeEndOfTable {
		return d.stop()
	}

	if header.Length < HeaderSize {
		log.Debug().
			Int("offset", d.i-HeaderSize).
			Uint8("length", header.Length).
			Msg("malformed smbios structure length, stop decoding")
		return d.stop()
	}

	size := int(header.Length) - HeaderSize
	if remaining := len(d.buf) - d.i; size > remaining {
		log.Debug().
			Int("offset", d.i).
			Int("expected", size).
			Int("available", remaining).
			Msg("smbios structure truncated")
		size = remaining
	}

	data := make([]byte, size)
	copy(data, d.buf[d.i:d.i+size])
	d.i += size

	var strings []string
	strings, d.i = readStrings(d.buf, d.i)

	return Table{
		Header:  header,
		Data:    data,
		Strings: strings,
	}, true
}

func (d *Decoder) stop() (Table, bool) {
	d.done = true
	return Table{}, false
}

// Decode decodes all structures in buf until the end of table marker, the
// end of the buffer or the first malformed header. Truncated input is not
// an error, the structures decoded so far are returned.
func Decode(buf []byte) []Table {
	var tables []Table
	d := NewDecoder(buf)
	for {
		t, ok := d.Next()
		if !ok {
			break
		}
		tables = append(tables, t)
	}

	return tables
}
