package smbios

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

// readStrings reads the strings set that starts at offset i of buf and
// returns the strings plus the offset right after the set.
//
// The first string is always kept, even when empty. Any later empty string
// is the terminator. A structure without strings (two zero bytes) therefore
// yields a single empty string instead of an empty set, while both zero
// bytes are still consumed.
func readStrings(buf []byte, i int) ([]string, int) {
	var ss []string
	for i < len(buf) {
		start := i
		for i < len(buf) && buf[i] != 0 {
			i++
		}
		run := buf[start:i]
		if i < len(buf) {
			// skip the null terminator
			i++
		}

		if len(run) == 0 && len(ss) != 0 {
			break
		}

		ss = append(ss, widen(run))
	}

	return ss, i
}

// widen maps every byte to the code point of the same value (latin1), the
// strings set is single byte text.
func widen(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		// can't happen with latin1, every byte has a mapping
		log.Debug().Err(err).Msg("failed to decode smbios string")
		return string(b)
	}

	return string(s)
}
