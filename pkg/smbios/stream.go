package smbios

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/ulikunitz/xz"
)

const (
	// SysfsEntryPoint is where the kernel exposes the entry point structure
	SysfsEntryPoint = "/sys/firmware/dmi/tables/smbios_entry_point"
	// SysfsDMI is where the kernel exposes the structure table
	SysfsDMI = "/sys/firmware/dmi/tables/DMI"

	// dumpTableOffset is where `dmidecode --dump-bin` stores the table
	dumpTableOffset = 0x20
)

// ReadSysfs reads the entry point and the structure table from sysfs. root
// is prefixed to the sysfs paths, use "" or "/" for the running system.
func ReadSysfs(root string) (EntryPoint, []byte, error) {
	epPath := filepath.Join(root, SysfsEntryPoint)
	raw, err := os.ReadFile(epPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read entry point '%s'", epPath)
	}

	ep, err := ParseEntryPoint(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid entry point '%s'", epPath)
	}

	if !ep.IsValid() {
		log.Warn().Str("path", epPath).Msg("entry point checksum does not match")
	}

	tablePath := filepath.Join(root, SysfsDMI)
	table, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read structure table '%s'", tablePath)
	}

	return ep, table, nil
}

// ReadDump reads a `dmidecode --dump-bin` image. The entry point is stored
// at the start of the file and the structure table at offset 0x20. Files
// with a .xz extension are decompressed first.
func ReadDump(path string) (EntryPoint, []byte, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	ep, err := ParseEntryPoint(raw)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid dump '%s'", path)
	}

	if len(raw) < dumpTableOffset {
		return nil, nil, errors.Wrapf(ErrTooShort, "dump '%s' has no structure table", path)
	}

	return ep, raw[dumpTableOffset:], nil
}

// ReadFile reads a whole file. Files with a .xz extension are decompressed.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open '%s'", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		r, err = xz.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open xz stream '%s'", path)
		}
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, errors.Wrapf(err, "failed to read '%s'", path)
	}

	return buf.Bytes(), nil
}
