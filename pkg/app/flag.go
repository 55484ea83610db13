package app

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// FlagsDir is where the daemons keep their flags
	FlagsDir = "/var/run/dmi/flags"

	// Reported is set once the hardware report has been accepted by all
	// configured stores
	Reported = "hardware-reported"
)

// SetFlag creates the flag file key in dir
func SetFlag(dir, key string) error {
	return setFlag(key, dir, defaultFS)
}

// CheckFlag returns true if the flag key is set in dir
func CheckFlag(dir, key string) bool {
	return checkFlag(key, dir, defaultFS)
}

// DeleteFlag removes the flag key from dir
func DeleteFlag(dir, key string) error {
	return deleteFlag(key, dir, defaultFS)
}

func validKey(key string) error {
	if key == "" || strings.ContainsRune(key, filepath.Separator) || key == "." || key == ".." {
		return errors.Errorf("invalid flag '%s'", key)
	}
	return nil
}

func setFlag(key, dir string, fs fileSystem) error {
	if err := validKey(key); err != nil {
		return err
	}

	if err := fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create flags directory")
	}

	f, err := fs.Create(filepath.Join(dir, key))
	if err != nil {
		return errors.Wrap(err, "failed to create the flag file")
	}

	return f.Close()
}

func checkFlag(key, dir string, fs fileSystem) bool {
	ok, err := fs.Exists(filepath.Join(dir, key))
	if err != nil {
		log.Warn().Err(err).Str("flag", key).Msg("failed to check flag")
	}
	return ok
}

func deleteFlag(key, dir string, fs fileSystem) error {
	if err := validKey(key); err != nil {
		return err
	}

	if err := fs.RemoveAll(filepath.Join(dir, key)); err != nil {
		return errors.Wrap(err, "failed to remove flag file")
	}
	return nil
}
