package app

import (
	"io"
	"io/fs"
	"os"
)

// fileSystem is the part of the file system flags are kept on
type fileSystem interface {
	Create(path string) (io.Closer, error)
	MkdirAll(path string, perm fs.FileMode) error
	Exists(path string) (bool, error)
	RemoveAll(path string) error
}

var defaultFS fileSystem = osFS{}

type osFS struct{}

func (osFS) Create(path string) (io.Closer, error) {
	return os.Create(path)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func (osFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
