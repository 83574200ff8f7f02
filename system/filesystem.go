// Package system abstracts the file system that documents are read from.
package system

import (
	"io/fs"
	"os"
	"path/filepath"
)

// VirtualFS is the read-only file system documents are loaded from.
type VirtualFS interface {
	fs.FS
}

// FileSystem reads from the host file system. Unlike os.DirFS it accepts absolute and relative paths as given.
type FileSystem struct{}

var _ VirtualFS = (*FileSystem)(nil)

func (fs *FileSystem) Open(name string) (fs.File, error) {
	return os.Open(filepath.Clean(name))
}
