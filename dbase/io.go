package dbase

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IO is the interface to access the DBF file.
// Three implementations are available:
// - UnixIO (pread based file access on unix systems)
// - WindowsIO (file access through the Windows API)
// - GenericIO (for any custom file access implementing io.ReadSeeker)
// The IO interface can be implemented for any custom file access.
type IO interface {
	OpenTable(config *Config) (*File, error)
	Close(file *File) error
	ReadAt(file *File, p []byte, off int64) (int, error)
	Size(file *File) (int64, error)
}

// fileReader adapts a File and its IO to io.ReaderAt
type fileReader struct {
	file *File
}

func (r fileReader) ReadAt(p []byte, off int64) (int, error) {
	return r.file.io.ReadAt(r.file, p, off)
}

// _findFile resolves the file name case insensitively within its directory,
// tables copied from DOS systems are often upper case.
func _findFile(name string) (string, error) {
	debugf("Searching for file: %s", name)
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	files, err := os.ReadDir(filepath.Dir(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %v", ErrIO, err)
	}
	for _, file := range files {
		if strings.EqualFold(file.Name(), filepath.Base(name)) {
			debugf("Found file: %s", file.Name())
			return filepath.Join(filepath.Dir(name), file.Name()), nil
		}
	}
	return name, nil
}
