//go:build windows

package dbase

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

var DefaultIO WindowsIO

// WindowsIO implements the IO interface for Windows systems.
type WindowsIO struct{}

func (w WindowsIO) OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbase-io-windows-opentable-1", fmt.Errorf("missing configuration"))
	}
	debugf("Opening table: %s - InterpretCodepage: %v", config.Filename, config.InterpretCodePage)
	if len(strings.TrimSpace(config.Filename)) == 0 {
		return nil, newError("dbase-io-windows-opentable-2", fmt.Errorf("missing filename"))
	}
	fileName, err := _findFile(filepath.Clean(config.Filename))
	if err != nil {
		return nil, newError("dbase-io-windows-opentable-3", err)
	}
	fd, err := windows.Open(fileName, windows.O_RDONLY|windows.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) || errors.Is(err, windows.ERROR_PATH_NOT_FOUND) {
			return nil, newError("dbase-io-windows-opentable-4", fmt.Errorf("%w: %s", ErrFileNotFound, config.Filename))
		}
		return nil, newError("dbase-io-windows-opentable-5", fmt.Errorf("%w: opening file failed with error: %v", ErrIO, err))
	}
	return &File{
		config: config,
		io:     w,
		handle: &fd,
	}, nil
}

func (w WindowsIO) Close(file *File) error {
	fd, err := w.getHandle(file)
	if err != nil {
		return newError("dbase-io-windows-close-1", err)
	}
	debugf("Closing file: %s", file.config.Filename)
	if err := windows.Close(*fd); err != nil {
		return newError("dbase-io-windows-close-2", fmt.Errorf("%w: closing DBF failed with error: %v", ErrIO, err))
	}
	return nil
}

// ReadAt seeks to the offset and reads until p is full.
func (w WindowsIO) ReadAt(file *File, p []byte, off int64) (int, error) {
	fd, err := w.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-windows-readat-1", err)
	}
	if _, err := windows.Seek(*fd, off, 0); err != nil {
		return 0, newError("dbase-io-windows-readat-2", fmt.Errorf("%w: seek failed with error: %v", ErrIO, err))
	}
	read := 0
	for read < len(p) {
		n, err := windows.Read(*fd, p[read:])
		if err != nil {
			return read, newError("dbase-io-windows-readat-3", err)
		}
		if n == 0 {
			return read, io.EOF
		}
		read += n
	}
	return read, nil
}

func (w WindowsIO) Size(file *File) (int64, error) {
	fd, err := w.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-windows-size-1", err)
	}
	size, err := windows.Seek(*fd, 0, 2)
	if err != nil {
		return 0, newError("dbase-io-windows-size-2", fmt.Errorf("%w: seek failed with error: %v", ErrIO, err))
	}
	return size, nil
}

func (w WindowsIO) getHandle(file *File) (*windows.Handle, error) {
	fd, ok := file.handle.(*windows.Handle)
	if !ok {
		return nil, fmt.Errorf("handle is of wrong type %T expected *windows.Handle", file.handle)
	}
	return fd, nil
}
