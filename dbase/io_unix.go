//go:build unix

package dbase

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

var DefaultIO UnixIO

// UnixIO implements the IO interface for unix systems.
// Rows are read with pread, the file offset is never moved.
type UnixIO struct{}

func (u UnixIO) OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbase-io-unix-opentable-1", fmt.Errorf("missing configuration"))
	}
	debugf("Opening table: %s - InterpretCodepage: %v", config.Filename, config.InterpretCodePage)
	if len(strings.TrimSpace(config.Filename)) == 0 {
		return nil, newError("dbase-io-unix-opentable-2", fmt.Errorf("missing filename"))
	}
	fileName, err := _findFile(filepath.Clean(config.Filename))
	if err != nil {
		return nil, newError("dbase-io-unix-opentable-3", err)
	}
	fd, err := unix.Open(fileName, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError("dbase-io-unix-opentable-4", fmt.Errorf("%w: %s", ErrFileNotFound, config.Filename))
		}
		return nil, newError("dbase-io-unix-opentable-5", fmt.Errorf("%w: opening file failed with error: %v", ErrIO, err))
	}
	return &File{
		config: config,
		io:     u,
		handle: fd,
	}, nil
}

func (u UnixIO) Close(file *File) error {
	fd, err := u.getHandle(file)
	if err != nil {
		return newError("dbase-io-unix-close-1", err)
	}
	debugf("Closing file: %s", file.config.Filename)
	if err := unix.Close(fd); err != nil {
		return newError("dbase-io-unix-close-2", fmt.Errorf("%w: closing DBF failed with error: %v", ErrIO, err))
	}
	return nil
}

func (u UnixIO) ReadAt(file *File, p []byte, off int64) (int, error) {
	fd, err := u.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-unix-readat-1", err)
	}
	read := 0
	for read < len(p) {
		n, err := unix.Pread(fd, p[read:], off+int64(read))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return read, newError("dbase-io-unix-readat-2", err)
		}
		if n == 0 {
			return read, io.EOF
		}
		read += n
	}
	return read, nil
}

func (u UnixIO) Size(file *File) (int64, error) {
	fd, err := u.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-unix-size-1", err)
	}
	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return 0, newError("dbase-io-unix-size-2", fmt.Errorf("%w: stat failed with error: %v", ErrIO, err))
	}
	return stat.Size, nil
}

func (u UnixIO) getHandle(file *File) (int, error) {
	fd, ok := file.handle.(int)
	if !ok {
		return -1, fmt.Errorf("handle is of wrong type %T expected int", file.handle)
	}
	if fd < 0 {
		return -1, fmt.Errorf("%w: file is closed", ErrIO)
	}
	return fd, nil
}
