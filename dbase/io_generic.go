package dbase

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// GenericIO implements the IO interface on any io.ReadSeeker.
// If Handle is nil the configured file name is opened with os.Open.
type GenericIO struct {
	Handle io.ReadSeeker
}

func (g GenericIO) OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbase-io-generic-opentable-1", fmt.Errorf("missing configuration"))
	}
	debugf("Opening table from custom io interface - InterpretCodepage: %v", config.InterpretCodePage)
	handle := g.Handle
	if handle == nil {
		f, err := os.Open(config.Filename)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, newError("dbase-io-generic-opentable-2", fmt.Errorf("%w: %s", ErrFileNotFound, config.Filename))
			}
			return nil, newError("dbase-io-generic-opentable-3", fmt.Errorf("%w: %v", ErrIO, err))
		}
		handle = f
	}
	return &File{
		config: config,
		io:     g,
		handle: handle,
	}, nil
}

// Close closes the handle if it implements io.Closer.
func (g GenericIO) Close(file *File) error {
	if closer, ok := file.handle.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return newError("dbase-io-generic-close-1", fmt.Errorf("%w: %v", ErrIO, err))
		}
	}
	return nil
}

func (g GenericIO) ReadAt(file *File, p []byte, off int64) (int, error) {
	handle, err := g.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-generic-readat-1", err)
	}
	if r, ok := handle.(io.ReaderAt); ok {
		return r.ReadAt(p, off)
	}
	if _, err := handle.Seek(off, io.SeekStart); err != nil {
		return 0, newError("dbase-io-generic-readat-2", fmt.Errorf("%w: %v", ErrIO, err))
	}
	n, err := io.ReadFull(handle, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		err = io.EOF
	}
	return n, err
}

func (g GenericIO) Size(file *File) (int64, error) {
	handle, err := g.getHandle(file)
	if err != nil {
		return 0, newError("dbase-io-generic-size-1", err)
	}
	size, err := handle.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, newError("dbase-io-generic-size-2", fmt.Errorf("%w: %v", ErrIO, err))
	}
	return size, nil
}

func (g GenericIO) getHandle(file *File) (io.ReadSeeker, error) {
	handle, ok := file.handle.(io.ReadSeeker)
	if !ok {
		return nil, fmt.Errorf("handle is of wrong type %T expected io.ReadSeeker", file.handle)
	}
	return handle, nil
}
