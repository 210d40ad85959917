package dbase

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	headerSize = 32 // Size of the fixed leading header structure
	columnSize = 32 // Size of one column descriptor
)

// Containing DBF header information like dBase FileType, last change and rows count.
// https://docs.microsoft.com/en-us/previous-versions/visualstudio/foxpro/st4a0s68(v=vs.80)#table-header-record-structure
type Header struct {
	FileType   byte     // File type flag
	Year       uint8    // Last update year (0-99)
	Month      uint8    // Last update month
	Day        uint8    // Last update day
	RowsCount  uint32   // Number of rows in file
	FirstRow   uint16   // Position of first data row
	RowLength  uint16   // Length of one data row, including delete flag
	Reserved   [16]byte // Reserved
	TableFlags byte     // Table flags
	CodePage   byte     // Code page mark
	Reserved2  [2]byte  // Reserved
}

// Parses the year, month and day to time.Time.
// The year is stored in decades (2 digits) and added to the base century (2000).
// Note: we assume the year is between 2000 and 2099 as default.
func (h *Header) Modified(base int) time.Time {
	if base == 0 {
		base = 2000
	}
	return time.Date(base+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.Local)
}

// Returns the amount of records in the table, deleted ones included
func (h *Header) RecordsCount() uint32 {
	return h.RowsCount
}

// Returns the calculated file size based on the header info, without the trailing EOF marker
func (h *Header) FileSize() int64 {
	return int64(h.FirstRow) + int64(h.RowsCount)*int64(h.RowLength)
}

// Version returns the file type byte as FileVersion
func (h *Header) Version() FileVersion {
	return FileVersion(h.FileType)
}

// ReadHeader parses the table header and the column descriptors from r.
// size is the total number of bytes available in r.
// Column positions are computed from the column lengths, the stored displacement is ignored.
func ReadHeader(r io.ReaderAt, size int64) (*Header, []*Column, error) {
	debugf("Reading header...")
	if size < headerSize {
		return nil, nil, newError("dbase-header-readheader-1", fmt.Errorf("%w: file has %d bytes, header needs %d", ErrMalformedHeader, size, headerSize))
	}
	b := make([]byte, headerSize)
	if err := readFull(r, b, 0); err != nil {
		return nil, nil, newError("dbase-header-readheader-2", err)
	}
	h := &Header{}
	// LittleEndian - Integers in table files are stored with the least significant byte first.
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, h); err != nil {
		return nil, nil, newError("dbase-header-readheader-3", fmt.Errorf("%w: %v", ErrMalformedHeader, err))
	}
	debugf("Header: version 0x%02x (%v) - rows: %d - first row: %d - row length: %d - code page: 0x%02x", h.FileType, h.Version(), h.RowsCount, h.FirstRow, h.RowLength, h.CodePage)
	if h.FirstRow < headerSize+1 {
		return nil, nil, newError("dbase-header-readheader-4", fmt.Errorf("%w: header length %d is shorter than %d", ErrMalformedHeader, h.FirstRow, headerSize+1))
	}
	if h.RowLength == 0 {
		return nil, nil, newError("dbase-header-readheader-5", fmt.Errorf("%w: record length is zero", ErrMalformedHeader))
	}
	if size < int64(h.FirstRow) {
		return nil, nil, newError("dbase-header-readheader-6", fmt.Errorf("%w: file has %d bytes, header length is %d", ErrMalformedHeader, size, h.FirstRow))
	}
	if !h.Version().Known() {
		debugf("Untested file version 0x%02x, reading anyway", h.FileType)
	}
	raw := make([]byte, h.FirstRow)
	if err := readFull(r, raw, 0); err != nil {
		return nil, nil, newError("dbase-header-readheader-7", err)
	}
	columns, err := readColumns(raw, h)
	if err != nil {
		return nil, nil, newError("dbase-header-readheader-8", err)
	}
	return h, columns, nil
}

// Reads column descriptors from the raw header, starting at pos 32,
// until it finds the header record terminator (0x0D) or reaches the first row.
func readColumns(raw []byte, h *Header) ([]*Column, error) {
	debugf("Reading columns...")
	columns := make([]*Column, 0)
	position := uint32(1) // deleted flag
	for offset := headerSize; offset < len(raw); offset += columnSize {
		if Marker(raw[offset]) == ColumnEnd {
			break
		}
		if offset+columnSize > len(raw) {
			debugf("Descriptor at offset %d crosses the header length %d, stopping", offset, len(raw))
			break
		}
		column := &Column{}
		if err := binary.Read(bytes.NewReader(raw[offset:offset+columnSize]), binary.LittleEndian, column); err != nil {
			return nil, fmt.Errorf("%w: column at offset %d: %v", ErrMalformedHeader, offset, err)
		}
		if column.Length == 0 && DataType(column.DataType) != Memo {
			return nil, fmt.Errorf("%w: column %q of type %v has zero length", ErrMalformedHeader, column.Name(), column.Type())
		}
		column.Position = position
		position += uint32(column.Length)
		debugf("Found column %v of type %v at offset: %d - position in row: %d", column.Name(), column.Type(), offset, column.Position)
		columns = append(columns, column)
	}
	if position > uint32(h.RowLength) {
		return nil, fmt.Errorf("%w: columns need %d bytes per row, record length is %d", ErrMalformedHeader, position, h.RowLength)
	}
	return columns, nil
}

// readFull reads len(b) bytes at offset off.
// A short read is reported as ErrIncomplete, any other failure as ErrIO.
func readFull(r io.ReaderAt, b []byte, off int64) error {
	n, err := r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: read %d of %d bytes at offset %d", ErrIncomplete, n, len(b), off)
	}
	return fmt.Errorf("%w: %v", ErrIO, err)
}
