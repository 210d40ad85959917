package dbase

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// File is an open dBase table.
// Rows are read sequentially through an internal row pointer.
type File struct {
	config     *Config     // The config used when working with the DBF file.
	handle     interface{} // DBase file handle.
	io         IO          // The IO interface used to work with the DBF file.
	header     *Header     // DBase file header containing relevant information.
	columns    []*Column   // Column descriptors in file order.
	converter  EncodingConverter
	rowPointer uint32 // Index of the next row returned by Next.
	deleted    uint32 // Deleted rows seen by Next.
	buffer     []byte // Reused row buffer.
}

// OpenTable opens a dBase table with the given configuration.
// The header and column descriptors are read and validated before it returns.
func OpenTable(config *Config) (*File, error) {
	if config == nil {
		return nil, newError("dbase-file-opentable-1", fmt.Errorf("missing configuration"))
	}
	access := config.IO
	if access == nil {
		access = DefaultIO
	}
	file, err := access.OpenTable(config)
	if err != nil {
		return nil, newError("dbase-file-opentable-2", err)
	}
	if file.io == nil {
		file.io = access
	}
	if err := file.prepare(); err != nil {
		if cerr := file.Close(); cerr != nil {
			errorf("Closing %v after failed open: %v", config.Filename, cerr)
		}
		return nil, newError("dbase-file-opentable-3", err)
	}
	return file, nil
}

// Open opens the named table and decodes character data with the named encoding.
// The encoding "auto" selects the converter from the code page mark of the table.
func Open(filename string, encoding string) (*File, error) {
	config := &Config{Filename: filename}
	if strings.EqualFold(strings.TrimSpace(encoding), "auto") {
		config.InterpretCodePage = true
	} else {
		converter, err := ConverterFromName(encoding)
		if err != nil {
			return nil, newError("dbase-file-open-1", err)
		}
		config.Converter = converter
	}
	return OpenTable(config)
}

func (file *File) prepare() error {
	size, err := file.io.Size(file)
	if err != nil {
		return newError("dbase-file-prepare-1", err)
	}
	header, columns, err := ReadHeader(fileReader{file: file}, size)
	if err != nil {
		return newError("dbase-file-prepare-2", err)
	}
	if expected := header.FileSize(); size < expected {
		debugf("File has %d bytes, header announces %d, trailing rows are truncated", size, expected)
	}
	file.header = header
	file.columns = columns
	file.converter = file.config.Converter
	if file.config.InterpretCodePage || file.converter == nil {
		file.converter = ConverterFromCodePage(header.CodePage)
		debugf("Interpreting code page mark 0x%02x", header.CodePage)
	}
	file.buffer = make([]byte, header.RowLength)
	return nil
}

// Close closes the underlying file handle.
func (file *File) Close() error {
	if file == nil || file.io == nil || file.handle == nil {
		return nil
	}
	if err := file.io.Close(file); err != nil {
		return newError("dbase-file-close-1", err)
	}
	file.handle = nil
	return nil
}

// Returns the dBase table file header struct for inspecting
func (file *File) Header() *Header {
	return file.header
}

// Returns the number of rows, deleted ones included
func (file *File) RowsCount() uint32 {
	return file.header.RowsCount
}

// Returns all columns, skipped ones included
func (file *File) Columns() []*Column {
	return file.columns
}

// Returns the requested column or nil if out of range
func (file *File) Column(pos int) *Column {
	if pos < 0 || pos >= len(file.columns) {
		return nil
	}
	return file.columns[pos]
}

// Returns the number of columns
func (file *File) ColumnsCount() uint16 {
	return uint16(len(file.columns))
}

// Returns a list of all column names
func (file *File) ColumnNames() []string {
	names := make([]string, 0, len(file.columns))
	for _, column := range file.columns {
		names = append(names, column.Name())
	}
	return names
}

// Returns the column position of a column by name or -1 if not found.
func (file *File) ColumnPosByName(name string) int {
	for i, column := range file.columns {
		if strings.EqualFold(column.Name(), name) {
			return i
		}
	}
	return -1
}

// TableName returns the file name without directory and extension.
func (file *File) TableName() string {
	base := filepath.Base(file.config.Filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Converter returns the encoding converter used for character columns.
func (file *File) Converter() EncodingConverter {
	return file.converter
}

// Returns if the internal row pointer is at end of file
func (file *File) EOF() bool {
	return file.rowPointer >= file.header.RowsCount
}

// Returns the current row pointer position
func (file *File) Pointer() uint32 {
	return file.rowPointer
}

// DeletedCount returns the number of deleted rows returned by Next so far.
func (file *File) DeletedCount() uint32 {
	return file.deleted
}

// ReadRow reads and decodes the row at the given position without moving the row pointer.
func (file *File) ReadRow(position uint32) (*Row, error) {
	if position >= file.header.RowsCount {
		return nil, newError("dbase-file-readrow-1", ErrEOF)
	}
	return file.readRow(position, make([]byte, file.header.RowLength))
}

// Next reads the row at the row pointer and advances it.
// ErrEOF is returned once all rows announced by the header were read.
func (file *File) Next() (*Row, error) {
	if file.EOF() {
		return nil, newError("dbase-file-next-1", ErrEOF)
	}
	row, err := file.readRow(file.rowPointer, file.buffer)
	if err != nil {
		return nil, newError("dbase-file-next-2", err)
	}
	file.rowPointer++
	if row.Deleted {
		file.deleted++
	}
	return row, nil
}

func (file *File) readRow(position uint32, buf []byte) (*Row, error) {
	offset := int64(file.header.FirstRow) + int64(position)*int64(file.header.RowLength)
	if err := readFull(fileReader{file: file}, buf, offset); err != nil {
		if errors.Is(err, ErrIncomplete) {
			return nil, newError("dbase-file-readrow-2", fmt.Errorf("%w: row %d is truncated: %v", ErrRowDecode, position, err))
		}
		return nil, newError("dbase-file-readrow-3", err)
	}
	row, err := DecodeRow(buf, file.header.RowLength, file.columns, file.converter)
	if err != nil {
		return nil, newError("dbase-file-readrow-4", fmt.Errorf("row %d: %w", position, err))
	}
	row.Position = position
	return row, nil
}
