package dbase

import "errors"

var (
	// returned when the end of the table is reached
	ErrEOF = errors.New("EOF")
	// returned when a read did not return the requested number of bytes
	ErrIncomplete = errors.New("INCOMPLETE")
	// returned when the table file does not exist
	ErrFileNotFound = errors.New("FILE_NOT_FOUND")
	// returned when the header or column descriptors are inconsistent
	ErrMalformedHeader = errors.New("MALFORMED_HEADER")
	// returned when a column type code is outside the supported set
	ErrUnsupportedFieldType = errors.New("UNSUPPORTED_FIELD_TYPE")
	// returned when a row or cell can not be decoded
	ErrRowDecode = errors.New("ROW_DECODE")
	// returned when the underlying file can not be read
	ErrIO = errors.New("IO")
	// returned when no converter exists for an encoding name
	ErrInvalidEncoding = errors.New("INVALID_ENCODING")
)
