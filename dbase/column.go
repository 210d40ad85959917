package dbase

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Column is a struct containing the column information
type Column struct {
	FieldName [11]byte // Column name with a maximum of 10 characters. If less than 10, it is padded with null characters (0x00).
	DataType  byte     // Column type
	Position  uint32   // Displacement of column in row
	Length    uint8    // Length of column (in bytes)
	Decimals  uint8    // Number of decimal places
	Flag      byte     // Column flag
	Next      uint32   // Value of autoincrement Next value
	Step      uint16   // Value of autoincrement Step value
	Reserved  [7]byte  // Reserved
}

// NewColumn creates a column definition for writing a table.
// Fixed size types get their length assigned, the given length is ignored for them.
func NewColumn(name string, dataType DataType, length uint8, decimals uint8) (*Column, error) {
	if len(name) == 0 {
		return nil, newError("dbase-column-newcolumn-1", errors.New("no column name defined"))
	}
	if len(name) > 10 {
		return nil, newError("dbase-column-newcolumn-2", errors.New("column name can only be 10 characters long"))
	}
	column := &Column{
		DataType: byte(dataType),
		Decimals: decimals,
	}
	copy(column.FieldName[:], strings.ToUpper(name))
	switch dataType {
	case Character:
		if length == 0 {
			return nil, newError("dbase-column-newcolumn-3", errors.New("character length can not be 0"))
		}
		column.Length = length
	case Numeric, Float, Double:
		if length == 0 || length > 20 {
			return nil, newError("dbase-column-newcolumn-4", fmt.Errorf("%v length must be between 1 and 20", dataType))
		}
		column.Length = length
	case Logical:
		column.Length = 1
	case Index:
		column.Length = 4
	case Date, DateTime:
		column.Length = 8
	case Memo:
		column.Length = 10
	default:
		return nil, newError("dbase-column-newcolumn-5", fmt.Errorf("%w: %v", ErrUnsupportedFieldType, dataType))
	}
	if decimals > 0 && dataType != Numeric && dataType != Float && dataType != Double {
		column.Decimals = 0
	}
	return column, nil
}

// Returns the name of the column as a trimmed string (max length 10)
func (c *Column) Name() string {
	name := c.FieldName[:]
	if i := bytes.IndexByte(name, 0x00); i >= 0 {
		name = name[:i]
	}
	return string(name)
}

// Returns the type of the column as string (length 1)
func (c *Column) Type() string {
	return string(c.DataType)
}

// Skip reports whether the column is left out of decoded rows and schemas.
// Memo content lives in an unsupported companion file and _NullFlags is bookkeeping.
func (c *Column) Skip() bool {
	return DataType(c.DataType) == Memo || IsNullFlags(c.Name())
}

// SQLType returns the SQL column type of the column.
func (c *Column) SQLType() (string, error) {
	return SQLColumnType(DataType(c.DataType), c.Length, c.Decimals)
}
