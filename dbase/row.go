package dbase

import (
	"fmt"
	"strings"
)

// Row is a decoded table row with its position, deleted flag and fields.
// Memo and _NullFlags columns have no field.
type Row struct {
	Position uint32   // Position of the row in the file, starting at 0
	Deleted  bool     // Deleted flag
	fields   []*Field // Fields in column order
}

// Field is a decoded cell together with its column.
type Field struct {
	column *Column
	value  Value
}

// DecodeRow converts raw row data to a Row.
// data must hold at least rowLength bytes, the first one being the deleted flag.
func DecodeRow(data []byte, rowLength uint16, columns []*Column, converter EncodingConverter) (*Row, error) {
	if len(data) < int(rowLength) {
		return nil, newError("dbase-row-decoderow-1", fmt.Errorf("%w: invalid row data size %v bytes < %v bytes", ErrRowDecode, len(data), rowLength))
	}
	if len(data) == 0 {
		return nil, newError("dbase-row-decoderow-2", fmt.Errorf("%w: empty row data", ErrRowDecode))
	}
	row := &Row{
		Deleted: Marker(data[0]) == Deleted,
		fields:  make([]*Field, 0, len(columns)),
	}
	for _, column := range columns {
		if column.Skip() {
			continue
		}
		end := int(column.Position) + int(column.Length)
		if end > len(data) {
			return nil, newError("dbase-row-decoderow-3", fmt.Errorf("%w: column %v ends at %d, row has %d bytes", ErrRowDecode, column.Name(), end, len(data)))
		}
		val, err := Interpret(data[column.Position:end], column, converter)
		if err != nil {
			return nil, newError("dbase-row-decoderow-4", err)
		}
		row.fields = append(row.fields, &Field{
			column: column,
			value:  val,
		})
	}
	return row, nil
}

// Returns all fields of the row
func (row *Row) Fields() []*Field {
	return row.fields
}

// Returns the field at the given position or nil if not found
func (row *Row) Field(pos int) *Field {
	if pos < 0 || pos >= len(row.fields) {
		return nil
	}
	return row.fields[pos]
}

// Returns the field by column name (case insensitive) or nil if not found
func (row *Row) FieldByName(name string) *Field {
	for _, field := range row.fields {
		if strings.EqualFold(field.Name(), name) {
			return field
		}
	}
	return nil
}

// Returns all values of the row
func (row *Row) Values() []Value {
	values := make([]Value, 0, len(row.fields))
	for _, field := range row.fields {
		values = append(values, field.value)
	}
	return values
}

// Returns the row as a map of column name to plain Go value
func (row *Row) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(row.fields))
	for _, field := range row.fields {
		out[field.Name()] = field.value.Interface()
	}
	return out
}

// Value returns the decoded value
func (field *Field) Value() Value {
	return field.value
}

// Name returns the field name
func (field *Field) Name() string {
	return field.column.Name()
}

// Type returns the field type
func (field *Field) Type() DataType {
	return DataType(field.column.DataType)
}

// Column returns the field column definition
func (field *Field) Column() *Column {
	return field.column
}
