package dbase

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"
)

// dataType bundles the decoding and SQL mapping of one column type code.
type dataType struct {
	name      string
	interpret func(raw []byte, column *Column, converter EncodingConverter) (Value, error)
	sql       func(length, decimals uint8) string
}

// The closed set of supported column types.
//
// | Column Type | Column Type Name | Decoded value | SQL type |
// | ----------- | ---------------- | ------------- | -------- |
// | C | Character | Text | VARCHAR(length) |
// | N | Numeric | Integer, or Decimal with decimals | INTEGER |
// | F | Float | Decimal | FLOAT(length,decimals) |
// | B | Double | Decimal | DOUBLE(length,decimals) |
// | D | Date | DateValue | DATE |
// | T | DateTime | DateTimeValue | DATETIME |
// | L | Logical | Bool | TINYINT(1) |
// | M | Memo | NullValue | TEXT |
// | I | Index | Integer | INTEGER |
//
// Blank numeric, date, datetime and logical cells decode to NullValue.
var dataTypes = map[DataType]dataType{
	Character: {
		name:      "Character",
		interpret: parseCharacter,
		sql:       func(length, _ uint8) string { return fmt.Sprintf("VARCHAR(%d)", length) },
	},
	Numeric: {
		name:      "Numeric",
		interpret: parseNumeric,
		sql:       func(_, _ uint8) string { return "INTEGER" },
	},
	Float: {
		name:      "Float",
		interpret: parseFloat,
		sql:       func(length, decimals uint8) string { return fmt.Sprintf("FLOAT(%d,%d)", length, decimals) },
	},
	Double: {
		name:      "Double",
		interpret: parseDouble,
		sql:       func(length, decimals uint8) string { return fmt.Sprintf("DOUBLE(%d,%d)", length, decimals) },
	},
	Date: {
		name:      "Date",
		interpret: parseDate,
		sql:       func(_, _ uint8) string { return "DATE" },
	},
	DateTime: {
		name:      "DateTime",
		interpret: parseDateTimeValue,
		sql:       func(_, _ uint8) string { return "DATETIME" },
	},
	Logical: {
		name:      "Logical",
		interpret: parseLogical,
		sql:       func(_, _ uint8) string { return "TINYINT(1)" },
	},
	Memo: {
		name:      "Memo",
		interpret: parseMemo,
		sql:       func(_, _ uint8) string { return "TEXT" },
	},
	Index: {
		name:      "Index",
		interpret: parseIndex,
		sql:       func(_, _ uint8) string { return "INTEGER" },
	},
}

// Supported reports whether the type code is part of the supported set.
func (t DataType) Supported() bool {
	_, ok := dataTypes[t]
	return ok
}

// Name returns the descriptive type name, e.g. "Character".
func (t DataType) Name() string {
	if dt, ok := dataTypes[t]; ok {
		return dt.name
	}
	return fmt.Sprintf("unknown (0x%02x)", byte(t))
}

// SQLColumnType maps a column type to its SQL column type.
func SQLColumnType(t DataType, length, decimals uint8) (string, error) {
	dt, ok := dataTypes[t]
	if !ok {
		return "", newError("dbase-interpreter-sqlcolumntype-1", fmt.Errorf("%w: %q", ErrUnsupportedFieldType, t.String()))
	}
	return dt.sql(length, decimals), nil
}

// Interpret converts raw column data to a Value for the given column.
// Character data is converted to UTF-8 with the converter.
func Interpret(raw []byte, column *Column, converter EncodingConverter) (Value, error) {
	if len(raw) != int(column.Length) {
		return nil, newError("dbase-interpreter-interpret-1", fmt.Errorf("%w: invalid length %v bytes != %v bytes at column field: %v", ErrRowDecode, len(raw), column.Length, column.Name()))
	}
	dt, ok := dataTypes[DataType(column.DataType)]
	if !ok {
		return nil, newError("dbase-interpreter-interpret-2", fmt.Errorf("%w: %q at column field: %v", ErrUnsupportedFieldType, column.Type(), column.Name()))
	}
	return dt.interpret(raw, column, converter)
}

// Returns the value as Text with trailing padding removed
func parseCharacter(raw []byte, column *Column, converter EncodingConverter) (Value, error) {
	raw = bytes.TrimRight(raw, " \x00")
	if converter == nil {
		return Text(raw), nil
	}
	str, err := converter.Decode(raw)
	if err != nil {
		return nil, newError("dbase-interpreter-parsecharacter-1", fmt.Errorf("%w: converting to utf8 at column field: %v failed with error: %v", ErrRowDecode, column.Name(), err))
	}
	return Text(str), nil
}

// N values are stored as string values, if no decimals return as Integer, if decimals treat as Decimal
func parseNumeric(raw []byte, column *Column, converter EncodingConverter) (Value, error) {
	if column.Decimals > 0 {
		return parseFloat(raw, column, converter)
	}
	trimmed := trimNumber(raw)
	if len(trimmed) == 0 {
		return NullValue{}, nil
	}
	if isOverflow(trimmed) {
		debugf("Numeric overflow %q at column field: %v, reading as null", trimmed, column.Name())
		return NullValue{}, nil
	}
	i, err := strconv.ParseInt(string(trimmed), 10, 64)
	if err == nil {
		return Integer(i), nil
	}
	// Some writers put decimals into columns declared without them
	f, ferr := strconv.ParseFloat(string(trimmed), 64)
	if ferr != nil {
		return nil, newError("dbase-interpreter-parsenumeric-1", fmt.Errorf("%w: parsing numeric %q at column field: %v failed with error: %v", ErrRowDecode, trimmed, column.Name(), err))
	}
	return Decimal{Value: f, Decimals: 0}, nil
}

// F values are stored as string values
func parseFloat(raw []byte, column *Column, _ EncodingConverter) (Value, error) {
	trimmed := trimNumber(raw)
	if len(trimmed) == 0 {
		return NullValue{}, nil
	}
	if isOverflow(trimmed) {
		debugf("Float overflow %q at column field: %v, reading as null", trimmed, column.Name())
		return NullValue{}, nil
	}
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return nil, newError("dbase-interpreter-parsefloat-1", fmt.Errorf("%w: parsing float %q at column field: %v failed with error: %v", ErrRowDecode, trimmed, column.Name(), err))
	}
	return Decimal{Value: f, Decimals: column.Decimals}, nil
}

// B values are stored as decimal text in dBase files and as
// 8 byte little endian IEEE 754 values in Visual FoxPro files
func parseDouble(raw []byte, column *Column, converter EncodingConverter) (Value, error) {
	if len(raw) == 8 && !isNumberText(raw) {
		f := math.Float64frombits(binary.LittleEndian.Uint64(raw))
		return Decimal{Value: f, Decimals: column.Decimals}, nil
	}
	return parseFloat(raw, column, converter)
}

// D values are stored as string in format YYYYMMDD
func parseDate(raw []byte, column *Column, _ EncodingConverter) (Value, error) {
	trimmed := bytes.Trim(raw, " \x00")
	if len(trimmed) == 0 || bytes.Count(trimmed, []byte("0")) == len(trimmed) {
		return NullValue{}, nil
	}
	t, err := time.Parse("20060102", string(trimmed))
	if err != nil && isDigits(trimmed) && len(trimmed) == 8 {
		debugf("Invalid date %q at column field: %v, reading as null: %v", trimmed, column.Name(), err)
		return NullValue{}, nil
	}
	if err != nil {
		return nil, newError("dbase-interpreter-parsedate-1", fmt.Errorf("%w: parsing date %q at column field: %v failed with error: %v", ErrRowDecode, trimmed, column.Name(), err))
	}
	return DateValue(t), nil
}

// T values are stored as two 4 byte integers
//
//	integer one is the date in julian format
//	integer two is the number of milliseconds since midnight
func parseDateTimeValue(raw []byte, column *Column, _ EncodingConverter) (Value, error) {
	if len(raw) != 8 {
		return nil, newError("dbase-interpreter-parsedatetime-1", fmt.Errorf("%w: datetime needs 8 bytes, column field %v has %d", ErrRowDecode, column.Name(), len(raw)))
	}
	t, ok := parseDateTime(raw)
	if !ok {
		return NullValue{}, nil
	}
	return DateTimeValue(t), nil
}

// L values are stored as one of T, t, Y, y, F, f, N, n. Anything else is not initialized.
func parseLogical(raw []byte, _ *Column, _ EncodingConverter) (Value, error) {
	if len(raw) == 0 {
		return NullValue{}, nil
	}
	switch raw[0] {
	case 'T', 't', 'Y', 'y':
		return Bool(true), nil
	case 'F', 'f', 'N', 'n':
		return Bool(false), nil
	}
	return NullValue{}, nil
}

// M values only hold the block address in the memo file, which is not read
func parseMemo(_ []byte, _ *Column, _ EncodingConverter) (Value, error) {
	return NullValue{}, nil
}

// I values are stored as little endian int32
func parseIndex(raw []byte, column *Column, _ EncodingConverter) (Value, error) {
	if len(raw) != 4 {
		return nil, newError("dbase-interpreter-parseindex-1", fmt.Errorf("%w: index needs 4 bytes, column field %v has %d", ErrRowDecode, column.Name(), len(raw)))
	}
	return Integer(int32(binary.LittleEndian.Uint32(raw))), nil
}

func trimNumber(raw []byte) []byte {
	return bytes.Trim(raw, " \x00")
}

// isNumberText reports whether raw only contains characters of a space padded decimal number
func isNumberText(raw []byte) bool {
	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
		case b == ' ', b == '.', b == '-', b == '+', b == 'e', b == 'E':
		default:
			return false
		}
	}
	return true
}

// dBase fills numeric columns with asterisks when a value does not fit
func isOverflow(raw []byte) bool {
	stars := 0
	for _, b := range raw {
		switch b {
		case '*':
			stars++
		case '.', '-':
		default:
			return false
		}
	}
	return stars > 0
}

func isDigits(raw []byte) bool {
	for _, b := range raw {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}
