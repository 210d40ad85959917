package dbase

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// Represent converts a value to the fixed width byte representation of the column.
// NullValue is written as blanks (zero bytes for datetime and index columns).
func (c *Column) Represent(v Value, converter EncodingConverter) ([]byte, error) {
	if IsNullFlags(c.Name()) {
		return make([]byte, c.Length), nil
	}
	raw := bytes.Repeat([]byte{byte(Blank)}, int(c.Length))
	if IsNull(v) || DataType(c.DataType) == Memo {
		switch DataType(c.DataType) {
		case DateTime, Index:
			return make([]byte, c.Length), nil
		}
		return raw, nil
	}
	switch DataType(c.DataType) {
	case Character:
		s, ok := v.(Text)
		if !ok {
			return nil, c.representError("dbase-represent-character-1", v)
		}
		bin := []byte(s)
		if converter != nil {
			var err error
			bin, err = converter.Encode(bin)
			if err != nil {
				return nil, newError("dbase-represent-character-2", err)
			}
		}
		if len(bin) > int(c.Length) {
			return nil, newError("dbase-represent-character-3", fmt.Errorf("invalid length %v bytes > %v bytes at column field: %v", len(bin), c.Length, c.Name()))
		}
		copy(raw, bin)
		return raw, nil
	case Numeric, Float, Double:
		var text string
		switch n := v.(type) {
		case Integer:
			text = strconv.FormatInt(int64(n), 10)
		case Decimal:
			text = strconv.FormatFloat(n.Value, 'f', int(c.Decimals), 64)
		default:
			return nil, c.representError("dbase-represent-numeric-1", v)
		}
		if len(text) > int(c.Length) {
			return nil, newError("dbase-represent-numeric-2", fmt.Errorf("number %s does not fit %v bytes at column field: %v", text, c.Length, c.Name()))
		}
		// numbers are right aligned
		copy(raw[int(c.Length)-len(text):], text)
		return raw, nil
	case Date:
		d, ok := v.(DateValue)
		if !ok {
			return nil, c.representError("dbase-represent-date-1", v)
		}
		copy(raw, time.Time(d).Format("20060102"))
		return raw, nil
	case DateTime:
		t, ok := v.(DateTimeValue)
		if !ok {
			return nil, c.representError("dbase-represent-datetime-1", v)
		}
		return representDateTime(time.Time(t)), nil
	case Logical:
		b, ok := v.(Bool)
		if !ok {
			return nil, c.representError("dbase-represent-logical-1", v)
		}
		if b {
			raw[0] = 'T'
		} else {
			raw[0] = 'F'
		}
		return raw, nil
	case Index:
		i, ok := v.(Integer)
		if !ok {
			return nil, c.representError("dbase-represent-index-1", v)
		}
		raw = make([]byte, 4)
		binary.LittleEndian.PutUint32(raw, uint32(int32(i)))
		return raw, nil
	}
	return nil, newError("dbase-represent-1", fmt.Errorf("%w: %q at column field: %v", ErrUnsupportedFieldType, c.Type(), c.Name()))
}

func (c *Column) representError(context string, v Value) error {
	return newError(context, fmt.Errorf("invalid value type %T for %v column field: %v", v, DataType(c.DataType).Name(), c.Name()))
}
