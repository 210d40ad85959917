package dbase

import (
	"strconv"
	"time"
)

// Value is a decoded cell. The set of implementations is closed:
// NullValue, Text, Integer, Decimal, DateValue, DateTimeValue and Bool.
type Value interface {
	// Interface returns the plain Go value, nil for NullValue.
	Interface() interface{}
	// String renders the value as text, empty for NullValue.
	String() string
	value()
}

// NullValue is a cell without content (blank numeric, date or logical).
type NullValue struct{}

// Text is a decoded character cell.
type Text string

// Integer is a numeric cell without decimals or an index cell.
type Integer int64

// Decimal is a numeric, floating or double cell with its declared decimal count.
type Decimal struct {
	Value    float64
	Decimals uint8
}

// DateValue is a date cell at midnight UTC.
type DateValue time.Time

// DateTimeValue is a datetime cell as a UTC instant.
type DateTimeValue time.Time

// Bool is a logical cell.
type Bool bool

func (NullValue) value()     {}
func (Text) value()          {}
func (Integer) value()       {}
func (Decimal) value()       {}
func (DateValue) value()     {}
func (DateTimeValue) value() {}
func (Bool) value()          {}

func (NullValue) Interface() interface{}       { return nil }
func (v Text) Interface() interface{}          { return string(v) }
func (v Integer) Interface() interface{}       { return int64(v) }
func (v Decimal) Interface() interface{}       { return v.Value }
func (v DateValue) Interface() interface{}     { return time.Time(v) }
func (v DateTimeValue) Interface() interface{} { return time.Time(v) }
func (v Bool) Interface() interface{}          { return bool(v) }

func (NullValue) String() string { return "" }
func (v Text) String() string    { return string(v) }
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }

// String keeps the declared number of decimals.
// Without declared decimals the shortest exact representation is used.
func (v Decimal) String() string {
	if v.Decimals == 0 {
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	}
	return strconv.FormatFloat(v.Value, 'f', int(v.Decimals), 64)
}

func (v DateValue) String() string {
	return time.Time(v).Format("2006-01-02")
}

func (v DateTimeValue) String() string {
	return time.Time(v).Format("2006-01-02 15:04:05")
}

func (v Bool) String() string {
	if v {
		return "1"
	}
	return "0"
}

// IsNull reports whether v is nil or a NullValue.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NullValue)
	return ok
}
