package dbase

import (
	"errors"
	"testing"
)

func positioned(columns ...*Column) []*Column {
	position := uint32(1)
	for _, column := range columns {
		column.Position = position
		position += uint32(column.Length)
	}
	return columns
}

func TestDecodeRow(t *testing.T) {
	columns := positioned(
		rawColumn("ID", byte(Numeric), 3),
		rawColumn("NOTES", byte(Memo), 4),
		rawColumn("NAME", byte(Character), 5),
		rawColumn("_NullFlags", '0', 1),
	)
	data := []byte(" " + " 42" + "   7" + "Alice" + "\x00")

	row, err := DecodeRow(data, uint16(len(data)), columns, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if row.Deleted {
		t.Error("Expected active row")
	}
	if len(row.Fields()) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(row.Fields()))
	}
	if row.Field(0).Value() != Integer(42) || row.Field(0).Name() != "ID" {
		t.Errorf("Unexpected first field: %v %v", row.Field(0).Name(), row.Field(0).Value())
	}
	if row.Field(1).Value() != Text("Alice") || row.Field(1).Type() != Character {
		t.Errorf("Unexpected second field: %v %v", row.Field(1).Name(), row.Field(1).Value())
	}
	if row.Field(2) != nil || row.Field(-1) != nil {
		t.Error("Expected nil for fields out of range")
	}
	if row.FieldByName("name") == nil || row.FieldByName("NOTES") != nil {
		t.Error("Unexpected FieldByName result")
	}
	if row.FieldByName("id").Column() != columns[0] {
		t.Error("Expected field to reference its column")
	}

	values := row.Values()
	if len(values) != 2 || values[0] != Integer(42) || values[1] != Text("Alice") {
		t.Errorf("Unexpected values: %v", values)
	}
	m := row.ToMap()
	if m["ID"] != int64(42) || m["NAME"] != "Alice" {
		t.Errorf("Unexpected map: %v", m)
	}
}

func TestDecodeRow_DeletedFlag(t *testing.T) {
	columns := positioned(rawColumn("NAME", byte(Character), 3))
	tests := []struct {
		flag    byte
		deleted bool
	}{
		{byte(Deleted), true},
		{byte(Active), false},
		{0x00, false},
		{'X', false},
	}

	for _, tt := range tests {
		row, err := DecodeRow([]byte{tt.flag, 'a', 'b', 'c'}, 4, columns, nil)
		if err != nil {
			t.Fatalf("0x%02x: unexpected error: %v", tt.flag, err)
		}
		if row.Deleted != tt.deleted {
			t.Errorf("0x%02x: expected deleted %v", tt.flag, tt.deleted)
		}
	}
}

func TestDecodeRow_Short(t *testing.T) {
	columns := positioned(rawColumn("NAME", byte(Character), 5))
	_, err := DecodeRow([]byte(" abc"), 6, columns, nil)
	if !errors.Is(err, ErrRowDecode) {
		t.Errorf("Expected ErrRowDecode, got %v", err)
	}

	_, err = DecodeRow(nil, 0, columns, nil)
	if !errors.Is(err, ErrRowDecode) {
		t.Errorf("Expected ErrRowDecode, got %v", err)
	}
}

func TestDecodeRow_ColumnBeyondRow(t *testing.T) {
	column := rawColumn("NAME", byte(Character), 5)
	column.Position = 4
	_, err := DecodeRow([]byte(" abcdef"), 7, []*Column{column}, nil)
	if !errors.Is(err, ErrRowDecode) {
		t.Errorf("Expected ErrRowDecode, got %v", err)
	}
}
