package dbase

import (
	"errors"
	"testing"
)

func TestNewColumn(t *testing.T) {
	tests := []struct {
		name     string
		dataType DataType
		length   uint8
		decimals uint8
		expected uint8
		sqlType  string
	}{
		{"name", Character, 25, 0, 25, "VARCHAR(25)"},
		{"count", Numeric, 5, 0, 5, "INTEGER"},
		{"price", Float, 10, 2, 10, "FLOAT(10,2)"},
		{"rate", Double, 8, 4, 8, "DOUBLE(8,4)"},
		{"born", Date, 0, 0, 8, "DATE"},
		{"seen", DateTime, 0, 0, 8, "DATETIME"},
		{"ok", Logical, 0, 0, 1, "TINYINT(1)"},
		{"notes", Memo, 0, 0, 10, "TEXT"},
		{"seq", Index, 0, 0, 4, "INTEGER"},
	}

	for _, tt := range tests {
		t.Run(tt.dataType.Name(), func(t *testing.T) {
			column, err := NewColumn(tt.name, tt.dataType, tt.length, tt.decimals)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if column.Length != tt.expected {
				t.Errorf("Expected length %d, got %d", tt.expected, column.Length)
			}
			sqlType, err := column.SQLType()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if sqlType != tt.sqlType {
				t.Errorf("Expected %s, got %s", tt.sqlType, sqlType)
			}
		})
	}
}

func TestNewColumn_Errors(t *testing.T) {
	tests := []struct {
		description string
		name        string
		dataType    DataType
		length      uint8
	}{
		{"Empty name", "", Character, 10},
		{"Name too long", "ELEVENCHARS", Character, 10},
		{"Character without length", "NAME", Character, 0},
		{"Numeric too long", "NUM", Numeric, 21},
		{"Unsupported type", "ODD", DataType('Q'), 1},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if _, err := NewColumn(tt.name, tt.dataType, tt.length, 0); err == nil {
				t.Error("Expected error")
			}
		})
	}

	_, err := NewColumn("ODD", DataType('Q'), 1, 0)
	if !errors.Is(err, ErrUnsupportedFieldType) {
		t.Errorf("Expected ErrUnsupportedFieldType, got %v", err)
	}
}

func TestColumn_Name(t *testing.T) {
	column, err := NewColumn("name", Character, 5, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if column.Name() != "NAME" {
		t.Errorf("Expected NAME, got %q", column.Name())
	}
	if column.Type() != "C" {
		t.Errorf("Expected C, got %q", column.Type())
	}

	full := rawColumn("ABCDEFGHIJ", byte(Character), 1)
	if full.Name() != "ABCDEFGHIJ" {
		t.Errorf("Expected ABCDEFGHIJ, got %q", full.Name())
	}
}

func TestColumn_Skip(t *testing.T) {
	tests := []struct {
		column   *Column
		expected bool
	}{
		{rawColumn("NAME", byte(Character), 5), false},
		{rawColumn("NOTES", byte(Memo), 10), true},
		{rawColumn("_NullFlags", '0', 1), true},
		{rawColumn("_NULLFLAGS", '0', 1), true},
		{rawColumn("_nullflags", byte(Character), 1), true},
		{rawColumn("NULLFLAGS", byte(Character), 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.column.Name(), func(t *testing.T) {
			if tt.column.Skip() != tt.expected {
				t.Errorf("Expected skip %v, got %v", tt.expected, tt.column.Skip())
			}
		})
	}
}

func TestColumn_SQLTypeUnsupported(t *testing.T) {
	_, err := rawColumn("ODD", 'X', 1).SQLType()
	if !errors.Is(err, ErrUnsupportedFieldType) {
		t.Errorf("Expected ErrUnsupportedFieldType, got %v", err)
	}
}
