package dbase

import "testing"

func TestFileVersion(t *testing.T) {
	tests := []struct {
		version  FileVersion
		known    bool
		expected string
	}{
		{FoxBasePlus, true, "FoxBASE+/dBase III plus, no memo"},
		{FoxPro, true, "Visual FoxPro"},
		{DBaseMemo, true, "dBASE IV with memo"},
		{FileVersion(0x99), false, "unknown"},
	}

	for _, tt := range tests {
		if tt.version.Known() != tt.known {
			t.Errorf("0x%02x: expected known %v", byte(tt.version), tt.known)
		}
		if tt.version.String() != tt.expected {
			t.Errorf("0x%02x: expected %q, got %q", byte(tt.version), tt.expected, tt.version.String())
		}
	}
}

func TestTableFlag(t *testing.T) {
	flags := byte(StructuralFlag | MemoFlag)
	if !StructuralFlag.Defined(flags) || !MemoFlag.Defined(flags) {
		t.Error("Expected structural and memo flags to be defined")
	}
	if DatabaseFlag.Defined(flags) {
		t.Error("Expected database flag not to be defined")
	}
}

func TestDataType(t *testing.T) {
	tests := []struct {
		dataType  DataType
		code      string
		name      string
		supported bool
	}{
		{Character, "C", "Character", true},
		{Numeric, "N", "Numeric", true},
		{Float, "F", "Float", true},
		{Double, "B", "Double", true},
		{Date, "D", "Date", true},
		{DateTime, "T", "DateTime", true},
		{Logical, "L", "Logical", true},
		{Memo, "M", "Memo", true},
		{Index, "I", "Index", true},
		{DataType('Y'), "Y", "unknown (0x59)", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if tt.dataType.String() != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, tt.dataType.String())
			}
			if tt.dataType.Name() != tt.name {
				t.Errorf("Expected name %s, got %s", tt.name, tt.dataType.Name())
			}
			if tt.dataType.Supported() != tt.supported {
				t.Errorf("Expected supported %v", tt.supported)
			}
		})
	}
}

func TestIsNullFlags(t *testing.T) {
	for _, name := range []string{"_nullflags", "_NullFlags", "_NULLFLAGS"} {
		if !IsNullFlags(name) {
			t.Errorf("Expected %s to be the null flags column", name)
		}
	}
	for _, name := range []string{"", "nullflags", "_nullflag", "NAME"} {
		if IsNullFlags(name) {
			t.Errorf("Expected %s not to be the null flags column", name)
		}
	}
}
