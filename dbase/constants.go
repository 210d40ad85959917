package dbase

import "strings"

// FileVersion is the first byte of a DBF header.
type FileVersion byte

const (
	FoxBase             FileVersion = 0x02
	FoxBasePlus         FileVersion = 0x03
	FoxPro              FileVersion = 0x30
	FoxProAutoincrement FileVersion = 0x31
	FoxProVar           FileVersion = 0x32
	DBaseSQLTable       FileVersion = 0x43
	FoxBasePlusMemo     FileVersion = 0x83
	DBaseMemo           FileVersion = 0x8B
	DBaseSQLMemo        FileVersion = 0xCB
	FoxPro2Memo         FileVersion = 0xF5
	FoxBase2            FileVersion = 0xFB
)

var fileVersionNames = map[FileVersion]string{
	FoxBase:             "FoxBASE",
	FoxBasePlus:         "FoxBASE+/dBase III plus, no memo",
	FoxPro:              "Visual FoxPro",
	FoxProAutoincrement: "Visual FoxPro, autoincrement enabled",
	FoxProVar:           "Visual FoxPro, varchar/varbinary",
	DBaseSQLTable:       "dBASE IV SQL table files, no memo",
	FoxBasePlusMemo:     "FoxBASE+/dBase III plus, with memo",
	DBaseMemo:           "dBASE IV with memo",
	DBaseSQLMemo:        "dBASE IV SQL table files, with memo",
	FoxPro2Memo:         "FoxPro 2.x (or earlier) with memo",
	FoxBase2:            "FoxBASE",
}

// Known reports whether the version byte belongs to a tested file layout.
func (v FileVersion) Known() bool {
	_, ok := fileVersionNames[v]
	return ok
}

func (v FileVersion) String() string {
	if name, ok := fileVersionNames[v]; ok {
		return name
	}
	return "unknown"
}

// Marker is a single byte with a structural meaning in the table file.
type Marker byte

const (
	Null      Marker = 0x00
	Blank     Marker = 0x20
	ColumnEnd Marker = 0x0D
	Active           = Blank
	Deleted   Marker = 0x2A
	EOFMarker Marker = 0x1A
)

// TableFlag is a bit of the table flags byte in the header.
type TableFlag byte

const (
	StructuralFlag TableFlag = 0x01
	MemoFlag       TableFlag = 0x02
	DatabaseFlag   TableFlag = 0x04
)

// Defined reports whether the flag is set in the given flags byte.
func (t TableFlag) Defined(flag byte) bool {
	return byte(t)&flag == byte(t)
}

// DataType is the one-letter type code of a column.
type DataType byte

const (
	Character DataType = 0x43 // C
	Numeric   DataType = 0x4E // N
	Float     DataType = 0x46 // F
	Double    DataType = 0x42 // B
	Date      DataType = 0x44 // D
	DateTime  DataType = 0x54 // T
	Logical   DataType = 0x4C // L
	Memo      DataType = 0x4D // M
	Index     DataType = 0x49 // I
)

// Returns the type code as a one character string
func (t DataType) String() string {
	return string(t)
}

// NullFlagsColumn is the name of the bookkeeping column Visual FoxPro adds
// for nullable and variable length columns.
const NullFlagsColumn = "_nullflags"

// IsNullFlags reports whether name is the bookkeeping null flag column.
func IsNullFlags(name string) bool {
	return strings.EqualFold(name, NullFlagsColumn)
}
