// Package dbase reads dBase (DBF) table files.
//
// It parses the table header and column descriptors, decodes fixed width
// rows into typed values and converts character data from the table code
// page to UTF-8. Rows are read one at a time with File.Next, the table is
// never loaded into memory as a whole.
//
// Memo content is not supported: memo columns, like the Visual FoxPro
// _NullFlags bookkeeping column, are listed by File.Columns but left out
// of decoded rows.
//
// File access goes through the IO interface. UnixIO and WindowsIO use
// the platform system calls, GenericIO works on any io.ReadSeeker.
package dbase

// Config is a struct containing the configuration for opening a dBase table.
// The filename is mandatory unless a GenericIO with a handle is used.
//
// If Converter is not set or InterpretCodePage is true, the converter is
// chosen from the code page mark in the header.
type Config struct {
	Filename          string            // The filename of the DBF file.
	Converter         EncodingConverter // The encoding converter for character columns.
	InterpretCodePage bool              // Whether the code page mark should be interpreted. Ignores the defined converter.
	IO                IO                // The IO interface to use, DefaultIO if nil.
}
