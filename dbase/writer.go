package dbase

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// Record holds the values of one row to write, one value per column.
type Record struct {
	Deleted bool
	Values  []Value
}

// WriteTable writes a complete dBase III table (header, column descriptors, rows and EOF marker) to w.
// Column positions are assigned in order. Memo columns are written blank.
func WriteTable(w io.Writer, columns []*Column, records []Record, converter EncodingConverter) error {
	if len(columns) == 0 {
		return newError("dbase-writer-writetable-1", errors.New("no columns defined"))
	}
	now := time.Now()
	header := &Header{
		FileType:  byte(FoxBasePlus),
		Year:      uint8(now.Year() % 100),
		Month:     uint8(now.Month()),
		Day:       uint8(now.Day()),
		RowsCount: uint32(len(records)),
		FirstRow:  uint16(headerSize + len(columns)*columnSize + 1),
		RowLength: 1,
	}
	if converter != nil {
		header.CodePage = converter.CodePage()
	}
	for _, column := range columns {
		column.Position = uint32(header.RowLength)
		header.RowLength += uint16(column.Length)
	}
	bw := bufio.NewWriter(w)
	// LittleEndian - Integers in table files are stored with the least significant byte first.
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return newError("dbase-writer-writetable-2", err)
	}
	for _, column := range columns {
		debugf("Writing column: %v - type: %v - length: %d", column.Name(), column.Type(), column.Length)
		if err := binary.Write(bw, binary.LittleEndian, column); err != nil {
			return newError("dbase-writer-writetable-3", err)
		}
	}
	if err := bw.WriteByte(byte(ColumnEnd)); err != nil {
		return newError("dbase-writer-writetable-4", err)
	}
	for i, record := range records {
		row, err := representRecord(header, columns, record, converter)
		if err != nil {
			return newError("dbase-writer-writetable-5", fmt.Errorf("row %d: %w", i, err))
		}
		if _, err := bw.Write(row); err != nil {
			return newError("dbase-writer-writetable-6", err)
		}
	}
	if err := bw.WriteByte(byte(EOFMarker)); err != nil {
		return newError("dbase-writer-writetable-7", err)
	}
	if err := bw.Flush(); err != nil {
		return newError("dbase-writer-writetable-8", err)
	}
	return nil
}

// BuildTable returns the bytes of a table written with WriteTable.
func BuildTable(columns []*Column, records []Record, converter EncodingConverter) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := WriteTable(buf, columns, records, converter); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func representRecord(header *Header, columns []*Column, record Record, converter EncodingConverter) ([]byte, error) {
	if len(record.Values) != len(columns) {
		return nil, fmt.Errorf("got %d values for %d columns", len(record.Values), len(columns))
	}
	data := make([]byte, header.RowLength)
	// a row starts with the delete flag, a space ACTIVE(0x20) or DELETED(0x2A)
	data[0] = byte(Active)
	if record.Deleted {
		data[0] = byte(Deleted)
	}
	for i, column := range columns {
		val, err := column.Represent(record.Values[i], converter)
		if err != nil {
			return nil, err
		}
		copy(data[column.Position:column.Position+uint32(column.Length)], val)
	}
	return data, nil
}
