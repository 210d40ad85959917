// Package export turns dBase tables into SQL scripts.
//
// Every table becomes one CREATE TABLE statement followed by one INSERT
// statement per active row. Memo and _NullFlags columns are left out of
// both, so the schema and the value lists always have the same width.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Valentin-Kaiser/go-dbf2sql/dbase"
)

// ErrNoColumns is returned for tables without a single exportable column.
var ErrNoColumns = errors.New("NO_EXPORTABLE_COLUMNS")

// ErrSameFile is returned when the destination would overwrite the source.
var ErrSameFile = errors.New("DESTINATION_IS_SOURCE")

// Stage names the step of a conversion that failed.
type Stage string

const (
	StageOpen   Stage = "open"
	StageSchema Stage = "schema"
	StageWrite  Stage = "write"
	StageRow    Stage = "row"
)

// ConvertError reports a failed conversion together with the file and the stage.
// Row is the zero based row position for StageRow and -1 otherwise.
type ConvertError struct {
	Source string
	Stage  Stage
	Row    int
	Err    error
}

func (e *ConvertError) Error() string {
	if e.Stage == StageRow {
		return fmt.Sprintf("%s: row %d: %v", e.Source, e.Row, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Stage, e.Err)
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

// Result summarizes a finished conversion.
type Result struct {
	Source      string
	Destination string
	Records     uint32 // Rows announced by the header, deleted ones included
	Inserted    uint32 // INSERT statements written
	Deleted     uint32 // Deleted rows omitted
}

// Options configure an Exporter.
type Options struct {
	Encoding  string         // Encoding of character columns, "auto" reads the code page mark. UTF-8 if empty.
	OutputDir string         // Directory for the SQL files. Next to the source if empty.
	Location  *time.Location // Location DateTime values are rendered in. time.Local if nil.
	IO        dbase.IO       // File access for the tables. dbase.DefaultIO if nil.
	Progress  io.Writer      // Receives the progress lines. Discarded if nil.
}

// Exporter converts dBase tables to SQL files.
type Exporter struct {
	options Options
}

func NewExporter(options Options) *Exporter {
	if options.Encoding == "" {
		options.Encoding = "UTF-8"
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Progress == nil {
		options.Progress = io.Discard
	}
	return &Exporter{options: options}
}

// Convert writes the SQL script for the source table.
// The table is closed and a partially written script removed before an error is returned.
func (e *Exporter) Convert(ctx context.Context, source string) (*Result, error) {
	table, err := e.open(source)
	if err != nil {
		return nil, &ConvertError{Source: source, Stage: StageOpen, Row: -1, Err: err}
	}
	defer table.Close()

	name := TableName(source)
	schema, err := CreateTable(name, table.Columns())
	if err != nil {
		return nil, &ConvertError{Source: source, Stage: StageSchema, Row: -1, Err: err}
	}

	destination := Destination(source, e.options.OutputDir)
	if filepath.Clean(destination) == filepath.Clean(source) {
		return nil, &ConvertError{Source: source, Stage: StageWrite, Row: -1, Err: fmt.Errorf("%w: %s", ErrSameFile, destination)}
	}
	result := &Result{
		Source:      source,
		Destination: destination,
		Records:     table.RowsCount(),
	}
	fmt.Fprintf(e.options.Progress, "Processing %d records from file %s to %s using %s encoding\n", result.Records, source, destination, e.options.Encoding)

	out, err := os.Create(destination)
	if err != nil {
		return nil, &ConvertError{Source: source, Stage: StageWrite, Row: -1, Err: err}
	}
	if err := e.write(ctx, bufio.NewWriter(out), table, name, schema, result); err != nil {
		out.Close()
		if rerr := os.Remove(destination); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(destination)
		return nil, &ConvertError{Source: source, Stage: StageWrite, Row: -1, Err: err}
	}

	fmt.Fprintf(e.options.Progress, "Export done: %d deleted records omitted\n", result.Deleted)
	return result, nil
}

func (e *Exporter) open(source string) (*dbase.File, error) {
	config := &dbase.Config{
		Filename: source,
		IO:       e.options.IO,
	}
	if strings.EqualFold(strings.TrimSpace(e.options.Encoding), "auto") {
		config.InterpretCodePage = true
	} else {
		converter, err := dbase.ConverterFromName(e.options.Encoding)
		if err != nil {
			return nil, err
		}
		config.Converter = converter
	}
	return dbase.OpenTable(config)
}

func (e *Exporter) write(ctx context.Context, w *bufio.Writer, table *dbase.File, name string, schema string, result *Result) error {
	if _, err := w.WriteString(schema); err != nil {
		return &ConvertError{Source: result.Source, Stage: StageWrite, Row: -1, Err: err}
	}
	for {
		position := int(table.Pointer())
		if err := ctx.Err(); err != nil {
			return &ConvertError{Source: result.Source, Stage: StageRow, Row: position, Err: err}
		}
		row, err := table.Next()
		if err != nil {
			if errors.Is(err, dbase.ErrEOF) {
				break
			}
			return &ConvertError{Source: result.Source, Stage: StageRow, Row: position, Err: err}
		}
		if row.Deleted {
			continue
		}
		if _, err := w.WriteString(Insert(name, row, e.options.Location)); err != nil {
			return &ConvertError{Source: result.Source, Stage: StageWrite, Row: -1, Err: err}
		}
		result.Inserted++
	}
	result.Deleted = table.DeletedCount()
	if err := w.Flush(); err != nil {
		return &ConvertError{Source: result.Source, Stage: StageWrite, Row: -1, Err: err}
	}
	return nil
}
