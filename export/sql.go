package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Valentin-Kaiser/go-dbf2sql/dbase"
)

const (
	tableOptions   = ") CHARACTER SET utf8 COLLATE utf8_unicode_ci;\n"
	dateTimeFormat = "2006-01-02 15:04:05"
	// DateTime values are written one hour earlier than stored.
	dateTimeShift = -time.Hour
)

// TableName derives the SQL table name from a file path:
// the lower cased base name without a ".dbf" suffix.
func TableName(path string) string {
	return strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".dbf")
}

// Quote wraps an identifier in backticks, doubling embedded backticks.
func Quote(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Destination returns the SQL file for a source by replacing its last three characters with "sql".
// With an output directory the file is placed there under the same base name.
func Destination(source string, outputDir string) string {
	var destination string
	if len(source) >= 3 {
		destination = source[:len(source)-3] + "sql"
	} else {
		destination = source + ".sql"
	}
	if outputDir != "" {
		destination = filepath.Join(outputDir, filepath.Base(destination))
	}
	return destination
}

// Exportable returns the columns that appear in the schema and the value lists.
func Exportable(columns []*dbase.Column) []*dbase.Column {
	out := make([]*dbase.Column, 0, len(columns))
	for _, column := range columns {
		if !column.Skip() {
			out = append(out, column)
		}
	}
	return out
}

// CreateTable renders the CREATE TABLE statement for the exportable columns.
// Column names are lower-cased.
func CreateTable(table string, columns []*dbase.Column) (string, error) {
	exportable := Exportable(columns)
	if len(exportable) == 0 {
		return "", fmt.Errorf("%w: table %s", ErrNoColumns, table)
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(Quote(table))
	b.WriteString(" (\n")
	for i, column := range exportable {
		sqlType, err := column.SQLType()
		if err != nil {
			return "", fmt.Errorf("column %s: %w", column.Name(), err)
		}
		b.WriteString("\t")
		b.WriteString(Quote(strings.ToLower(column.Name())))
		b.WriteString(" ")
		b.WriteString(sqlType)
		if i < len(exportable)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(tableOptions)
	return b.String(), nil
}

// Insert renders the INSERT statement for a decoded row.
// Every value is double quoted, null values become an empty string.
func Insert(table string, row *dbase.Row, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(Quote(table))
	b.WriteString(" VALUES (")
	for i, field := range row.Fields() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(Escape(Render(field.Value(), loc)))
		b.WriteString(`"`)
	}
	b.WriteString(");\n")
	return b.String()
}

// Render returns the SQL text of a value.
// DateTime values are shifted by one hour back and shown in loc.
func Render(v dbase.Value, loc *time.Location) string {
	switch val := v.(type) {
	case nil:
		return ""
	case dbase.DateTimeValue:
		if loc == nil {
			loc = time.Local
		}
		return time.Time(val).Add(dateTimeShift).In(loc).Format(dateTimeFormat)
	default:
		return v.String()
	}
}

var escaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`, "\x00", `\0`)

// Escape quotes backslashes, quotes and NUL bytes with a backslash.
func Escape(s string) string {
	return escaper.Replace(s)
}
