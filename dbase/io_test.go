package dbase

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// seekOnly hides the io.ReaderAt implementation of the wrapped reader
type seekOnly struct {
	r *bytes.Reader
}

func (s *seekOnly) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *seekOnly) Seek(offset int64, whence int) (int64, error) {
	return s.r.Seek(offset, whence)
}

type closeTracker struct {
	*bytes.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestGenericIO_SeekFallback(t *testing.T) {
	data := testTable(t)
	file, err := OpenTable(&Config{IO: GenericIO{Handle: &seekOnly{r: bytes.NewReader(data)}}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", GetErrorTrace(err))
	}
	defer file.Close()

	rows := 0
	for {
		_, err := file.Next()
		if errors.Is(err, ErrEOF) {
			break
		}
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		rows++
	}
	if rows != 3 {
		t.Errorf("Expected 3 rows, got %d", rows)
	}
}

func TestGenericIO_ReadAtShort(t *testing.T) {
	handle := &seekOnly{r: bytes.NewReader([]byte("abc"))}
	file := &File{handle: handle}
	buf := make([]byte, 5)
	n, err := GenericIO{}.ReadAt(file, buf, 1)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("Expected 2 bytes and io.EOF, got %d and %v", n, err)
	}
}

func TestGenericIO_Size(t *testing.T) {
	file := &File{handle: bytes.NewReader(make([]byte, 42))}
	size, err := GenericIO{}.Size(file)
	if err != nil || size != 42 {
		t.Errorf("Expected size 42, got %d (%v)", size, err)
	}

	if _, err := (GenericIO{}).Size(&File{handle: 1}); err == nil {
		t.Error("Expected error for a handle of the wrong type")
	}
}

func TestGenericIO_Close(t *testing.T) {
	tracker := &closeTracker{Reader: bytes.NewReader(testTable(t))}
	file, err := OpenTable(&Config{IO: GenericIO{Handle: tracker}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := file.Close(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !tracker.closed {
		t.Error("Expected the handle to be closed")
	}
}

func TestGenericIO_OpenByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.dbf")
	if err := os.WriteFile(path, testTable(t), 0o644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	file, err := OpenTable(&Config{Filename: path, IO: GenericIO{}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if file.RowsCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", file.RowsCount())
	}
	if err := file.Close(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	_, err = OpenTable(&Config{Filename: filepath.Join(t.TempDir(), "missing.dbf"), IO: GenericIO{}})
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PEOPLE.DBF")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	got, err := _findFile(filepath.Join(dir, "people.dbf"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != path {
		t.Errorf("Expected %s, got %s", path, got)
	}

	missing := filepath.Join(dir, "other.dbf")
	got, err = _findFile(missing)
	if err != nil || got != missing {
		t.Errorf("Expected %s unchanged, got %s (%v)", missing, got, err)
	}
}

func TestDefaultIO_CaseInsensitiveOpen(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "PEOPLE.DBF"), testTable(t), 0o644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	file, err := Open(filepath.Join(dir, "people.dbf"), "auto")
	if err != nil {
		t.Fatalf("Unexpected error: %v", GetErrorTrace(err))
	}
	defer file.Close()
	if file.RowsCount() != 3 {
		t.Errorf("Expected 3 rows, got %d", file.RowsCount())
	}
}
