package dbase

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	Debug(true, &buf)
	defer Debug(false, nil)

	debugf("test debug message: %s", "hello")
	output := buf.String()
	if !strings.Contains(output, "test debug message: hello") {
		t.Errorf("Debug message not found in output: %s", output)
	}
	if !strings.Contains(output, "[dbase] [DEBUG]") {
		t.Errorf("Debug prefix not found in output: %s", output)
	}

	buf.Reset()
	errorf("test error message: %d", 42)
	output = buf.String()
	if !strings.Contains(output, "[dbase] [ERROR] ") || !strings.Contains(output, "test error message: 42") {
		t.Errorf("Error message not found in output: %s", output)
	}

	buf.Reset()
	Debug(false, &buf)
	debugf("this should not appear")
	errorf("this should not appear")
	if buf.Len() > 0 {
		t.Errorf("Message appeared when debug was disabled: %s", buf.String())
	}
}

func TestDebugWithNilWriter(t *testing.T) {
	var buf bytes.Buffer
	Debug(true, &buf)
	defer Debug(false, nil)

	// keeps the previous destination
	Debug(true, nil)
	debugf("still here")
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("Expected output in the previous writer, got: %s", buf.String())
	}
}
