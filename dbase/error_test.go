package dbase

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		context     string
		underlying  error
		expectedMsg string
		description string
	}{
		{"sampleContext1", ErrEOF, "EOF", "EOF Error"},
		{"sampleContext2", ErrMalformedHeader, "MALFORMED_HEADER", "Malformed header"},
		{"sampleContext3", fmt.Errorf("%w: row 3", ErrRowDecode), "ROW_DECODE: row 3", "Wrapped sentinel"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			err := newError(tt.context, tt.underlying)
			if err.Error() != tt.expectedMsg {
				t.Errorf("got %s, want %s", err.Error(), tt.expectedMsg)
			}
			if len(err.Context()) != 1 || err.Context()[0] != tt.context {
				t.Errorf("got context %v, want %s", err.Context(), tt.context)
			}
			if !strings.Contains(err.trace(), tt.context) {
				t.Errorf("trace %s does not contain context %s", err.trace(), tt.context)
			}
			if !errors.Is(err, tt.underlying) {
				t.Errorf("expected %v to be found in the chain", tt.underlying)
			}
		})
	}
}

func TestErrorContextTrail(t *testing.T) {
	inner := newError("inner", ErrIO)
	outer := newError("outer", inner)
	if got := strings.Join(outer.Context(), ","); got != "outer,inner" {
		t.Errorf("got context %s, want outer,inner", got)
	}
	if inner.Context()[0] != "inner" || len(inner.Context()) != 1 {
		t.Errorf("inner context modified: %v", inner.Context())
	}
	if !errors.Is(outer, ErrIO) {
		t.Error("expected ErrIO in the chain")
	}
}

func TestErrorKeepsMessageWrappers(t *testing.T) {
	inner := newError("inner", ErrRowDecode)
	outer := newError("outer", fmt.Errorf("row %d: %w", 7, inner))
	if outer.Error() != "row 7: ROW_DECODE" {
		t.Errorf("got %s, want row 7: ROW_DECODE", outer.Error())
	}
	if !errors.Is(outer, ErrRowDecode) {
		t.Error("expected ErrRowDecode in the chain")
	}
}

func TestGetErrorTrace(t *testing.T) {
	tests := []struct {
		inputError  error
		expected    string
		description string
	}{
		{newError("sampleContext1", ErrEOF), "sampleContext1:EOF", "Custom Error with EOF"},
		{newError("outer", newError("inner", ErrIO)), "outer:inner:IO", "Nested custom errors"},
		{fmt.Errorf("wrapped: %w", newError("ctx", ErrIO)), "ctx:IO", "Custom error behind fmt wrapper"},
		{ErrIncomplete, "INCOMPLETE", "Package-level error"},
		{errors.New("generic error"), "generic error", "Generic error"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := GetErrorTrace(tt.inputError)
			if got.Error() != tt.expected {
				t.Errorf("got %s, want %s", got.Error(), tt.expected)
			}
		})
	}
}
