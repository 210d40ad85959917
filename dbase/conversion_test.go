package dbase

import (
	"fmt"
	"testing"
	"time"
)

func TestYMD2JD(t *testing.T) {
	tests := []struct {
		year, month, day int
		expected         int
	}{
		{2023, 8, 16, 2460173},
		{2000, 1, 1, 2451545},
		{1970, 1, 1, unixEpochJD},
		{1900, 3, 1, 2415080},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Year:%d, Month:%d, Day:%d", tt.year, tt.month, tt.day), func(t *testing.T) {
			got := YMD2JD(tt.year, tt.month, tt.day)
			if got != tt.expected {
				t.Errorf("got %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestJD2YMD(t *testing.T) {
	tests := []struct {
		julianDate       int
		year, month, day int
	}{
		{2460173, 2023, 8, 16},
		{2451545, 2000, 1, 1},
		{unixEpochJD, 1970, 1, 1},
		{2451604, 2000, 2, 29},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("JulianDate:%d", tt.julianDate), func(t *testing.T) {
			y, m, d := JD2YMD(tt.julianDate)
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("got Year:%d Month:%d Day:%d, want Year:%d Month:%d Day:%d", y, m, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestJDToDate(t *testing.T) {
	date := JDToDate(unixEpochJD)
	if !date.Equal(time.Unix(0, 0)) {
		t.Errorf("Expected the unix epoch, got %v", date)
	}
	if date.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", date.Location())
	}
}

func TestDateTimeRoundTrip(t *testing.T) {
	tests := []time.Time{
		time.Date(1970, 1, 1, 0, 0, 0, 1000000, time.UTC),
		time.Date(2000, 2, 29, 23, 59, 59, 999000000, time.UTC),
		time.Date(2024, 7, 15, 12, 30, 0, 0, time.UTC),
		time.Date(2024, 7, 15, 14, 30, 0, 0, time.FixedZone("CEST", 7200)),
	}

	for _, expected := range tests {
		t.Run(expected.String(), func(t *testing.T) {
			got, ok := parseDateTime(representDateTime(expected))
			if !ok {
				t.Fatal("Expected a valid datetime")
			}
			if !got.Equal(expected) {
				t.Errorf("got %v, want %v", got, expected)
			}
		})
	}
}

func TestParseDateTime_Zero(t *testing.T) {
	if _, ok := parseDateTime(make([]byte, 8)); ok {
		t.Error("Expected zero datetime to be invalid")
	}
}
