package dbase

import (
	"encoding/binary"
	"time"
)

// Julian day number of 1970-01-01
const unixEpochJD = 2440588

// convert year, month and day to a julian day number
// julian day number -> days since 01-01-4712 BC
func YMD2JD(y, m, d int) int {
	return d - 32075 +
		1461*(y+4800+(m-14)/12)/4 +
		367*(m-2-(m-14)/12*12)/12 -
		3*((y+4900+(m-14)/12)/100)/4
}

// convert julian day number to year, month and day
// julian day number -> days since 01-01-4712 BC
func JD2YMD(date int) (int, int, int) {
	l := date + 68569
	n := 4 * l / 146097
	l = l - (146097*n+3)/4
	y := 4000 * (l + 1) / 1461001
	l = l - 1461*y/4 + 31
	m := 80 * l / 2447
	d := l - 2447*m/80
	l = m / 11
	m = m + 2 - 12*l
	y = 100*(n-49) + y + l
	return y, m, d
}

// convert julian day number to golang time.Time at midnight UTC
func JDToDate(number int) time.Time {
	y, m, d := JD2YMD(number)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// parseDateTime decodes the 8 byte datetime layout:
// 4 bytes julian day number followed by 4 bytes milliseconds since midnight, both little endian.
// ok is false when both parts are zero.
func parseDateTime(raw []byte) (t time.Time, ok bool) {
	julian := binary.LittleEndian.Uint32(raw[:4])
	millis := binary.LittleEndian.Uint32(raw[4:8])
	if julian == 0 && millis == 0 {
		return time.Time{}, false
	}
	date := JDToDate(int(julian))
	return date.Add(time.Duration(millis) * time.Millisecond), true
}

// representDateTime is the inverse of parseDateTime, t is converted to UTC first.
func representDateTime(t time.Time) []byte {
	t = t.UTC()
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint32(raw[:4], uint32(YMD2JD(t.Year(), int(t.Month()), t.Day())))
	millis := t.Hour()*3600000 + t.Minute()*60000 + t.Second()*1000 + t.Nanosecond()/int(time.Millisecond)
	binary.LittleEndian.PutUint32(raw[4:], uint32(millis))
	return raw
}
