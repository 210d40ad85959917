package dbase

import (
	"fmt"
	"strings"

	"github.com/axgle/mahonia"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// EncodingConverter converts character column data between the table encoding and UTF-8.
type EncodingConverter interface {
	Decode(in []byte) ([]byte, error)
	Encode(in []byte) ([]byte, error)
	CodePage() byte
}

// Code page marks as stored in byte 29 of the header
var codePages = []struct {
	mark     byte
	encoding encoding.Encoding
}{
	{0x01, charmap.CodePage437},  // U.S. MS-DOS
	{0x02, charmap.CodePage850},  // International MS-DOS
	{0x64, charmap.CodePage852},  // Eastern European MS-DOS
	{0x66, charmap.CodePage865},  // Nordic MS-DOS
	{0x65, charmap.CodePage866},  // Russian MS-DOS
	{0x7C, charmap.Windows874},   // Thai Windows
	{0xC8, charmap.Windows1250},  // Central European Windows
	{0xC9, charmap.Windows1251},  // Russian Windows
	{0x03, charmap.Windows1252},  // Windows ANSI
	{0xCB, charmap.Windows1253},  // Greek Windows
	{0xCA, charmap.Windows1254},  // Turkish Windows
	{0x7D, charmap.Windows1255},  // Hebrew Windows
	{0x7E, charmap.Windows1256},  // Arabic Windows
	{0x57, charmap.Windows1252},  // ANSI (dBase IV)
	{0x26, charmap.CodePage866},  // Russian MS-DOS (dBase IV)
	{0x37, charmap.CodePage850},  // International MS-DOS (dBase IV)
}

// DOS code page names that neither the WHATWG nor the IANA index resolve
var dosCodePages = map[string]encoding.Encoding{
	"cp437":  charmap.CodePage437,
	"ibm437": charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"ibm850": charmap.CodePage850,
	"cp852":  charmap.CodePage852,
	"ibm852": charmap.CodePage852,
	"cp865":  charmap.CodePage865,
	"ibm865": charmap.CodePage865,
	"cp866":  charmap.CodePage866,
	"ibm866": charmap.CodePage866,
}

// DefaultConverter converts with a golang.org/x/text encoding.
type DefaultConverter struct {
	encoding encoding.Encoding
}

func NewDefaultConverter(enc encoding.Encoding) DefaultConverter {
	return DefaultConverter{encoding: enc}
}

// Decode decodes a byte slice in the converter encoding to UTF-8.
// Invalid sequences are replaced with the unicode replacement character.
func (c DefaultConverter) Decode(in []byte) ([]byte, error) {
	out, _, err := transform.Bytes(c.encoding.NewDecoder(), in)
	if err != nil {
		return nil, newError("dbase-encoding-decode-1", err)
	}
	return out, nil
}

// Encode encodes a UTF-8 byte slice to the converter encoding.
func (c DefaultConverter) Encode(in []byte) ([]byte, error) {
	out, _, err := transform.Bytes(c.encoding.NewEncoder(), in)
	if err != nil {
		return nil, newError("dbase-encoding-encode-1", err)
	}
	return out, nil
}

// CodePage returns the code page mark for the encoding or 0x00 if there is none.
func (c DefaultConverter) CodePage() byte {
	for _, cp := range codePages {
		if cp.encoding == c.encoding {
			return cp.mark
		}
	}
	return 0x00
}

// MahoniaConverter converts with a github.com/axgle/mahonia charset.
// It covers charset names golang.org/x/text does not index.
type MahoniaConverter struct {
	name    string
	decoder mahonia.Decoder
	encoder mahonia.Encoder
}

func (c MahoniaConverter) Decode(in []byte) ([]byte, error) {
	return []byte(c.decoder.ConvertString(string(in))), nil
}

func (c MahoniaConverter) Encode(in []byte) ([]byte, error) {
	if c.encoder == nil {
		return nil, newError("dbase-encoding-mahonia-encode-1", fmt.Errorf("%w: no encoder for %s", ErrInvalidEncoding, c.name))
	}
	return []byte(c.encoder.ConvertString(string(in))), nil
}

func (c MahoniaConverter) CodePage() byte {
	return 0x00
}

// ConverterFromName resolves an encoding name like "UTF-8", "CP1250" or "windows-1251".
// DOS code pages, WHATWG labels and IANA names are tried in this order, mahonia charsets last.
func ConverterFromName(name string) (EncodingConverter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return NewDefaultConverter(unicode.UTF8), nil
	}
	if enc, ok := dosCodePages[key]; ok {
		return NewDefaultConverter(enc), nil
	}
	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		debugf("Resolved encoding %q through the WHATWG index", name)
		return NewDefaultConverter(enc), nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		debugf("Resolved encoding %q through the IANA index", name)
		return NewDefaultConverter(enc), nil
	}
	if dec := mahonia.NewDecoder(key); dec != nil {
		debugf("Resolved encoding %q through mahonia", name)
		return MahoniaConverter{name: key, decoder: dec, encoder: mahonia.NewEncoder(key)}, nil
	}
	return nil, newError("dbase-encoding-converterfromname-1", fmt.Errorf("%w: %q", ErrInvalidEncoding, name))
}

// ConverterFromCodePage returns the converter for a code page mark.
// Unknown marks, including 0x00, fall back to UTF-8.
func ConverterFromCodePage(codePageMark byte) EncodingConverter {
	for _, cp := range codePages {
		if cp.mark == codePageMark {
			return NewDefaultConverter(cp.encoding)
		}
	}
	return NewDefaultConverter(unicode.UTF8)
}
