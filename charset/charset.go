package charset

import (
	"bytes"
	"encoding/hex"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a supported character encoding label.
type Encoding int

const (
	// UTF8 indicates UTF-8 encoded content.
	UTF8 Encoding = iota
	// UTF16LE indicates little-endian UTF-16.
	UTF16LE
	// UTF16BE indicates big-endian UTF-16.
	UTF16BE
	// GB2312 indicates the GB2312 subset of the GB family.
	// It decodes through the GBK tables, of which GB2312 is a subset.
	GB2312
	// GBK indicates GBK-encoded Chinese text.
	GBK
	// GB18030 indicates GB18030-encoded Chinese text.
	GB18030
	// Latin1 indicates single-byte Western text. It resolves to
	// Windows-1252, the practical meaning of the latin1 label.
	Latin1
	// ASCII indicates strict 7-bit ASCII.
	ASCII
	// Hex is the terminal fallback label: content is rendered as
	// hexadecimal digits because no encoding decoded it acceptably.
	Hex
)

// String returns the canonical lowercase label for the encoding.
func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16LE:
		return "utf16le"
	case UTF16BE:
		return "utf16be"
	case GB2312:
		return "gb2312"
	case GBK:
		return "gbk"
	case GB18030:
		return "gb18030"
	case Latin1:
		return "latin1"
	case ASCII:
		return "ascii"
	case Hex:
		return "hex"
	default:
		return "unknown"
	}
}

// Parse resolves a label string to an Encoding. The second return value
// reports whether the label is supported.
func Parse(label string) (Encoding, bool) {
	switch label {
	case "utf8", "utf-8":
		return UTF8, true
	case "utf16le", "utf-16le":
		return UTF16LE, true
	case "utf16be", "utf-16be":
		return UTF16BE, true
	case "gb2312":
		return GB2312, true
	case "gbk":
		return GBK, true
	case "gb18030":
		return GB18030, true
	case "latin1", "iso-8859-1", "windows-1252":
		return Latin1, true
	case "ascii", "us-ascii":
		return ASCII, true
	case "hex":
		return Hex, true
	default:
		return UTF8, false
	}
}

// Valid reports whether e is one of the defined labels.
func Valid(e Encoding) bool {
	return e >= UTF8 && e <= Hex
}

// Byte order marks. A BOM is authoritative: its presence short-circuits
// all statistical analysis in Detect.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ErrInvalidBytes is returned by Decode when the input is not valid in
// the requested encoding.
var ErrInvalidBytes = errors.New("charset: bytes not valid in encoding")

// Decode converts raw bytes to a UTF-8 string under the given encoding.
// It is strict: input that is not valid in the encoding yields
// ErrInvalidBytes rather than replacement characters. Hex never fails;
// it renders the bytes as hexadecimal digits. A leading BOM matching the
// requested Unicode encoding is stripped.
func (e Encoding) Decode(b []byte) (string, error) {
	switch e {
	case UTF8:
		b = bytes.TrimPrefix(b, bomUTF8)
		if !utf8.Valid(b) {
			return "", ErrInvalidBytes
		}
		return string(b), nil

	case UTF16LE:
		b = bytes.TrimPrefix(b, bomUTF16LE)
		if len(b)%2 != 0 {
			return "", ErrInvalidBytes
		}
		return decodeStrict(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), b)

	case UTF16BE:
		b = bytes.TrimPrefix(b, bomUTF16BE)
		if len(b)%2 != 0 {
			return "", ErrInvalidBytes
		}
		return decodeStrict(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), b)

	case GB2312, GBK:
		return decodeStrict(simplifiedchinese.GBK, b)

	case GB18030:
		return decodeStrict(simplifiedchinese.GB18030, b)

	case Latin1:
		return decodeStrict(charmap.Windows1252, b)

	case ASCII:
		for _, c := range b {
			if c >= 0x80 {
				return "", ErrInvalidBytes
			}
		}
		return string(b), nil

	case Hex:
		return hex.EncodeToString(b), nil

	default:
		return "", ErrInvalidBytes
	}
}

// decodeStrict runs an x/text decoder and rejects the result if the
// decoder had to emit a replacement character. The x/text decoders
// substitute U+FFFD for invalid input instead of failing, so the
// replacement rune is the failure signal here.
func decodeStrict(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", ErrInvalidBytes
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", ErrInvalidBytes
	}
	return string(out), nil
}
