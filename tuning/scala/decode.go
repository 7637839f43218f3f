package scala

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// utf16Probe is the number of leading bytes inspected for zero-byte runs.
const utf16Probe = 512

// Decode converts raw file bytes to text with LF line endings. Byte order
// marks select UTF-8 or UTF-16; without one, UTF-16 is recognised by its
// zero bytes, valid UTF-8 is taken as is and anything else is decoded with
// fallback (Latin-1 when nil).
func Decode(data []byte, fallback encoding.Encoding) (string, error) {
	if fallback == nil {
		fallback = charmap.ISO8859_1
	}

	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	default:
		if order, ok := sniffUTF16(data); ok {
			enc = unicode.UTF16(order, unicode.IgnoreBOM)
		} else if !utf8.Valid(data) {
			enc = fallback
		}
	}

	text := string(data)
	if enc != nil {
		out, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("scala: decode: %w", err)
		}
		text = string(out)
	}

	text = strings.TrimPrefix(text, "\uFEFF")

	return normalizeNewlines(text), nil
}

// sniffUTF16 guesses UTF-16 without a byte order mark. Mostly-ASCII UTF-16
// text has a zero in every other byte; the parity of those zeros gives the
// byte order.
func sniffUTF16(data []byte) (unicode.Endianness, bool) {
	n := min(len(data), utf16Probe)
	n &^= 1
	if n < 4 {
		return unicode.LittleEndian, false
	}

	var evenZeros, oddZeros int
	for i := 0; i < n; i += 2 {
		if data[i] == 0 {
			evenZeros++
		}
		if data[i+1] == 0 {
			oddZeros++
		}
	}

	pairs := n / 2
	switch {
	case oddZeros*2 >= pairs && evenZeros == 0:
		return unicode.LittleEndian, true
	case evenZeros*2 >= pairs && oddZeros == 0:
		return unicode.BigEndian, true
	default:
		return unicode.LittleEndian, false
	}
}

func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
