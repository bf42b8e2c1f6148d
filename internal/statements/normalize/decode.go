// Package normalize holds the field-level converters shared by every
// recognizer: byte decoding, amount parsing with direction inference, and
// multi-layout date parsing.
package normalize

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/f228476653/moneyTracking/internal/statements"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Legacy single-byte encodings tried after UTF-8, in order. Windows-1252
// first: it is a strict superset of ISO-8859-1 for printable bytes and is
// what bank exports in the wild actually use.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// Decode converts raw statement bytes to text. UTF-8 wins when the bytes
// validate; otherwise the legacy encodings are tried in order. When nothing
// fits, the caller gets ErrUnsupportedFormat.
func Decode(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if utf8.Valid(content) {
		return string(content), nil
	}
	for _, enc := range fallbackEncodings {
		decoded, err := enc.NewDecoder().Bytes(content)
		if err != nil {
			continue
		}
		if utf8.Valid(decoded) {
			return string(decoded), nil
		}
	}
	return "", statements.ErrUnsupportedFormat
}
