package content

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned by Decode for labels it cannot resolve.
var ErrUnknownEncoding = errors.New("unknown encoding")

// DefaultEncoding is used when no encoding label is given.
const DefaultEncoding = "utf8"

// Decode turns raw bytes into text using the named encoding. Besides the
// utf8/binary/latin1/utf16le/hex/base64 labels, any WHATWG label such as
// big5 or shift_jis is accepted.
func Decode(b []byte, label string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	switch name {
	case "", "utf8", "utf-8":
		return decodeWith(unicode.UTF8, b)
	case "binary", "latin1", "ascii", "iso-8859-1":
		// One byte per code point, no remapping of 0x80-0x9f.
		return decodeWith(charmap.ISO8859_1, b)
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), b)
	case "hex":
		return hex.EncodeToString(b), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(b), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownEncoding, label)
	}
	return decodeWith(enc, b)
}

func decodeWith(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
