// Package content holds the value that flows between transform stages and the
// coercion helpers used to move it between raw bytes, decoded text and parsed
// data.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	// KindText is decoded text.
	KindText Kind = iota
	// KindBytes is a raw byte sequence whose encoding is unknown.
	KindBytes
	// KindJSON is a parsed value: nil, bool, float64, map[string]any or []any.
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the content slot of a pipeline stage. The zero value is empty text.
type Value struct {
	kind Kind
	text string
	raw  []byte
	data any
}

// Text wraps decoded text.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Bytes wraps a raw byte sequence. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// JSON wraps a parsed value. Numbers are normalised to float64.
func JSON(v any) Value { return Value{kind: KindJSON, data: normalize(v)} }

// FromAny picks the variant matching a Go value returned by a transform:
// strings become Text, byte slices become Bytes and everything else JSON.
func FromAny(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case []byte:
		return Bytes(x)
	default:
		return JSON(x)
	}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsBytes reports whether v holds raw bytes.
func (v Value) IsBytes() bool { return v.kind == KindBytes }

// IsText reports whether v holds decoded text.
func (v Value) IsText() bool { return v.kind == KindText }

// Interface returns the underlying Go value: string, []byte or the parsed data.
func (v Value) Interface() any {
	switch v.kind {
	case KindBytes:
		return v.raw
	case KindJSON:
		return v.data
	default:
		return v.text
	}
}

// String renders the value as text, the form spliced back into a document.
// Bytes are read as UTF-8; JSON strings are returned bare and any other JSON
// value is encoded compactly.
func (v Value) String() string {
	switch v.kind {
	case KindBytes:
		if utf8.Valid(v.raw) {
			return string(v.raw)
		}
		return strings.ToValidUTF8(string(v.raw), "\uFFFD")
	case KindJSON:
		if s, ok := v.data.(string); ok {
			return s
		}
		s, err := EncodeJSON(v.data)
		if err != nil {
			return fmt.Sprint(v.data)
		}
		return s
	default:
		return v.text
	}
}

// Raw returns the value as bytes. Text and JSON values are UTF-8 encoded.
func (v Value) Raw() []byte {
	if v.kind == KindBytes {
		return v.raw
	}
	return []byte(v.String())
}

// EncodeJSON returns the compact JSON encoding of v with HTML escaping
// disabled and no trailing newline. U+2028 and U+2029 are written raw, as
// JSON.stringify does.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return rawLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

func rawLineSeparators(s string) string {
	if !strings.Contains(s, `\u202`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch esc := s[i+1:]; {
		case strings.HasPrefix(esc, "u2028"):
			b.WriteRune('\u2028')
			i += 5
		case strings.HasPrefix(esc, "u2029"):
			b.WriteRune('\u2029')
			i += 5
		default:
			b.WriteString(s[i : i+2])
			i++
		}
	}
	return b.String()
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v2 := range x {
			out[k] = normalize(v2)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, v2 := range x {
			out[fmt.Sprint(k)] = normalize(v2)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, v2 := range x {
			out[i] = normalize(v2)
		}
		return out
	default:
		return v
	}
}
