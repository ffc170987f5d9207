package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrMalformedLiteral is returned when a backtick literal is missing or does
// not unescape to a valid string.
var ErrMalformedLiteral = errors.New("malformed literal")

var (
	// A backtick, then escaped backticks or non-backtick characters, then a backtick.
	backtickLiteral = regexp.MustCompile("`((?:\\\\`|[^`])+)`")
	// Alternation order matters: escaped pairs win over the bare quote.
	literalEscapes = regexp.MustCompile("\\\\`|\\\\\"|\"|\n|\r")
)

// FindBacktickLiteral returns the body of the first backtick-delimited literal
// in s.
func FindBacktickLiteral(s string) (string, error) {
	m := backtickLiteral.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: no backtick literal found", ErrMalformedLiteral)
	}
	return m[1], nil
}

// UnescapeBacktick converts the body of a backtick literal to the string it
// denotes. Escaped backticks become backticks, bare quotes are escaped,
// carriage returns are dropped and newlines become \n; the result is then
// read as a double-quoted JSON string so the remaining escapes are resolved.
func UnescapeBacktick(s string) (string, error) {
	s = literalEscapes.ReplaceAllStringFunc(s, func(m string) string {
		switch m {
		case "\\`":
			return "`"
		case "\"":
			return "\\\""
		case "\r":
			return ""
		case "\n":
			return "\\n"
		default:
			return m
		}
	})
	var out string
	if err := json.Unmarshal([]byte("\""+s+"\""), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedLiteral, err)
	}
	return out, nil
}
