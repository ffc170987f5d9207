// Package pipespec parses the compact directive pipe syntax
//
//	target|name1:arg1,arg2|name2:arg3
//
// used on the command line. A backslash escapes the next character, so
// separators can appear inside arguments ("eval:$0.split('\,')").
package pipespec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flarebyte/inline-transforms/internal/transform"
)

// ErrSyntax is returned for empty targets or transform names.
var ErrSyntax = errors.New("invalid pipe syntax")

// DefaultTargetKind is used when the target segment has no "kind:" prefix.
const DefaultTargetKind = "file"

// Parse splits s into its target and transform requests.
func Parse(s string) (*transform.Target, []transform.Request, error) {
	segs := split(s, '|')
	if strings.TrimSpace(segs[0]) == "" {
		return nil, nil, fmt.Errorf("%w: missing target", ErrSyntax)
	}
	name, args, hasArgs := segment(segs[0])
	target := &transform.Target{Name: name, Args: args}
	if !hasArgs {
		target = &transform.Target{Name: DefaultTargetKind, Args: []string{name}}
	}
	reqs, err := requests(segs[1:])
	if err != nil {
		return nil, nil, err
	}
	return target, reqs, nil
}

// ParseRequests parses a pipe made only of transform requests.
func ParseRequests(s string) ([]transform.Request, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return requests(split(s, '|'))
}

func requests(segs []string) ([]transform.Request, error) {
	out := make([]transform.Request, 0, len(segs))
	for i, seg := range segs {
		name, args, _ := segment(seg)
		if name == "" {
			return nil, fmt.Errorf("%w: empty transform name at position %d", ErrSyntax, i+1)
		}
		out = append(out, transform.Request{Name: name, Args: args})
	}
	return out, nil
}

// segment splits "name:a,b" into its unescaped name and arguments.
func segment(seg string) (string, []string, bool) {
	parts := splitN(seg, ':', 2)
	name := strings.TrimSpace(unescape(parts[0]))
	if len(parts) == 1 {
		return name, nil, false
	}
	raw := split(parts[1], ',')
	args := make([]string, len(raw))
	for i, a := range raw {
		args[i] = unescape(a)
	}
	return name, args, true
}

func split(s string, sep byte) []string {
	return splitN(s, sep, -1)
}

// splitN splits on unescaped sep, keeping escapes in the pieces.
func splitN(s string, sep byte, n int) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if n > 0 && len(out) == n-1 {
			break
		}
		switch s[i] {
		case '\\':
			i++
		case sep:
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
