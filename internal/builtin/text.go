package builtin

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/indent"
	"github.com/flarebyte/inline-transforms/internal/transform"
)

// decodeString implements string(encoding="utf8").
func (s *set) decodeString(_ context.Context, _ *transform.Context, in content.Value, args []string) (content.Value, error) {
	if !in.IsBytes() {
		return in, nil
	}
	text, err := content.Decode(in.Raw(), transform.Arg(args, 0, content.DefaultEncoding))
	if err != nil {
		return content.Value{}, err
	}
	return content.Text(text), nil
}

func (s *set) cssmin(_ context.Context, _ *transform.Context, in content.Value, _ []string) (content.Value, error) {
	out, err := s.minifier.String(cssMediaType, in.String())
	if err != nil {
		return content.Value{}, fmt.Errorf("cssmin: %w", err)
	}
	return content.Text(out), nil
}

func (s *set) docstring(_ context.Context, _ *transform.Context, in content.Value, _ []string) (content.Value, error) {
	body, err := content.FindBacktickLiteral(in.String())
	if err != nil {
		return content.Value{}, err
	}
	out, err := content.UnescapeBacktick(body)
	if err != nil {
		return content.Value{}, err
	}
	return content.Text(out), nil
}

// indent matches the content to the indentation of the directive's line. A
// single-line directive already sits after that indentation, so only the
// block-start form indents the first line.
func (s *set) indent(_ context.Context, tc *transform.Context, in content.Value, _ []string) (content.Value, error) {
	prefix := indent.Of(tc.SourceContent, tc.Directive.Start)
	if prefix == "" {
		return in, nil
	}
	return content.Text(indent.Apply(in.String(), prefix, tc.Directive.Type == transform.DirectiveStart)), nil
}

func (s *set) stringify(_ context.Context, _ *transform.Context, in content.Value, _ []string) (content.Value, error) {
	var v any
	switch in.Kind() {
	case content.KindJSON:
		v = in.Interface()
	default:
		v = in.String()
	}
	out, err := content.EncodeJSON(v)
	if err != nil {
		return content.Value{}, fmt.Errorf("stringify: %w", err)
	}
	return content.Text(out), nil
}

func (s *set) trim(_ context.Context, _ *transform.Context, in content.Value, _ []string) (content.Value, error) {
	return content.Text(strings.TrimFunc(in.String(), isTrimSpace)), nil
}

// isTrimSpace matches the JavaScript WhiteSpace and LineTerminator sets, which
// include the BOM but not U+0085.
func isTrimSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\uFEFF'
}
