package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/transform"
)

// markdown implements markdown(type, ...args) for the codeblock, code and
// quote wrappers.
func (s *set) markdown(_ context.Context, _ *transform.Context, in content.Value, args []string) (content.Value, error) {
	typ := transform.Arg(args, 0, "")
	text := in.String()
	switch typ {
	case "codeblock":
		lang := ""
		if len(args) > 1 {
			lang = args[1]
		}
		return content.Text("```" + lang + "\n" + text + "\n```"), nil
	case "code":
		return content.Text("`" + text + "`"), nil
	case "quote":
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			lines[i] = "> " + l
		}
		return content.Text(strings.Join(lines, "\n")), nil
	default:
		return content.Value{}, fmt.Errorf("%w: %q", transform.ErrUnknownMarkdownType, typ)
	}
}
