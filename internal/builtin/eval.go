package builtin

import (
	"context"
	"fmt"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/sandbox"
	"github.com/flarebyte/inline-transforms/internal/transform"
)

// eval implements eval(code). The script sees the content as $0 and nothing
// else from the host.
func (s *set) eval(ctx context.Context, _ *transform.Context, in content.Value, args []string) (content.Value, error) {
	return evaluate(ctx, s.opts.Eval, in, args)
}

// lua implements lua(code) with the content bound to the global content.
func (s *set) lua(ctx context.Context, _ *transform.Context, in content.Value, args []string) (content.Value, error) {
	return evaluate(ctx, s.opts.Lua, in, args)
}

func evaluate(ctx context.Context, e sandbox.Evaluator, in content.Value, args []string) (content.Value, error) {
	code := transform.Arg(args, 0, "")
	if code == "" {
		return content.Value{}, fmt.Errorf("%w: code", transform.ErrMissingArgument)
	}
	out, err := e.Eval(ctx, code, in.Interface())
	if err != nil {
		return content.Value{}, fmt.Errorf("%w: %w", transform.ErrEvaluation, err)
	}
	return content.FromAny(out), nil
}
