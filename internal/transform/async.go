package transform

import (
	"context"

	"github.com/flarebyte/inline-transforms/internal/content"
)

// Result is the settled outcome of an asynchronous transform.
type Result struct {
	Value content.Value
	Err   error
}

// AsyncFunc starts a transform and delivers its outcome later. The channel
// must receive exactly one Result.
type AsyncFunc func(ctx context.Context, tc *Context, in content.Value, args []string) <-chan Result

// Async adapts an AsyncFunc into a Func that waits for the result. The
// pipeline does not advance until the result arrives; cancellation of ctx by
// the host ends the wait with ctx.Err().
func Async(fn AsyncFunc) Func {
	return func(ctx context.Context, tc *Context, in content.Value, args []string) (content.Value, error) {
		ch := fn(ctx, tc, in, args)
		select {
		case res := <-ch:
			if res.Err != nil {
				return content.Value{}, res.Err
			}
			return res.Value, nil
		case <-ctx.Done():
			return content.Value{}, ctx.Err()
		}
	}
}
