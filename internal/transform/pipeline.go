package transform

import (
	"context"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/logging"
)

// Transform runs requests in order over initial. Each stage receives the
// value returned by the previous one; the last value is returned as-is. An
// empty request list returns initial untouched. The first failing stage stops
// the pipeline and its error is returned inside a *StageError.
func (r *Registry) Transform(ctx context.Context, tc *Context, initial content.Value, requests []Request) (content.Value, error) {
	if tc == nil {
		tc = &Context{}
	}
	log := logging.FromContext(ctx)
	cur := initial
	for i, req := range requests {
		fn, err := r.Resolve(req.Name)
		if err != nil {
			return content.Value{}, &StageError{Index: i, Name: req.Name, Err: err}
		}
		log.Debug("transform stage", "index", i, "name", req.Name, "args", req.Args, "in", cur.Kind().String())
		out, err := fn(ctx, tc, cur, req.Args)
		if err != nil {
			log.Debug("transform stage failed", "index", i, "name", req.Name, "error", err)
			return content.Value{}, &StageError{Index: i, Name: req.Name, Err: err}
		}
		cur = out
	}
	return cur, nil
}

// Run executes requests against the Default registry.
func Run(ctx context.Context, tc *Context, initial content.Value, requests []Request) (content.Value, error) {
	return Default.Transform(ctx, tc, initial, requests)
}
