package transform

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/flarebyte/inline-transforms/internal/content"
)

func appendArgs(ctx context.Context, tc *Context, in content.Value, args []string) (content.Value, error) {
	return content.Text(in.String() + "[" + strings.Join(args, ",") + "]"), nil
}

func TestTransformIdentity(t *testing.T) {
	r := NewRegistry()
	for _, in := range []content.Value{content.Text("x"), content.Bytes([]byte{1, 2}), content.JSON(float64(3))} {
		out, err := r.Transform(context.Background(), &Context{}, in, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Kind() != in.Kind() || out.String() != in.String() {
			t.Fatalf("expected identity, got %s %q", out.Kind(), out.String())
		}
	}
}

func TestTransformRunsInOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(Descriptor{Name: "a", Transform: appendArgs})
	out, err := r.Transform(context.Background(), nil, content.Text("s"), []Request{
		{Name: "a", Args: []string{"1"}},
		{Name: "a", Args: []string{"2", "3"}},
		{Name: "a"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "s[1][2,3][]" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestTransformKeepsNonStringValues(t *testing.T) {
	r := NewRegistry()
	r.Add(Descriptor{Name: "num", Transform: func(context.Context, *Context, content.Value, []string) (content.Value, error) {
		return content.JSON(float64(123)), nil
	}})
	out, err := r.Transform(context.Background(), &Context{}, content.Text(""), []Request{{Name: "num"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind() != content.KindJSON || out.Interface() != float64(123) {
		t.Fatalf("expected raw number, got %s %#v", out.Kind(), out.Interface())
	}
}

func TestTransformPassesSharedContext(t *testing.T) {
	r := NewRegistry()
	tc := &Context{SourceContent: "src", Directive: Directive{Type: DirectiveStart, Start: 1, End: 2}}
	var seen []*Context
	r.Add(Descriptor{Name: "see", Transform: func(_ context.Context, got *Context, in content.Value, _ []string) (content.Value, error) {
		seen = append(seen, got)
		return in, nil
	}})
	if _, err := r.Transform(context.Background(), tc, content.Text(""), []Request{{Name: "see"}, {Name: "see"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[0] != tc || seen[1] != tc {
		t.Fatalf("expected the same context for every stage")
	}
}

func TestTransformUnknownAbortsBeforeLaterStages(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Add(Descriptor{Name: "count", Transform: func(_ context.Context, _ *Context, in content.Value, _ []string) (content.Value, error) {
		calls++
		return in, nil
	}})
	_, err := r.Transform(context.Background(), &Context{}, content.Text(""), []Request{{Name: "count"}, {Name: "missing"}, {Name: "count"}})
	if !errors.Is(err, ErrUnknownTransform) {
		t.Fatalf("expected ErrUnknownTransform, got %v", err)
	}
	var se *StageError
	if !errors.As(err, &se) || se.Index != 1 || se.Name != "missing" {
		t.Fatalf("unexpected stage error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call before failure, got %d", calls)
	}
}

func TestTransformPropagatesStageError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Add(Descriptor{Name: "fail", Transform: func(context.Context, *Context, content.Value, []string) (content.Value, error) {
		return content.Value{}, boom
	}})
	_, err := r.Transform(context.Background(), &Context{}, content.Text(""), []Request{{Name: "fail"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if errors.Unwrap(err) != boom {
		t.Fatalf("expected stage error to carry the original error")
	}
}

func TestAsyncTransformIsAwaited(t *testing.T) {
	r := NewRegistry()
	r.Add(Descriptor{Name: "later", Transform: Async(func(ctx context.Context, tc *Context, in content.Value, args []string) <-chan Result {
		ch := make(chan Result, 1)
		go func() {
			time.Sleep(10 * time.Millisecond)
			ch <- Result{Value: content.Text("OK")}
		}()
		return ch
	})})
	r.Add(Descriptor{Name: "a", Transform: appendArgs})
	out, err := r.Transform(context.Background(), &Context{}, content.Text(""), []Request{{Name: "later"}, {Name: "a", Args: []string{"x"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "OK[x]" {
		t.Fatalf("expected async result to feed next stage, got %q", out.String())
	}
}

func TestAsyncRejectionFailsPipeline(t *testing.T) {
	boom := errors.New("rejected")
	fn := Async(func(context.Context, *Context, content.Value, []string) <-chan Result {
		ch := make(chan Result, 1)
		ch <- Result{Err: boom}
		return ch
	})
	r := NewRegistry()
	r.Add(Descriptor{Name: "reject", Transform: fn})
	if _, err := r.Transform(context.Background(), &Context{}, content.Text(""), []Request{{Name: "reject"}}); !errors.Is(err, boom) {
		t.Fatalf("expected rejection, got %v", err)
	}
}

func TestAsyncHonoursHostCancellation(t *testing.T) {
	fn := Async(func(context.Context, *Context, content.Value, []string) <-chan Result {
		return make(chan Result)
	})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := fn(ctx, &Context{}, content.Text(""), nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestDefaultRegistryRun(t *testing.T) {
	Register("test-default-upper", func(_ context.Context, _ *Context, in content.Value, _ []string) (content.Value, error) {
		return content.Text(strings.ToUpper(in.String())), nil
	})
	out, err := Run(context.Background(), &Context{}, content.Text("abc"), []Request{{Name: "test-default-upper"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "ABC" {
		t.Fatalf("expected ABC, got %q", out.String())
	}
}
