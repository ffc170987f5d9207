package transform

import (
	"context"

	"github.com/flarebyte/inline-transforms/internal/content"
)

// DirectiveType distinguishes the syntactic forms of an inline directive.
type DirectiveType string

const (
	// DirectiveInline is the single-line form; injected content continues
	// the directive's own line.
	DirectiveInline DirectiveType = "$inline"
	// DirectiveStart opens a block; injected content starts on a fresh line.
	DirectiveStart DirectiveType = "$inline.start"
	// DirectiveEnd closes a block.
	DirectiveEnd DirectiveType = "$inline.end"
)

// Directive locates a directive inside the source text by byte offsets.
type Directive struct {
	Type  DirectiveType
	Start int
	End   int
}

// Target describes where the directive's content came from, e.g.
// {Name: "file", Args: ["style.css"]}.
type Target struct {
	Name string
	Args []string
}

// Arg returns the i-th target argument or "".
func (t *Target) Arg(i int) string {
	if t == nil || i < 0 || i >= len(t.Args) {
		return ""
	}
	return t.Args[i]
}

// Context is built once per directive and shared by all stages of its
// pipeline. Transforms must treat it as read-only.
type Context struct {
	SourceContent string
	Directive     Directive
	Target        *Target
}

// Request is one pipeline stage: a transform name plus its string arguments.
type Request struct {
	Name string
	Args []string
}

// Func is a transform implementation. args holds the request arguments in
// order; missing positional arguments are filled by the transform itself.
type Func func(ctx context.Context, tc *Context, in content.Value, args []string) (content.Value, error)

// Descriptor binds a transform to its name.
type Descriptor struct {
	Name      string
	Transform Func
}

// Arg returns args[i] when present and non-empty, otherwise def.
func Arg(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}
