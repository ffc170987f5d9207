package builtin

import (
	"time"

	"github.com/flarebyte/inline-transforms/internal/sandbox"
)

// DefaultMIMEType is used by dataurl when the target gives no usable hint.
const DefaultMIMEType = "text/plain"

// CSSOptions configures the cssmin minifier. A zero Precision keeps numbers
// as written; KeepCSS2 avoids CSS3 syntax in the output.
type CSSOptions struct {
	Precision int
	KeepCSS2  bool
}

// Options configures the built-in transforms.
type Options struct {
	CSS CSSOptions
	// Eval backs the eval transform. Nil selects a JS sandbox.
	Eval sandbox.Evaluator
	// Lua backs the lua transform. Nil selects sandbox.DefaultLua.
	Lua sandbox.Evaluator
	// DefaultMIMEType overrides DefaultMIMEType for dataurl.
	DefaultMIMEType string
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Eval:            sandbox.JS{Timeout: 2 * time.Second},
		Lua:             sandbox.DefaultLua(),
		DefaultMIMEType: DefaultMIMEType,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Eval == nil {
		o.Eval = d.Eval
	}
	if o.Lua == nil {
		o.Lua = d.Lua
	}
	if o.DefaultMIMEType == "" {
		o.DefaultMIMEType = d.DefaultMIMEType
	}
	return o
}
