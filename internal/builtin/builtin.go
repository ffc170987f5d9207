package builtin

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"

	"github.com/flarebyte/inline-transforms/internal/transform"
)

const cssMediaType = "text/css"

type set struct {
	opts     Options
	minifier *minify.M
}

func newSet(opts Options) *set {
	m := minify.New()
	m.Add(cssMediaType, &css.Minifier{
		Precision: opts.CSS.Precision,
		KeepCSS2:  opts.CSS.KeepCSS2,
	})
	return &set{opts: opts.withDefaults(), minifier: m}
}

// Descriptors returns the built-in transforms configured with opts.
func Descriptors(opts Options) []transform.Descriptor {
	s := newSet(opts)
	return []transform.Descriptor{
		{Name: "string", Transform: s.decodeString},
		{Name: "cssmin", Transform: s.cssmin},
		{Name: "docstring", Transform: s.docstring},
		{Name: "indent", Transform: s.indent},
		{Name: "stringify", Transform: s.stringify},
		{Name: "dataurl", Transform: s.dataURL},
		{Name: "eval", Transform: s.eval},
		{Name: "markdown", Transform: s.markdown},
		{Name: "parse", Transform: s.parse},
		{Name: "trim", Transform: s.trim},
		{Name: "yaml", Transform: s.yaml},
		{Name: "lua", Transform: s.lua},
	}
}

// Register adds the built-in transforms to reg.
func Register(reg *transform.Registry, opts Options) {
	reg.AddAll(Descriptors(opts))
}

// NewRegistry returns a registry holding only the built-in transforms.
func NewRegistry(opts Options) *transform.Registry {
	reg := transform.NewRegistry()
	Register(reg, opts)
	return reg
}
