// Package sandbox runs untrusted expressions supplied in directives. Each
// evaluation gets a fresh interpreter with a single input binding and no
// access to host state; this is the one place where directive text is
// executed, so callers opt in explicitly by registering an evaluator-backed
// transform.
package sandbox

import (
	"context"
	"errors"
)

// Violation errors. Script errors are returned as-is.
var (
	ErrTimeout     = errors.New("sandbox timeout")
	ErrMemoryLimit = errors.New("sandbox memory limit")

	// ErrUnsupportedResult reports a result with no plain Go form.
	ErrUnsupportedResult = errors.New("sandbox result not exportable")
)

// Evaluator runs code with input bound under the evaluator's binding name and
// returns the script's result as a plain Go value.
type Evaluator interface {
	Eval(ctx context.Context, code string, input any) (any, error)
	Binding() string
}
