package transform

import (
	"errors"
	"fmt"

	"github.com/flarebyte/inline-transforms/internal/content"
)

// Error kinds surfaced by the registry and the built-in transforms.
var (
	ErrUnknownTransform    = errors.New("unknown transform")
	ErrUnknownMarkdownType = errors.New("unknown markdown type")
	ErrMalformedLiteral    = content.ErrMalformedLiteral
	ErrMalformedJSON       = errors.New("malformed json")
	ErrMalformedYAML       = errors.New("malformed yaml")
	ErrEvaluation          = errors.New("evaluation failed")
	ErrMissingArgument     = errors.New("missing argument")
)

// UnknownTransformError is returned when a name is not registered.
type UnknownTransformError struct{ Name string }

func (e *UnknownTransformError) Error() string { return "unknown transform: " + e.Name }

// Is reports whether target is ErrUnknownTransform.
func (e *UnknownTransformError) Is(target error) bool { return target == ErrUnknownTransform }

// StageError records which stage of a pipeline failed. Unwrap returns the
// stage's error unchanged.
type StageError struct {
	Index int
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("transform %q (stage %d): %v", e.Name, e.Index, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
