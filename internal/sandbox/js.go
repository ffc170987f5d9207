package sandbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// JSBinding is the only global the JS sandbox defines.
const JSBinding = "$0"

// JS evaluates JavaScript in a fresh runtime per call. Only the ECMAScript
// built-ins and the $0 binding exist; there is no require, console or host
// object.
type JS struct {
	Timeout time.Duration
}

// Binding returns "$0".
func (JS) Binding() string { return JSBinding }

// Eval runs code as a script and returns the completion value exported to Go.
// The script works on a copy of input; []byte input is exposed as an
// ArrayBuffer. Functions and symbols cannot be returned.
func (e JS) Eval(ctx context.Context, code string, input any) (any, error) {
	vm := goja.New()
	input = detach(input)
	if b, ok := input.([]byte); ok {
		input = vm.NewArrayBuffer(b)
	}
	if err := vm.Set(JSBinding, input); err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()
	if e.Timeout > 0 {
		t := time.AfterFunc(e.Timeout, func() { vm.Interrupt(ErrTimeout) })
		defer t.Stop()
	}

	v, err := vm.RunString(code)
	if err != nil {
		var ie *goja.InterruptedError
		if errors.As(err, &ie) {
			if cause, ok := ie.Value().(error); ok {
				return nil, cause
			}
		}
		return nil, err
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, nil
	}
	if _, ok := goja.AssertFunction(v); ok {
		return nil, fmt.Errorf("%w: function", ErrUnsupportedResult)
	}
	if _, ok := v.(*goja.Symbol); ok {
		return nil, fmt.Errorf("%w: symbol", ErrUnsupportedResult)
	}
	out := v.Export()
	if ab, ok := out.(goja.ArrayBuffer); ok {
		return ab.Bytes(), nil
	}
	return out, nil
}

// detach deep-copies the containers goja would otherwise wrap by reference.
func detach(v any) any {
	switch x := v.(type) {
	case []byte:
		return bytes.Clone(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, v2 := range x {
			out[k] = detach(v2)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, v2 := range x {
			out[i] = detach(v2)
		}
		return out
	default:
		return v
	}
}
