package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/transform"
)

// parse implements parse(...props): read JSON and descend by each key. As
// with JSON.parse, the last of several duplicate keys wins.
func (s *set) parse(_ context.Context, _ *transform.Context, in content.Value, props []string) (content.Value, error) {
	text := in.String()
	if !gjson.Valid(text) {
		return content.Value{}, fmt.Errorf("%w: invalid document", transform.ErrMalformedJSON)
	}
	res := gjson.Parse(text)
	for i, p := range props {
		next, ok := child(res, p)
		if !ok {
			return content.Value{}, fmt.Errorf("%w: missing property %q", transform.ErrMalformedJSON, strings.Join(props[:i+1], "."))
		}
		res = next
	}
	return content.FromAny(res.Value()), nil
}

// child returns the member key of an object or the element at index key of
// an array.
func child(res gjson.Result, key string) (gjson.Result, bool) {
	switch {
	case res.IsObject():
		var (
			out   gjson.Result
			found bool
		)
		res.ForEach(func(k, v gjson.Result) bool {
			if k.String() == key {
				out, found = v, true
			}
			return true
		})
		return out, found
	case res.IsArray():
		i, ok := arrayIndex(key)
		if !ok {
			return gjson.Result{}, false
		}
		arr := res.Array()
		if i >= len(arr) {
			return gjson.Result{}, false
		}
		return arr[i], true
	default:
		return gjson.Result{}, false
	}
}

// arrayIndex accepts only canonical non-negative integers, so "01" and "+1"
// are not indexes.
func arrayIndex(key string) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || strconv.Itoa(i) != key {
		return 0, false
	}
	return i, true
}

// yaml implements yaml(...props), the YAML counterpart of parse.
func (s *set) yaml(_ context.Context, _ *transform.Context, in content.Value, props []string) (content.Value, error) {
	var doc any
	if err := yaml.Unmarshal(in.Raw(), &doc); err != nil {
		return content.Value{}, fmt.Errorf("%w: %v", transform.ErrMalformedYAML, err)
	}
	cur := content.JSON(doc).Interface()
	for i, p := range props {
		next, ok := index(cur, p)
		if !ok {
			return content.Value{}, fmt.Errorf("%w: missing property %q", transform.ErrMalformedYAML, strings.Join(props[:i+1], "."))
		}
		cur = next
	}
	return content.FromAny(cur), nil
}

func index(v any, key string) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		out, ok := x[key]
		return out, ok
	case []any:
		i, ok := arrayIndex(key)
		if !ok || i >= len(x) {
			return nil, false
		}
		return x[i], true
	default:
		return nil, false
	}
}
