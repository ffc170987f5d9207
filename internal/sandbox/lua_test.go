package sandbox

import (
	"context"
	"errors"
	"testing"
)

func TestLuaEvalExpression(t *testing.T) {
	got, err := DefaultLua().Eval(context.Background(), "tonumber(content) + 321", "123")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != float64(444) {
		t.Fatalf("expected 444, got %#v", got)
	}
}

func TestLuaEvalReturnStatement(t *testing.T) {
	got, err := DefaultLua().Eval(context.Background(), "local s = content:upper()\nreturn s", "abc")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != "ABC" {
		t.Fatalf("expected ABC, got %#v", got)
	}
}

func TestLuaEvalTable(t *testing.T) {
	got, err := DefaultLua().Eval(context.Background(), "{ content.a, content.b }", map[string]any{"a": "x", "b": float64(2)})
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	arr, ok := got.([]any)
	if !ok || len(arr) != 2 || arr[0] != "x" || arr[1] != float64(2) {
		t.Fatalf("unexpected table conversion: %#v", got)
	}
}

func TestLuaSandboxTimeout(t *testing.T) {
	s := DefaultLua()
	s.TimeoutMs = 10
	_, err := s.Eval(context.Background(), "while true do end return 1", "")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestLuaSandboxMemoryLimit(t *testing.T) {
	s := DefaultLua()
	s.MemoryLimitBytes = 64
	_, err := s.Eval(context.Background(), "string.rep('a', 1024)", "")
	if !errors.Is(err, ErrMemoryLimit) {
		t.Fatalf("expected memory limit, got %v", err)
	}
}

func TestLuaSandboxLibAllowlist(t *testing.T) {
	s := DefaultLua()
	s.Libs.String = false
	if _, err := s.Eval(context.Background(), "string.lower('A')", ""); err == nil {
		t.Fatalf("expected error with string lib disabled")
	}
	if _, err := DefaultLua().Eval(context.Background(), "dofile('/etc/passwd')", ""); err == nil {
		t.Fatalf("expected dofile to be unavailable")
	}
}

func TestLuaSandboxDeterministicRandom(t *testing.T) {
	code := "math.random(1, 1000000)"
	r1, err := DefaultLua().Eval(context.Background(), code, "")
	if err != nil {
		t.Fatalf("run1: %v", err)
	}
	r2, err := DefaultLua().Eval(context.Background(), code, "")
	if err != nil {
		t.Fatalf("run2: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("expected deterministic random, got %v and %v", r1, r2)
	}
}

func TestEvaluatorBindings(t *testing.T) {
	for _, tc := range []struct {
		e    Evaluator
		want string
	}{{JS{}, "$0"}, {DefaultLua(), "content"}} {
		if got := tc.e.Binding(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestLuaReturnInsideStringIsExpression(t *testing.T) {
	got, err := DefaultLua().Eval(context.Background(), `content:gsub("return", "x")`, "return me")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != "x me" {
		t.Fatalf("expected %q, got %#v", "x me", got)
	}
}

func TestLuaExpressionWithTrailingComment(t *testing.T) {
	got, err := DefaultLua().Eval(context.Background(), "content:upper() -- return later", "abc")
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != "ABC" {
		t.Fatalf("expected ABC, got %#v", got)
	}
}

func TestHasReturnKeyword(t *testing.T) {
	cases := map[string]bool{
		"return 1":                    true,
		"local x = 1\nreturn x":       true,
		"if a then return b end":      true,
		`"return"`:                    false,
		`'it\'s return'`:              false,
		"[[return]]":                  false,
		"[==[ ]] return ]==]":         false,
		"x -- return":                 false,
		"--[[ return ]] x":            false,
		"returned":                    false,
		"_return":                     false,
		"t.returns":                   false,
		"1e5":                         false,
		"--[[ note ]] return content": true,
		`content:gsub("return", "x")`: false,
	}
	for code, want := range cases {
		if got := hasReturnKeyword(code); got != want {
			t.Fatalf("%q: expected %v, got %v", code, want, got)
		}
	}
}
