package sandbox

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// LuaBinding is the only global the Lua sandbox adds to the allowed libraries.
const LuaBinding = "content"

const (
	defaultLuaTimeoutMs        = 2000
	defaultLuaMemoryLimitBytes = 8 << 20
)

// LuaLibs selects the standard libraries opened in the sandbox.
type LuaLibs struct {
	Base   bool `json:"base"`
	Table  bool `json:"table"`
	String bool `json:"string"`
	Math   bool `json:"math"`
}

// Lua evaluates Lua chunks in a fresh state per call. Code without a return
// statement is treated as an expression.
type Lua struct {
	TimeoutMs           int
	MemoryLimitBytes    int
	Libs                LuaLibs
	DeterministicRandom bool
}

// DefaultLua returns the sandbox used when no configuration is given.
func DefaultLua() Lua {
	return Lua{
		TimeoutMs:           defaultLuaTimeoutMs,
		MemoryLimitBytes:    defaultLuaMemoryLimitBytes,
		Libs:                LuaLibs{Base: true, Table: true, String: true, Math: true},
		DeterministicRandom: true,
	}
}

// Binding returns "content".
func (Lua) Binding() string { return LuaBinding }

// Eval runs code with input bound to the global content.
func (s Lua) Eval(ctx context.Context, code string, input any) (any, error) {
	L := s.newState(code)
	defer L.Close()

	if s.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.TimeoutMs)*time.Millisecond)
		defer cancel()
	}
	L.SetContext(ctx)
	L.SetGlobal(LuaBinding, toLValue(L, input))

	fn, err := L.LoadString(luaChunk(code))
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isTimeoutError(err) {
			if ctx.Err() == context.Canceled {
				return nil, context.Canceled
			}
			return nil, ErrTimeout
		}
		if strings.Contains(strings.ToLower(err.Error()), "registry overflow") {
			return nil, ErrMemoryLimit
		}
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	out := fromLValue(ret)
	if s.MemoryLimitBytes > 0 && estimateValueSize(out, 0) > s.MemoryLimitBytes {
		return nil, ErrMemoryLimit
	}
	return out, nil
}

func (s Lua) newState(code string) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  registryMaxFromMemory(s.MemoryLimitBytes),
		RegistryGrowStep: 0,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	if s.Libs.Base {
		openLib("base", lua.OpenBase)
		// No loading of files or foreign chunks from inside the sandbox.
		for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
			L.SetGlobal(name, lua.LNil)
		}
	}
	if s.Libs.String {
		openLib("string", lua.OpenString)
	}
	if s.Libs.Table {
		openLib("table", lua.OpenTable)
	}
	if s.Libs.Math {
		openLib("math", lua.OpenMath)
		if s.DeterministicRandom {
			installDeterministicRandom(L, deterministicSeed(code))
		}
	}
	return L
}

func luaChunk(code string) string {
	if hasReturnKeyword(code) {
		return code
	}
	return "return (\n" + code + "\n)"
}

// hasReturnKeyword reports whether code uses return as a keyword, ignoring
// strings and comments.
func hasReturnKeyword(code string) bool {
	for i := 0; i < len(code); {
		c := code[i]
		switch {
		case strings.HasPrefix(code[i:], "--"):
			i += 2
			if level, ok := longBracket(code[i:]); ok {
				i += skipLong(code[i:], level)
				continue
			}
			for i < len(code) && code[i] != '\n' {
				i++
			}
		case c == '"' || c == '\'':
			i++
			for i < len(code) && code[i] != c && code[i] != '\n' {
				if code[i] == '\\' {
					i++
				}
				i++
			}
			i++
		case c == '[':
			if level, ok := longBracket(code[i:]); ok {
				i += skipLong(code[i:], level)
				continue
			}
			i++
		case isNameStart(c):
			j := i + 1
			for j < len(code) && (isNameStart(code[j]) || ('0' <= code[j] && code[j] <= '9')) {
				j++
			}
			if code[i:j] == "return" {
				return true
			}
			i = j
		case '0' <= c && c <= '9':
			// Skip the whole numeral so 1e5 is not read as a name.
			for i < len(code) && (isNameStart(code[i]) || ('0' <= code[i] && code[i] <= '9') || code[i] == '.') {
				i++
			}
		default:
			i++
		}
	}
	return false
}

// longBracket reports the level of a long bracket "[==[" opening s.
func longBracket(s string) (int, bool) {
	if len(s) < 2 || s[0] != '[' {
		return 0, false
	}
	n := 1
	for n < len(s) && s[n] == '=' {
		n++
	}
	if n < len(s) && s[n] == '[' {
		return n - 1, true
	}
	return 0, false
}

// skipLong returns the length of the long string or comment opening s.
func skipLong(s string, level int) int {
	closing := "]" + strings.Repeat("=", level) + "]"
	if k := strings.Index(s[level+2:], closing); k >= 0 {
		return level + 2 + k + len(closing)
	}
	return len(s)
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func registryMaxFromMemory(memoryLimitBytes int) int {
	if memoryLimitBytes <= 0 {
		return 256
	}
	// Lower the registry ceiling when the memory limit is low.
	n := memoryLimitBytes / 64
	if n < 128 {
		n = 128
	}
	if n > 4096 {
		n = 4096
	}
	return n
}

func deterministicSeed(code string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(code))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

func installDeterministicRandom(L *lua.LState, seed int64) {
	mathTbl, ok := L.GetGlobal("math").(*lua.LTable)
	if !ok || mathTbl == nil {
		return
	}
	rng := rand.New(rand.NewSource(seed))
	mathTbl.RawSetString("random", L.NewFunction(func(L *lua.LState) int {
		switch L.GetTop() {
		case 0:
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		case 1:
			max := L.CheckInt(1)
			if max < 1 {
				L.ArgError(1, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(max) + 1))
			return 1
		default:
			min := L.CheckInt(1)
			max := L.CheckInt(2)
			if max < min {
				L.ArgError(2, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(max-min+1) + min))
			return 1
		}
	}))
	mathTbl.RawSetString("randomseed", L.NewFunction(func(L *lua.LState) int {
		return 0
	}))
}

func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if err == context.DeadlineExceeded {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadline") || strings.Contains(msg, "context canceled")
}

func estimateValueSize(v any, depth int) int {
	if depth > 32 {
		return 0
	}
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return len(x)
	case bool:
		return 1
	case float64:
		return 8
	case map[string]any:
		n := 0
		for k, v2 := range x {
			n += len(k) + estimateValueSize(v2, depth+1)
		}
		return n
	case []any:
		n := 0
		for _, v2 := range x {
			n += estimateValueSize(v2, depth+1)
		}
		return n
	default:
		return 16
	}
}
