// Package config loads transform settings from a CUE file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/flarebyte/inline-transforms/internal/builtin"
	"github.com/flarebyte/inline-transforms/internal/logging"
	"github.com/flarebyte/inline-transforms/internal/sandbox"
)

//go:embed schema.cue
var schemaSource string

// Config holds every setting a run can carry.
type Config struct {
	Log     Log
	CSS     CSS
	Eval    Eval
	Lua     Lua
	DataURL DataURL
}

// Log selects the logger level and format.
type Log struct {
	Level string
	JSON  bool
}

// CSS configures cssmin.
type CSS struct {
	Precision int
	KeepCSS2  bool
}

// Eval configures the JS sandbox behind eval.
type Eval struct {
	TimeoutMs int
}

// Lua configures the Lua sandbox behind lua.
type Lua struct {
	TimeoutMs           int
	MemoryLimitBytes    int
	DeterministicRandom bool
	Libs                sandbox.LuaLibs
}

// DataURL configures dataurl.
type DataURL struct {
	DefaultType string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	lua := sandbox.DefaultLua()
	return Config{
		Log:  Log{Level: "warn"},
		Eval: Eval{TimeoutMs: 2000},
		Lua: Lua{
			TimeoutMs:           lua.TimeoutMs,
			MemoryLimitBytes:    lua.MemoryLimitBytes,
			DeterministicRandom: lua.DeterministicRandom,
			Libs:                lua.Libs,
		},
		DataURL: DataURL{DefaultType: builtin.DefaultMIMEType},
	}
}

// Load reads a .cue file and overlays it on Default.
func Load(path string) (Config, error) {
	if filepath.Ext(path) != ".cue" {
		return Config{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse validates CUE source against the config schema and overlays the
// fields it sets on Default.
func Parse(data []byte) (Config, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid schema: %v", err)
	}
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	u := schema.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}

	cfg := Default()
	fields := []struct {
		path string
		dst  any
	}{
		{"log.level", &cfg.Log.Level},
		{"log.json", &cfg.Log.JSON},
		{"css.precision", &cfg.CSS.Precision},
		{"css.keepCSS2", &cfg.CSS.KeepCSS2},
		{"eval.timeoutMs", &cfg.Eval.TimeoutMs},
		{"lua.timeoutMs", &cfg.Lua.TimeoutMs},
		{"lua.memoryLimitBytes", &cfg.Lua.MemoryLimitBytes},
		{"lua.deterministicRandom", &cfg.Lua.DeterministicRandom},
		{"lua.libs.base", &cfg.Lua.Libs.Base},
		{"lua.libs.table", &cfg.Lua.Libs.Table},
		{"lua.libs.string", &cfg.Lua.Libs.String},
		{"lua.libs.math", &cfg.Lua.Libs.Math},
		{"dataurl.defaultType", &cfg.DataURL.DefaultType},
	}
	for _, f := range fields {
		fv := u.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			continue
		}
		if err := fv.Decode(f.dst); err != nil {
			return Config{}, fmt.Errorf("invalid value for %s: %v", f.path, err)
		}
	}
	return cfg, nil
}

// Options builds the built-in transform options.
func (c Config) Options() builtin.Options {
	return builtin.Options{
		CSS:  builtin.CSSOptions{Precision: c.CSS.Precision, KeepCSS2: c.CSS.KeepCSS2},
		Eval: sandbox.JS{Timeout: time.Duration(c.Eval.TimeoutMs) * time.Millisecond},
		Lua: sandbox.Lua{
			TimeoutMs:           c.Lua.TimeoutMs,
			MemoryLimitBytes:    c.Lua.MemoryLimitBytes,
			Libs:                c.Lua.Libs,
			DeterministicRandom: c.Lua.DeterministicRandom,
		},
		DefaultMIMEType: c.DataURL.DefaultType,
	}
}

// Logging returns the logger options.
func (c Config) Logging() logging.Options {
	return logging.Options{Level: c.Log.Level, JSON: c.Log.JSON}
}
