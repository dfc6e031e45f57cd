// Package config provides configuration parsing for go-letterbox.
// This file implements the Lua configuration parser.

package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// Resource limits applied while a Lua configuration executes.
const (
	luaCPULimit    = 10_000_000
	luaMemoryLimit = 50 * 1024 * 1024
)

// LuaConfigParser parses Lua configuration files. The script assigns a
// letterbox.config table and optionally a letterbox.text string:
//
//	letterbox.config = {
//	    virtual_width = 960,
//	    virtual_height = 540,
//	    mask_color = "#030712",
//	}
//	letterbox.text = [[Score: ${SCORE:-0}]]
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser whose print output
// goes to stdout. A nil writer means os.Stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes a Lua configuration and extracts letterbox.config and
// letterbox.text.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    luaCPULimit,
			Memory: luaMemoryLimit,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	if _, err := rt.Call1(thread, rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal resets the letterbox global table before each parse.
func (p *LuaConfigParser) initGlobal() {
	root := rt.NewTable()
	root.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	root.Set(rt.StringValue("text"), rt.StringValue(""))
	p.runtime.GlobalEnv().Set(rt.StringValue("letterbox"), rt.TableValue(root))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	rootVal := p.runtime.GlobalEnv().Get(rt.StringValue("letterbox"))
	if rootVal == rt.NilValue {
		return &cfg, nil
	}

	root, ok := rootVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("letterbox is not a table")
	}

	if table, ok := root.Get(rt.StringValue("config")).TryTable(); ok {
		if err := p.extractConfigTable(&cfg, table); err != nil {
			return nil, err
		}
	}

	if text, ok := root.Get(rt.StringValue("text")).TryString(); ok && text != "" {
		cfg.Text.Template = strings.Split(strings.Trim(text, "\n"), "\n")
	}

	return &cfg, nil
}

func (p *LuaConfigParser) extractConfigTable(cfg *Config, table *rt.Table) error {
	// Numbers
	if val := getTableFloat(table, "virtual_width"); val != nil {
		cfg.Resolution.Width = *val
	}
	if val := getTableFloat(table, "virtual_height"); val != nil {
		cfg.Resolution.Height = *val
	}
	if val := getTableInt(table, "window_width"); val != nil {
		cfg.Window.Width = *val
	}
	if val := getTableInt(table, "window_height"); val != nil {
		cfg.Window.Height = *val
	}
	if val := getTableFloat(table, "update_interval"); val != nil {
		cfg.Display.UpdateInterval = time.Duration(*val * float64(time.Second))
	}
	if val := getTableFloat(table, "font_size"); val != nil {
		cfg.Display.FontSize = *val
	}

	// Booleans
	if val := getTableBool(table, "mask"); val != nil {
		cfg.Mask.Enabled = *val
	}
	if val := getTableBool(table, "resizable"); val != nil {
		cfg.Window.Resizable = *val
	}
	if val := getTableBool(table, "high_dpi"); val != nil {
		cfg.Window.HighDPI = *val
	}
	if val := getTableBool(table, "show_stats"); val != nil {
		cfg.Display.ShowStats = *val
	}

	// Strings
	if val := getTableString(table, "title"); val != nil {
		cfg.Window.Title = *val
	}
	if val := getTableString(table, "mask_color"); val != nil {
		c, err := parseColor(*val)
		if err != nil {
			return fmt.Errorf("invalid mask_color: %w", err)
		}
		cfg.Mask.Color = c
	}
	if val := getTableString(table, "background_color"); val != nil {
		c, err := parseColor(*val)
		if err != nil {
			return fmt.Errorf("invalid background_color: %w", err)
		}
		cfg.Display.BackgroundColor = c
	}

	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table. Strings such as
// "yes" and "false" are accepted. Returns nil if the key is absent.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a number from a Lua table as float64.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}

	return nil
}

// getTableInt retrieves a number from a Lua table as int, truncating floats.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}
