// Package config provides configuration parsing for go-letterbox.
// This file implements the unified parser that auto-detects the configuration format.

package config

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
)

// Configuration format names accepted by ParseReader.
const (
	FormatLua    = "lua"
	FormatLegacy = "legacy"
)

// Parser provides a unified interface for parsing configuration files.
// It detects whether content uses the Lua format or the legacy key-value format.
type Parser struct {
	legacyParser *LegacyParser
	luaParser    *LuaConfigParser
}

// NewParser creates a new Parser that can handle both legacy and Lua configurations.
func NewParser() (*Parser, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Parser{
		legacyParser: NewLegacyParser(),
		luaParser:    luaParser,
	}, nil
}

// ParseFile reads and parses a configuration file, auto-detecting the format.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return p.Parse(content)
}

// Parse parses configuration content, auto-detecting the format.
// Environment references in the title and text lines are expanded.
func (p *Parser) Parse(content []byte) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if isLuaConfig(content) {
		cfg, err = p.luaParser.Parse(content)
	} else {
		cfg, err = p.legacyParser.Parse(content)
	}
	if err != nil {
		return nil, err
	}

	ExpandEnvConfig(cfg)
	return cfg, nil
}

// luaConfigPattern matches "letterbox.config =" at the start of a line.
var luaConfigPattern = regexp.MustCompile(`(?m)^\s*letterbox\.config\s*=`)

func isLuaConfig(content []byte) bool {
	return luaConfigPattern.Match(content)
}

// ParseFromFS reads and parses a configuration file from a filesystem such
// as an embed.FS.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}

	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader in the given format.
func (p *Parser) ParseReader(r io.Reader, format string) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg *Config
	switch format {
	case FormatLua:
		cfg, err = p.luaParser.Parse(content)
	case FormatLegacy:
		cfg, err = p.legacyParser.Parse(content)
	default:
		return nil, fmt.Errorf("unknown format: %s (expected %q or %q)", format, FormatLua, FormatLegacy)
	}
	if err != nil {
		return nil, err
	}

	ExpandEnvConfig(cfg)
	return cfg, nil
}

// Close releases resources associated with the parser.
func (p *Parser) Close() error {
	if p.luaParser != nil {
		return p.luaParser.Close()
	}
	return nil
}
