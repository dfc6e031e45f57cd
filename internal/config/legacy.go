// Package config provides configuration parsing for go-letterbox.
// This file implements the legacy key-value parser.

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// LegacyParser parses key-value configuration files. Each line holds
// "key value"; lines starting with # are comments; everything after a line
// reading TEXT is the HUD template:
//
//	virtual_width 960
//	virtual_height 540
//	mask_color 030712
//	TEXT
//	Hello
type LegacyParser struct{}

// NewLegacyParser creates a new LegacyParser instance.
func NewLegacyParser() *LegacyParser {
	return &LegacyParser{}
}

// Parse parses a legacy configuration from content bytes.
func (p *LegacyParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(bytes.NewReader(content))

	var inTextSection bool
	var textLines []string
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if inTextSection {
			textLines = append(textLines, line)
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if trimmed == "TEXT" {
			inTextSection = true
			continue
		}

		if err := p.parseDirective(&cfg, trimmed, lineNum); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}

	// Trailing blank lines carry no HUD content.
	for len(textLines) > 0 && strings.TrimSpace(textLines[len(textLines)-1]) == "" {
		textLines = textLines[:len(textLines)-1]
	}
	if len(textLines) > 0 {
		cfg.Text.Template = textLines
	}
	return &cfg, nil
}

// parseDirective parses a single "key value" line.
func (p *LegacyParser) parseDirective(cfg *Config, line string, lineNum int) error {
	key, value, _ := strings.Cut(line, " ")
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	switch key {
	case "virtual_width":
		w, err := parseFloat(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid virtual_width: %w", lineNum, err)
		}
		cfg.Resolution.Width = w
	case "virtual_height":
		h, err := parseFloat(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid virtual_height: %w", lineNum, err)
		}
		cfg.Resolution.Height = h

	case "mask":
		cfg.Mask.Enabled = parseBool(value)
	case "mask_color":
		c, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid mask_color: %w", lineNum, err)
		}
		cfg.Mask.Color = c

	case "window_width":
		w, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid window_width: %w", lineNum, err)
		}
		cfg.Window.Width = w
	case "window_height":
		h, err := parseInt(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid window_height: %w", lineNum, err)
		}
		cfg.Window.Height = h
	case "title":
		cfg.Window.Title = value
	case "resizable":
		cfg.Window.Resizable = parseBool(value)
	case "high_dpi":
		cfg.Window.HighDPI = parseBool(value)

	case "background_color":
		c, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid background_color: %w", lineNum, err)
		}
		cfg.Display.BackgroundColor = c
	case "update_interval":
		interval, err := parseFloat(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid update_interval: %w", lineNum, err)
		}
		cfg.Display.UpdateInterval = time.Duration(interval * float64(time.Second))
	case "font_size":
		size, err := parseFloat(value)
		if err != nil {
			return fmt.Errorf("line %d: invalid font_size: %w", lineNum, err)
		}
		cfg.Display.FontSize = size
	case "show_stats":
		cfg.Display.ShowStats = parseBool(value)

	default:
		// Unknown keys are ignored so newer files still load.
	}

	return nil
}

// parseBool parses a boolean value. Accepts: yes, true, 1, and a bare key.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "":
		return true
	default:
		return false
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// colorNames maps common color names to RGBA values.
var colorNames = map[string]color.RGBA{
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"red":     {R: 255, G: 0, B: 0, A: 255},
	"green":   {R: 0, G: 255, B: 0, A: 255},
	"blue":    {R: 0, G: 0, B: 255, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"gray950": DefaultMaskColor,
}

// parseColor parses a color name or a hex value in RRGGBB or RRGGBBAA form,
// with or without a leading #.
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if c, ok := colorNames[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}

	// Hex alpha is straight; color.RGBA is premultiplied.
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}
