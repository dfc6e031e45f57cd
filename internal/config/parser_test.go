package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

const legacySample = `# arcade settings
virtual_width 1280
virtual_height 720
mask_color #202020
mask yes
window_width 1920
window_height 1080
title Arcade ${ARCADE_PLAYER:-anon}
update_interval 2
font_size 20
show_stats
TEXT
Player $ARCADE_PLAYER

# not a comment inside TEXT

`

const luaSample = `
letterbox.config = {
    virtual_width = 640,
    virtual_height = 480,
}
letterbox.text = [[Hello]]
`

func TestLegacyParserParse(t *testing.T) {
	t.Setenv("ARCADE_PLAYER", "")

	cfg, err := NewLegacyParser().Parse([]byte(legacySample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Resolution.Width != 1280 || cfg.Resolution.Height != 720 {
		t.Errorf("resolution = %gx%g, want 1280x720", cfg.Resolution.Width, cfg.Resolution.Height)
	}
	if cfg.Mask.Color != (color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}) {
		t.Errorf("mask color = %v", cfg.Mask.Color)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("window = %dx%d, want 1920x1080", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Display.UpdateInterval != 2*time.Second {
		t.Errorf("update_interval = %v, want 2s", cfg.Display.UpdateInterval)
	}
	if !cfg.Display.ShowStats {
		t.Error("bare show_stats should enable stats")
	}
	// The legacy parser alone does not expand the environment.
	if cfg.Window.Title != "Arcade ${ARCADE_PLAYER:-anon}" {
		t.Errorf("title = %q", cfg.Window.Title)
	}
	want := []string{"Player $ARCADE_PLAYER", "", "# not a comment inside TEXT"}
	if strings.Join(cfg.Text.Template, "|") != strings.Join(want, "|") {
		t.Errorf("text = %q, want %q", cfg.Text.Template, want)
	}
}

func TestLegacyParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad width", "virtual_width wide", "line 1: invalid virtual_width"},
		{"bad height", "\nvirtual_height ?", "line 2: invalid virtual_height"},
		{"bad mask color", "mask_color #zzzzzz", "invalid mask_color"},
		{"bad window width", "window_width 1.5", "invalid window_width"},
		{"bad font size", "font_size big", "invalid font_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLegacyParser().Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLegacyParserIgnoresUnknownKeys(t *testing.T) {
	cfg, err := NewLegacyParser().Parse([]byte("future_option 42\nvirtual_width 800\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Resolution.Width != 800 {
		t.Errorf("width = %g, want 800", cfg.Resolution.Width)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"black", color.RGBA{A: 255}, false},
		{"GRAY950", DefaultMaskColor, false},
		{"#030712", DefaultMaskColor, false},
		{"ff0000", color.RGBA{R: 255, A: 255}, false},
		{"#ff000080", color.RGBA{R: 128, A: 128}, false},
		{"#00000000", color.RGBA{}, false},
		{"#fff", color.RGBA{}, true},
		{"", color.RGBA{}, true},
		{"purple-ish", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParserDetectsFormat(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.Parse([]byte(luaSample))
	if err != nil {
		t.Fatalf("Parse(lua) failed: %v", err)
	}
	if cfg.Resolution.Width != 640 {
		t.Errorf("lua width = %g, want 640", cfg.Resolution.Width)
	}

	cfg, err = p.Parse([]byte("virtual_width 320\n-- letterbox.config = {} in a comment\n"))
	if err != nil {
		t.Fatalf("Parse(legacy) failed: %v", err)
	}
	if cfg.Resolution.Width != 320 {
		t.Errorf("legacy width = %g, want 320", cfg.Resolution.Width)
	}
}

func TestParserExpandsEnv(t *testing.T) {
	t.Setenv("ARCADE_PLAYER", "ada")

	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.Parse([]byte(legacySample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Window.Title != "Arcade ada" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "Arcade ada")
	}
	if cfg.Text.Template[0] != "Player ada" {
		t.Errorf("text[0] = %q, want %q", cfg.Text.Template[0], "Player ada")
	}
}

func TestParserParseFile(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	path := filepath.Join(t.TempDir(), "letterbox.lua")
	if err := os.WriteFile(path, []byte(luaSample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if cfg.Resolution.Height != 480 {
		t.Errorf("height = %g, want 480", cfg.Resolution.Height)
	}

	_, err = p.ParseFile(filepath.Join(t.TempDir(), "missing.lua"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestParserParseFromFS(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	fsys := fstest.MapFS{
		"configs/arcade.conf": {Data: []byte("virtual_width 400\nvirtual_height 300\n")},
	}
	cfg, err := p.ParseFromFS(fsys, "configs/arcade.conf")
	if err != nil {
		t.Fatalf("ParseFromFS failed: %v", err)
	}
	if cfg.Resolution.Width != 400 || cfg.Resolution.Height != 300 {
		t.Errorf("resolution = %gx%g, want 400x300", cfg.Resolution.Width, cfg.Resolution.Height)
	}

	if _, err := p.ParseFromFS(fsys, "configs/missing.conf"); err == nil {
		t.Error("ParseFromFS(missing) should fail")
	}
}

func TestParserParseReader(t *testing.T) {
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.ParseReader(strings.NewReader(luaSample), FormatLua)
	if err != nil {
		t.Fatalf("ParseReader(lua) failed: %v", err)
	}
	if len(cfg.Text.Template) != 1 || cfg.Text.Template[0] != "Hello" {
		t.Errorf("text = %q, want [Hello]", cfg.Text.Template)
	}

	cfg, err = p.ParseReader(strings.NewReader("virtual_height 200"), FormatLegacy)
	if err != nil {
		t.Fatalf("ParseReader(legacy) failed: %v", err)
	}
	if cfg.Resolution.Height != 200 {
		t.Errorf("height = %g, want 200", cfg.Resolution.Height)
	}

	if _, err := p.ParseReader(strings.NewReader(""), "yaml"); err == nil {
		t.Error("ParseReader with unknown format should fail")
	}
}
