package config

import (
	"image/color"
	"strings"
	"testing"
	"time"
)

func TestNewLuaConfigParser(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	if p == nil {
		t.Error("NewLuaConfigParser returned nil")
	}
}

func TestLuaConfigParserParseBasic(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	content := `
letterbox.config = {
    virtual_width = 1280,
    virtual_height = 720,
    mask_color = "#101010",
    background_color = "white",
    window_width = 1600,
    window_height = 900,
    title = "Arcade",
    resizable = false,
    high_dpi = true,
    update_interval = 0.5,
    font_size = 18,
    show_stats = "yes",
}

letterbox.text = [[
Player 1
Score: 0
]]
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Resolution.Width != 1280 || cfg.Resolution.Height != 720 {
		t.Errorf("resolution = %gx%g, want 1280x720", cfg.Resolution.Width, cfg.Resolution.Height)
	}
	if cfg.Mask.Color != (color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}) {
		t.Errorf("mask color = %v, want #101010", cfg.Mask.Color)
	}
	if !cfg.Mask.Enabled {
		t.Error("mask should stay enabled by default")
	}
	if cfg.Display.BackgroundColor != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("background = %v, want white", cfg.Display.BackgroundColor)
	}
	if cfg.Window.Width != 1600 || cfg.Window.Height != 900 {
		t.Errorf("window = %dx%d, want 1600x900", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "Arcade" {
		t.Errorf("title = %q, want Arcade", cfg.Window.Title)
	}
	if cfg.Window.Resizable {
		t.Error("resizable should be false")
	}
	if !cfg.Window.HighDPI {
		t.Error("high_dpi should be true")
	}
	if cfg.Display.UpdateInterval != 500*time.Millisecond {
		t.Errorf("update_interval = %v, want 500ms", cfg.Display.UpdateInterval)
	}
	if cfg.Display.FontSize != 18 {
		t.Errorf("font_size = %v, want 18", cfg.Display.FontSize)
	}
	if !cfg.Display.ShowStats {
		t.Error("show_stats string \"yes\" should parse as true")
	}
	if len(cfg.Text.Template) != 2 || cfg.Text.Template[1] != "Score: 0" {
		t.Errorf("text = %q, want [Player 1, Score: 0]", cfg.Text.Template)
	}
}

func TestLuaConfigParserDefaults(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	cfg, err := p.Parse([]byte(`letterbox.config = {}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.Resolution != def.Resolution {
		t.Errorf("resolution = %+v, want %+v", cfg.Resolution, def.Resolution)
	}
	if cfg.Mask != def.Mask {
		t.Errorf("mask = %+v, want %+v", cfg.Mask, def.Mask)
	}
	if cfg.Text.Template != nil {
		t.Errorf("text = %q, want nil", cfg.Text.Template)
	}
}

func TestLuaConfigParserComputedValues(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	content := `
local base = 320
letterbox.config = {
    virtual_width = base * 4,
    virtual_height = base * 9 / 4,
}
`
	cfg, err := p.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Resolution.Width != 1280 || cfg.Resolution.Height != 720 {
		t.Errorf("resolution = %gx%g, want 1280x720", cfg.Resolution.Width, cfg.Resolution.Height)
	}
}

func TestLuaConfigParserReuse(t *testing.T) {
	p, err := NewLuaConfigParser()
	if err != nil {
		t.Fatalf("NewLuaConfigParser failed: %v", err)
	}
	defer p.Close()

	if _, err := p.Parse([]byte(`letterbox.config = { virtual_width = 100 }`)); err != nil {
		t.Fatalf("first Parse failed: %v", err)
	}
	cfg, err := p.Parse([]byte(`letterbox.config = { virtual_height = 100 }`))
	if err != nil {
		t.Fatalf("second Parse failed: %v", err)
	}
	if cfg.Resolution.Width != 960 {
		t.Errorf("width = %g, want default 960; state leaked between parses", cfg.Resolution.Width)
	}
}

func TestLuaConfigParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax error", `letterbox.config = {`, "compile"},
		{"runtime error", `error("boom")`, "execute"},
		{"bad mask color", `letterbox.config = { mask_color = "nope" }`, "mask_color"},
		{"bad background", `letterbox.config = { background_color = "#12" }`, "background_color"},
		{"letterbox replaced", `letterbox = 5`, "not a table"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLuaConfigParser()
			if err != nil {
				t.Fatalf("NewLuaConfigParser failed: %v", err)
			}
			defer p.Close()

			_, err = p.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}
