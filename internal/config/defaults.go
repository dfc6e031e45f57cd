package config

import (
	"image/color"
	"time"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// Default values for configuration options.
const (
	// DefaultTitle is the default window title.
	DefaultTitle = "go-letterbox"
	// DefaultUpdateInterval is the default time between HUD refreshes.
	DefaultUpdateInterval = time.Second
	// DefaultFontSize is the default HUD font size in virtual units.
	DefaultFontSize = 14.0
)

// Default colors.
var (
	// DefaultMaskColor is tailwind gray-950.
	DefaultMaskColor = color.RGBA{R: 0x03, G: 0x07, B: 0x12, A: 0xff}
	// DefaultBackgroundColor is the content root fill.
	DefaultBackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// DefaultConfig returns a Config with a 960x540 virtual resolution,
// gray-950 bars and a resizable window.
func DefaultConfig() Config {
	return Config{
		Resolution: ResolutionConfig{
			Width:  aspect.DefaultWidth,
			Height: aspect.DefaultHeight,
		},
		Mask: MaskConfig{
			Enabled: true,
			Color:   DefaultMaskColor,
		},
		Window: WindowConfig{
			Title:     DefaultTitle,
			Resizable: true,
		},
		Display: DisplayConfig{
			BackgroundColor: DefaultBackgroundColor,
			UpdateInterval:  DefaultUpdateInterval,
			FontSize:        DefaultFontSize,
		},
	}
}
