// Package config provides configuration data structures for go-letterbox.
// It defines the virtual resolution, mask, window and HUD settings, and
// parses them from Lua or legacy key-value configuration files.
package config

import (
	"image/color"
	"time"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// Config represents the complete go-letterbox configuration.
type Config struct {
	// Resolution is the virtual resolution content is authored against.
	// It is fixed for the lifetime of a running instance.
	Resolution ResolutionConfig
	// Mask contains the letterbox bar settings.
	Mask MaskConfig
	// Window contains window-related configuration options.
	Window WindowConfig
	// Display contains content root rendering settings.
	Display DisplayConfig
	// Text contains the HUD text template.
	Text TextConfig
}

// ResolutionConfig holds the virtual resolution.
type ResolutionConfig struct {
	// Width is the virtual width in virtual units.
	Width float64
	// Height is the virtual height in virtual units.
	Height float64
}

// Aspect converts the configured resolution to an aspect.Resolution.
func (rc ResolutionConfig) Aspect() aspect.Resolution {
	return aspect.Resolution{Width: rc.Width, Height: rc.Height}
}

// MaskConfig holds the letterbox bar settings.
type MaskConfig struct {
	// Enabled controls whether bars are drawn at all.
	Enabled bool
	// Color fills the bars.
	Color color.RGBA
}

// WindowConfig holds window-related configuration options.
type WindowConfig struct {
	// Width is the initial window width in pixels. Zero picks a size from
	// the screen and the virtual resolution.
	Width int
	// Height is the initial window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable allows the user to resize the window.
	Resizable bool
	// HighDPI renders at the monitor's device scale factor instead of
	// letting the backend upscale.
	HighDPI bool
}

// DisplayConfig holds content root rendering settings.
type DisplayConfig struct {
	// BackgroundColor fills the content root before children are drawn.
	BackgroundColor color.RGBA
	// UpdateInterval is the time between HUD refreshes.
	UpdateInterval time.Duration
	// FontSize is the HUD font size in virtual units.
	FontSize float64
	// ShowStats draws the current scale and surface size in the HUD.
	ShowStats bool
}

// TextConfig holds the HUD text template.
type TextConfig struct {
	// Template contains the HUD lines, drawn top to bottom.
	Template []string
}

// Validate checks that the configuration can be used to start an instance.
// It returns an error wrapping aspect.ErrInvalidResolution when the virtual
// resolution is unusable.
func (c *Config) Validate() error {
	return NewValidator().Validate(c).Error()
}
