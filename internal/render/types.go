package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// Config holds the rendering configuration options.
type Config struct {
	// Resolution is the virtual resolution. It cannot change while the game runs.
	Resolution aspect.Resolution
	// Width is the initial window width in pixels.
	Width int
	// Height is the initial window height in pixels.
	Height int
	// Title is the window title.
	Title string
	// Resizable allows the user to resize the window.
	Resizable bool
	// HighDPI lays the screen out in device pixels.
	HighDPI bool
	// MaskEnabled controls whether the letterbox bars are drawn.
	MaskEnabled bool
	// MaskColor fills the letterbox bars.
	MaskColor color.RGBA
	// BackgroundColor fills the content root before its children draw.
	BackgroundColor color.RGBA
	// UpdateInterval is the time between Updater calls.
	UpdateInterval time.Duration
	// FontSize is the HUD font size in virtual units.
	FontSize float64
	// ShowStats attaches a StatsNode to the content root.
	ShowStats bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	res := aspect.DefaultResolution()
	return Config{
		Resolution:      res,
		Width:           int(res.Width),
		Height:          int(res.Height),
		Title:           "go-letterbox",
		Resizable:       true,
		MaskEnabled:     true,
		MaskColor:       color.RGBA{R: 0x03, G: 0x07, B: 0x12, A: 0xff},
		BackgroundColor: color.RGBA{A: 255},
		UpdateInterval:  time.Second,
		FontSize:        defaultFontSize,
	}
}

// Validate checks if the Config has valid values.
func (c Config) Validate() error {
	if err := c.Resolution.Validate(); err != nil {
		return err
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", c.Height)
	}
	return nil
}

// TextLine represents a line of HUD text in virtual units.
type TextLine struct {
	// Text is the string content that will be rendered.
	Text string
	// X is the horizontal position of the text's origin.
	X float64
	// Y is the vertical position of the text's top edge.
	Y float64
	// Color is the text color.
	Color color.RGBA
}

// Updater is refreshed at Config.UpdateInterval from the game loop.
type Updater interface {
	Update() error
}

// ResizeHandler receives every result the game applies.
type ResizeHandler func(r aspect.Result)

// SkipHandler receives surface sizes that were rejected as degenerate.
type SkipHandler func(surface aspect.Size, err error)
