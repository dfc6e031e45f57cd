package aspect

import (
	"fmt"
	"image"
	"math"
)

// Default virtual resolution used when a configuration does not set one.
const (
	DefaultWidth  = 960.0
	DefaultHeight = 540.0
)

// Resolution is the fixed design resolution that content is authored against.
type Resolution struct {
	Width  float64
	Height float64
}

// DefaultResolution returns the 960x540 default virtual resolution.
func DefaultResolution() Resolution {
	return Resolution{Width: DefaultWidth, Height: DefaultHeight}
}

// Validate reports ErrInvalidResolution if either dimension is not a
// strictly positive finite number.
func (r Resolution) Validate() error {
	if !positiveFinite(r.Width) || !positiveFinite(r.Height) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidResolution, r.Width, r.Height)
	}
	return nil
}

// String returns the resolution as "WxH".
func (r Resolution) String() string {
	return fmt.Sprintf("%gx%g", r.Width, r.Height)
}

// Size is the live size of the display surface in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Validate reports ErrDegenerateSurface if either dimension is not a
// strictly positive finite number. A minimized window reports 0x0.
func (s Size) Validate() error {
	if !positiveFinite(s.Width) || !positiveFinite(s.Height) {
		return fmt.Errorf("%w: %vx%v", ErrDegenerateSurface, s.Width, s.Height)
	}
	return nil
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Margin is the offset of the content region in virtual units.
type Margin struct {
	Left float64
	Top  float64
}

// Side identifies one of the four letterbox bars.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// Sides lists every side in the order masks are stored in a Result.
var Sides = [4]Side{SideLeft, SideRight, SideTop, SideBottom}

// String returns the lowercase name of the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the bar sits on the horizontal axis (left or right).
func (s Side) Horizontal() bool {
	return s == SideLeft || s == SideRight
}

// Mask describes one letterbox bar in virtual units.
//
// Offset and Length are the raw computed values. On the constraining axis
// Length is zero or negative; use RenderLength when sizing a drawn rectangle.
type Mask struct {
	Side Side
	// Offset is the left offset for Left/Right bars and the top offset for
	// Top/Bottom bars, relative to the surface origin.
	Offset float64
	// Length is the bar thickness along its own axis.
	Length float64
	// Breadth is the span across the other axis: the full surface height for
	// Left/Right and the full surface width for Top/Bottom.
	Breadth float64
}

// RenderLength returns Length clamped to zero.
func (m Mask) RenderLength() float64 {
	if m.Length < 0 {
		return 0
	}
	return m.Length
}

// Visible reports whether the bar covers any area.
func (m Mask) Visible() bool {
	return m.RenderLength() > 0 && m.Breadth > 0
}

// Axis identifies the axis whose scale ratio limits the content size.
type Axis int

const (
	// AxisNone means the surface and the virtual resolution share an aspect ratio.
	AxisNone Axis = iota
	// AxisHorizontal means the width constrains; bars appear top and bottom.
	AxisHorizontal
	// AxisVertical means the height constrains; bars appear left and right.
	AxisVertical
)

// String returns the lowercase name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ToImage converts the rectangle to an image.Rectangle, rounding outward so
// that adjacent bars and content never leave a one-pixel seam.
func (r Rect) ToImage() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)),
		int(math.Ceil(r.Y+r.H)),
	)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
