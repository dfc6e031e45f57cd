package aspect

import (
	"fmt"
	"math"
)

// Result is the letterbox geometry for one surface size.
type Result struct {
	// Resolution and Surface are the inputs the result was computed from.
	Resolution Resolution
	Surface    Size

	// Scale is the uniform content scale, min(ScaleX, ScaleY).
	Scale  float64
	ScaleX float64
	ScaleY float64

	// NormalizedWidth and NormalizedHeight are the surface extents expressed
	// in virtual units along each axis.
	NormalizedWidth  float64
	NormalizedHeight float64

	// Margin centers the content region inside the surface.
	Margin Margin

	// Masks holds one bar per side in the order of Sides.
	Masks [4]Mask
}

// Compute derives the uniform scale, content margin and mask bars that fit
// res inside surface without distortion.
//
// It returns ErrInvalidResolution or ErrDegenerateSurface (wrapped) when an
// input dimension is not strictly positive and finite.
func Compute(res Resolution, surface Size) (Result, error) {
	if err := res.Validate(); err != nil {
		return Result{}, err
	}
	if err := surface.Validate(); err != nil {
		return Result{}, err
	}

	scaleX := surface.Width / res.Width
	scaleY := surface.Height / res.Height
	minScale := math.Min(scaleX, scaleY)

	normWidth := res.Width * scaleX / scaleY
	normHeight := res.Height * scaleY / scaleX

	dx := normWidth - res.Width
	dy := normHeight - res.Height

	var margin Margin
	if scaleX > minScale {
		margin.Left = dx / 2
	}
	if scaleY > minScale {
		margin.Top = dy / 2
	}

	// Cross-axis spans in virtual units.
	spanH := surface.Height / minScale
	spanW := surface.Width / minScale

	r := Result{
		Resolution:       res,
		Surface:          surface,
		Scale:            minScale,
		ScaleX:           scaleX,
		ScaleY:           scaleY,
		NormalizedWidth:  normWidth,
		NormalizedHeight: normHeight,
		Margin:           margin,
		Masks: [4]Mask{
			{Side: SideLeft, Length: dx, Offset: -dx / 2, Breadth: spanH},
			{Side: SideRight, Length: dx, Offset: normWidth - dx/2, Breadth: spanH},
			{Side: SideTop, Length: dy, Offset: -dy / 2, Breadth: spanW},
			{Side: SideBottom, Length: dy, Offset: normHeight - dy/2, Breadth: spanW},
		},
	}
	return r, nil
}

// Mask returns the bar for side.
func (r Result) Mask(side Side) Mask {
	for _, m := range r.Masks {
		if m.Side == side {
			return m
		}
	}
	return Mask{Side: side}
}

// ConstrainingAxis reports which axis limits the content size.
func (r Result) ConstrainingAxis() Axis {
	switch {
	case r.ScaleX < r.ScaleY:
		return AxisHorizontal
	case r.ScaleY < r.ScaleX:
		return AxisVertical
	default:
		return AxisNone
	}
}

// ContentRect returns the content region in surface pixels.
func (r Result) ContentRect() Rect {
	return Rect{
		X: r.Margin.Left * r.Scale,
		Y: r.Margin.Top * r.Scale,
		W: r.Resolution.Width * r.Scale,
		H: r.Resolution.Height * r.Scale,
	}
}

// MaskRect returns the visible part of the bar for side in surface pixels.
// Bars extend half their length past the surface edge; the returned
// rectangle is clipped to the surface and is empty when the bar has no
// render length.
func (r Result) MaskRect(side Side) Rect {
	m := r.Mask(side)
	if !m.Visible() {
		return Rect{}
	}

	var rect Rect
	if side.Horizontal() {
		rect = Rect{X: m.Offset * r.Scale, W: m.RenderLength() * r.Scale, H: m.Breadth * r.Scale}
	} else {
		rect = Rect{Y: m.Offset * r.Scale, H: m.RenderLength() * r.Scale, W: m.Breadth * r.Scale}
	}
	return clip(rect, r.Surface)
}

// ToVirtual maps a surface pixel position to virtual units relative to the
// content origin. ok is false when the point falls outside the content region.
func (r Result) ToVirtual(px, py float64) (vx, vy float64, ok bool) {
	if r.Scale == 0 {
		return 0, 0, false
	}
	vx = px/r.Scale - r.Margin.Left
	vy = py/r.Scale - r.Margin.Top
	ok = vx >= 0 && vy >= 0 && vx < r.Resolution.Width && vy < r.Resolution.Height
	return vx, vy, ok
}

// ToSurface maps a position in virtual units to surface pixels.
func (r Result) ToSurface(vx, vy float64) (px, py float64) {
	return (vx + r.Margin.Left) * r.Scale, (vy + r.Margin.Top) * r.Scale
}

// FitWindow picks a window size for res on a screen of the given size. It
// uses the largest whole multiple of res that fits in fill (0 < fill <= 1)
// of the screen, and falls back to a fractional fit when even 1x is too big.
func FitWindow(res Resolution, screen Size, fill float64) (Size, error) {
	if fill <= 0 || fill > 1 || math.IsNaN(fill) {
		return Size{}, fmt.Errorf("fill must be in (0, 1], got %v", fill)
	}
	avail := Size{Width: screen.Width * fill, Height: screen.Height * fill}
	r, err := Compute(res, avail)
	if err != nil {
		return Size{}, err
	}

	k := math.Floor(r.Scale)
	if k < 1 {
		k = r.Scale
	}
	return Size{
		Width:  math.Floor(res.Width * k),
		Height: math.Floor(res.Height * k),
	}, nil
}

func clip(rect Rect, surface Size) Rect {
	x0 := math.Max(rect.X, 0)
	y0 := math.Max(rect.Y, 0)
	x1 := math.Min(rect.X+rect.W, surface.Width)
	y1 := math.Min(rect.Y+rect.H, surface.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
