package main

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// gridStep is the spacing of the demo grid in virtual units.
const gridStep = 60

var (
	gridColor   = color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}
	borderColor = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
	markerColor = color.RGBA{R: 0xf4, G: 0x72, B: 0xb6, A: 0xff}
)

// demoCanvas draws a grid, a border on the virtual edges and a marker that
// orbits the center. Everything is in virtual units, so the border always
// touches the letterbox bars.
type demoCanvas struct {
	start time.Time
}

func newDemoCanvas() *demoCanvas {
	return &demoCanvas{start: time.Now()}
}

// Draw implements render.Node.
func (d *demoCanvas) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())

	for x := float32(gridStep); x < w; x += gridStep {
		vector.StrokeLine(dst, x, 0, x, h, 1, gridColor, false)
	}
	for y := float32(gridStep); y < h; y += gridStep {
		vector.StrokeLine(dst, 0, y, w, y, 1, gridColor, false)
	}
	vector.StrokeRect(dst, 1, 1, w-2, h-2, 2, borderColor, false)

	cx, cy := d.markerPosition(w, h, time.Since(d.start))
	vector.DrawFilledCircle(dst, cx, cy, 12, markerColor, true)
}

// markerPosition returns the marker center after elapsed time.
func (d *demoCanvas) markerPosition(w, h float32, elapsed time.Duration) (float32, float32) {
	angle := elapsed.Seconds() * math.Pi / 2
	r := float64(min(w, h)) / 3
	return w/2 + float32(r*math.Cos(angle)), h/2 + float32(r*math.Sin(angle))
}
