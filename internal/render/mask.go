package render

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// MaskNode is one persistent letterbox bar.
type MaskNode struct {
	Side aspect.Side
	// Mask is the raw geometry in virtual units.
	Mask aspect.Mask
	// Rect is the visible bar in surface pixels.
	Rect aspect.Rect
}

// MaskLayer owns the four bars, one per side, and redraws them from the
// latest applied result.
type MaskLayer struct {
	mu      sync.RWMutex
	nodes   [4]MaskNode
	color   color.RGBA
	enabled bool
}

func newMaskLayer(enabled bool, clr color.RGBA) *MaskLayer {
	ml := &MaskLayer{color: clr, enabled: enabled}
	for i, side := range aspect.Sides {
		ml.nodes[i] = MaskNode{Side: side}
	}
	return ml
}

// Apply updates every bar from r.
func (ml *MaskLayer) Apply(r aspect.Result) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	for i := range ml.nodes {
		side := ml.nodes[i].Side
		ml.nodes[i].Mask = r.Mask(side)
		ml.nodes[i].Rect = r.MaskRect(side)
	}
}

// Node returns the bar for side.
func (ml *MaskLayer) Node(side aspect.Side) MaskNode {
	ml.mu.RLock()
	defer ml.mu.RUnlock()
	for _, n := range ml.nodes {
		if n.Side == side {
			return n
		}
	}
	return MaskNode{Side: side}
}

// Color returns the bar fill color.
func (ml *MaskLayer) Color() color.RGBA {
	ml.mu.RLock()
	defer ml.mu.RUnlock()
	return ml.color
}

// SetColor changes the bar fill color.
func (ml *MaskLayer) SetColor(clr color.RGBA) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.color = clr
}

// Enabled reports whether bars are drawn.
func (ml *MaskLayer) Enabled() bool {
	ml.mu.RLock()
	defer ml.mu.RUnlock()
	return ml.enabled
}

// SetEnabled turns bar drawing on or off.
func (ml *MaskLayer) SetEnabled(enabled bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	ml.enabled = enabled
}

// Draw fills the visible bars onto screen.
func (ml *MaskLayer) Draw(screen *ebiten.Image) {
	ml.mu.RLock()
	defer ml.mu.RUnlock()

	if !ml.enabled {
		return
	}
	for _, n := range ml.nodes {
		if n.Rect.Empty() {
			continue
		}
		vector.DrawFilledRect(screen,
			float32(n.Rect.X), float32(n.Rect.Y),
			float32(n.Rect.W), float32(n.Rect.H),
			ml.color, false)
	}
}
