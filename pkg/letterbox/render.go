//go:build !noebiten

package letterbox

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-letterbox/internal/render"
)

// runRenderLoop runs the Ebiten loop until the window closes or the
// instance context is cancelled.
func (c *letterboxImpl) runRenderLoop() {
	if err := c.game.Run(); err != nil && !errors.Is(err, render.ErrGameTerminated) {
		c.notifyError(categorize(CategoryRender, fmt.Errorf("render loop error: %w", err)))
	}
}
