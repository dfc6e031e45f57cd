//go:build noebiten

package letterbox

// runRenderLoop has no window to run in noebiten builds; the instance
// behaves as headless until stopped.
func (c *letterboxImpl) runRenderLoop() {
	c.mu.RLock()
	ctx := c.ctx
	c.mu.RUnlock()
	<-ctx.Done()
}
