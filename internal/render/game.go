// Package render provides the Ebiten host for go-letterbox. The Game keeps a
// fixed virtual resolution centered in a resizable window: every window
// resize recomputes the letterbox geometry, scales the content root
// uniformly and redraws the four mask bars.
package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrResolutionChanged is returned by SetConfig when the new configuration
// asks for a different virtual resolution. The rest of the configuration is
// still applied.
var ErrResolutionChanged = errors.New("virtual resolution cannot change while running")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// hudTextColor is the HUD text color.
var hudTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Game implements ebiten.Game and hosts the letterboxed content root.
type Game struct {
	config       Config
	textRenderer TextRendererInterface
	root         *ContentRoot
	hud          *TextNode
	statsID      NodeID
	masks        *MaskLayer
	updater      Updater
	errorHandler ErrorHandler
	onResize     ResizeHandler
	onSkip       SkipHandler
	deviceScale  func() float64

	// Resize state. pending holds the latest unprocessed surface size;
	// lastSurface is the last size reported by Layout.
	pending     *aspect.Size
	lastSurface aspect.Size
	result      aspect.Result
	hasResult   bool
	resizes     uint64
	skipped     uint64
	computeTime time.Duration

	offscreen  *ebiten.Image
	lastUpdate time.Time
	mu         sync.RWMutex
	running    bool
	ctx        context.Context
}

// NewGame creates a new Game instance with the provided configuration.
func NewGame(config Config) *Game {
	return NewGameWithRenderer(config, NewTextRenderer())
}

// NewGameWithRenderer creates a new Game instance with a custom text renderer.
// This is useful for testing.
func NewGameWithRenderer(config Config, renderer TextRendererInterface) *Game {
	if config.FontSize > 0 {
		renderer.SetFontSize(config.FontSize)
	}

	g := &Game{
		config:       config,
		textRenderer: renderer,
		root:         newContentRoot(),
		hud:          NewTextNode(renderer),
		masks:        newMaskLayer(config.MaskEnabled, config.MaskColor),
		errorHandler: DefaultErrorHandler,
		deviceScale:  func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
		lastUpdate:   time.Now(),
	}
	g.root.Attach(g.hud)
	if config.ShowStats {
		g.statsID = g.root.Attach(NewStatsNode(renderer, g.Result, hudTextColor))
	}
	return g
}

// ContentRoot returns the root that downstream content attaches to.
func (g *Game) ContentRoot() *ContentRoot {
	return g.root
}

// Masks returns the letterbox bar layer.
func (g *Game) Masks() *MaskLayer {
	return g.masks
}

// HUD returns the text node that shows the configured template lines.
func (g *Game) HUD() *TextNode {
	return g.hud
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetUpdater sets the component refreshed every UpdateInterval.
func (g *Game) SetUpdater(u Updater) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updater = u
}

// SetOnResize registers a callback for every applied result.
func (g *Game) SetOnResize(handler ResizeHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onResize = handler
}

// SetOnSkip registers a callback for surface sizes skipped as degenerate.
func (g *Game) SetOnSkip(handler SkipHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onSkip = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetLines sets the HUD text lines.
func (g *Game) SetLines(lines []TextLine) {
	g.hud.SetLines(lines)
}

// SetTemplate lays out template strings as HUD lines from the top-left corner.
func (g *Game) SetTemplate(template []string) {
	lh := g.textRenderer.LineHeight()
	g.hud.SetLines(LayoutLines(template, lh/2, lh/2, lh, hudTextColor))
}

// Resize records a new surface size. Only the latest size is kept until the
// next Update processes it. Repeated reports of the current size are ignored.
func (g *Game) Resize(width, height float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	size := aspect.Size{Width: width, Height: height}
	if size == g.lastSurface {
		return
	}
	g.lastSurface = size
	g.pending = &size
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			g.mu.Unlock()
			return ErrGameTerminated
		default:
		}
	}

	notify := g.processResizeLocked()

	var updateErr error
	if g.updater != nil && time.Since(g.lastUpdate) >= g.config.UpdateInterval {
		updateErr = g.updater.Update()
		g.lastUpdate = time.Now()
	}
	errorHandler := g.errorHandler
	g.mu.Unlock()

	// Callbacks run without the lock so they may query the game.
	if notify != nil {
		notify()
	}
	if updateErr != nil && errorHandler != nil {
		errorHandler(updateErr)
	}
	return nil
}

// processResizeLocked applies the pending surface size, if any, and returns
// the callback to run once the lock is released.
func (g *Game) processResizeLocked() func() {
	if g.pending == nil {
		return nil
	}
	size := *g.pending
	g.pending = nil

	start := time.Now()
	r, err := aspect.Compute(g.config.Resolution, size)
	g.computeTime = time.Since(start)
	if err != nil {
		g.skipped++
		if errors.Is(err, aspect.ErrDegenerateSurface) {
			if h := g.onSkip; h != nil {
				return func() { h(size, err) }
			}
			return nil
		}
		if h := g.errorHandler; h != nil {
			return func() { h(fmt.Errorf("resize to %s: %w", size, err)) }
		}
		return nil
	}

	g.result = r
	g.hasResult = true
	g.resizes++
	g.masks.Apply(r)

	if h := g.onResize; h != nil {
		return func() { h(r) }
	}
	return nil
}

// Draw implements ebiten.Game.Draw.
// It renders the content root scaled and centered, then the mask bars.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	r, ok := g.result, g.hasResult
	bg := g.config.BackgroundColor
	g.mu.RUnlock()

	if !ok {
		return
	}

	// Nodes may read game state, so they draw without the lock held.
	if g.offscreen == nil {
		w, h := int(math.Ceil(r.Resolution.Width)), int(math.Ceil(r.Resolution.Height))
		g.offscreen = ebiten.NewImage(w, h)
	}
	g.offscreen.Fill(bg)
	g.root.draw(g.offscreen)

	content := r.ContentRect()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Scale, r.Scale)
	op.GeoM.Translate(content.X, content.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.offscreen, op)

	g.masks.Draw(screen)
}

// Layout implements ebiten.Game.Layout. The outside size is the surface
// size; the game draws at that size and does its own scaling, so the
// returned screen size equals the surface in device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)

	g.mu.RLock()
	highDPI := g.config.HighDPI
	g.mu.RUnlock()
	if highDPI {
		s := g.deviceScale()
		w, h = math.Ceil(w*s), math.Ceil(h*s)
	}

	g.Resize(w, h)

	// Ebiten requires a positive screen size even while minimized.
	return max(int(w), 1), max(int(h), 1)
}

// Result returns the last applied result. ok is false until the first
// valid surface size has been processed.
func (g *Game) Result() (aspect.Result, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.result, g.hasResult
}

// Stats returns how many resizes were applied and how many were skipped.
func (g *Game) Stats() (applied, skipped uint64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resizes, g.skipped
}

// ComputeTime returns how long the last geometry computation took.
func (g *Game) ComputeTime() time.Duration {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.computeTime
}

// SetMaskColor changes the letterbox bar color.
func (g *Game) SetMaskColor(clr color.RGBA) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.MaskColor = clr
	g.masks.SetColor(clr)
}

// SetBackground changes the content root background color.
func (g *Game) SetBackground(clr color.RGBA) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config.BackgroundColor = clr
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the game configuration in-place for hot reload. The
// virtual resolution is fixed at creation: a different resolution is
// ignored and ErrResolutionChanged is returned after the rest is applied.
func (g *Game) SetConfig(config Config) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var err error
	if config.Resolution != g.config.Resolution {
		err = fmt.Errorf("%w: have %s, got %s", ErrResolutionChanged, g.config.Resolution, config.Resolution)
		config.Resolution = g.config.Resolution
	}

	if g.running && config.Title != g.config.Title {
		ebiten.SetWindowTitle(config.Title)
	}
	g.masks.SetColor(config.MaskColor)
	g.masks.SetEnabled(config.MaskEnabled)
	if config.FontSize > 0 && config.FontSize != g.config.FontSize {
		g.textRenderer.SetFontSize(config.FontSize)
	}
	if config.ShowStats != g.config.ShowStats {
		if config.ShowStats {
			g.statsID = g.root.Attach(NewStatsNode(g.textRenderer, g.Result, hudTextColor))
		} else {
			g.root.Detach(g.statsID)
			g.statsID = 0
		}
	}
	g.config = config
	return err
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	if err := g.config.Validate(); err != nil {
		return fmt.Errorf("invalid render config: %w", err)
	}

	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	if g.config.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
