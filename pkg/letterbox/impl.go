package letterbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-letterbox/internal/config"
	"github.com/opd-ai/go-letterbox/internal/render"
	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// defaultScreenFill is the share of the screen an unsized window may cover.
const defaultScreenFill = 0.8

// letterboxImpl is the private implementation of the Letterbox interface.
type letterboxImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	watchPath    string
	configLoader func() (*config.Config, error)

	// Components
	game    *render.Game
	metrics *Metrics
	logger  Logger

	// State
	running   atomic.Bool
	startTime time.Time
	lastError atomic.Value

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	// Synchronization
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Letterbox = (*letterboxImpl)(nil)

func newLetterbox(cfg *config.Config, opts Options, source, watchPath string, loader func() (*config.Config, error)) *letterboxImpl {
	c := &letterboxImpl{
		cfg:          cfg,
		opts:         opts,
		configSource: source,
		watchPath:    watchPath,
		configLoader: loader,
		metrics:      opts.Metrics,
		logger:       opts.Logger,
	}
	if c.metrics == nil {
		c.metrics = DefaultMetrics()
	}
	if c.logger == nil {
		c.logger = NopLogger()
	}

	w, h := c.initialWindowSize(cfg)
	c.game = render.NewGame(c.renderConfig(cfg, w, h))
	c.game.SetTemplate(cfg.Text.Template)
	c.game.SetOnResize(c.onResized)
	c.game.SetOnSkip(c.onSkipped)
	c.game.SetErrorHandler(func(err error) {
		c.notifyError(categorize(CategoryResize, err))
	})
	return c
}

// renderConfig maps the file configuration onto the host configuration.
func (c *letterboxImpl) renderConfig(cfg *config.Config, width, height int) render.Config {
	title := cfg.Window.Title
	if c.opts.WindowTitle != "" {
		title = c.opts.WindowTitle
	}
	return render.Config{
		Resolution:      cfg.Resolution.Aspect(),
		Width:           width,
		Height:          height,
		Title:           title,
		Resizable:       cfg.Window.Resizable,
		HighDPI:         cfg.Window.HighDPI,
		MaskEnabled:     cfg.Mask.Enabled,
		MaskColor:       cfg.Mask.Color,
		BackgroundColor: cfg.Display.BackgroundColor,
		UpdateInterval:  cfg.Display.UpdateInterval,
		FontSize:        cfg.Display.FontSize,
		ShowStats:       cfg.Display.ShowStats,
	}
}

// initialWindowSize returns the configured window size or, when unset,
// the largest whole multiple of the virtual resolution that fits the screen.
func (c *letterboxImpl) initialWindowSize(cfg *config.Config) (int, int) {
	if cfg.Window.Width > 0 && cfg.Window.Height > 0 {
		return cfg.Window.Width, cfg.Window.Height
	}
	res := cfg.Resolution.Aspect()
	fallback := func() (int, int) { return int(res.Width), int(res.Height) }
	if c.opts.Headless {
		return fallback()
	}

	// Panels and docks are excluded when the window manager reports them.
	screen, err := render.WorkArea()
	if err != nil {
		c.logger.Debug("screen size unavailable", "error", err)
		return fallback()
	}
	fill := c.opts.ScreenFill
	if fill <= 0 || fill > 1 {
		fill = defaultScreenFill
	}
	size, err := aspect.FitWindow(res, screen, fill)
	if err != nil || size.Width < 1 || size.Height < 1 {
		return fallback()
	}
	return int(size.Width), int(size.Height)
}

// Start begins the render loop.
func (c *letterboxImpl) Start() error {
	c.mu.Lock()

	if c.running.Load() {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.ctx, c.cancel = ctx, cancel

	if c.opts.WatchConfig && c.watchPath != "" {
		cw, err := newConfigWatcher(c.watchPath, c.opts.WatchDebounce, c.ReloadConfig, func(err error) {
			c.notifyError(categorize(CategoryWatcher, err))
		})
		if err != nil {
			cancel()
			c.mu.Unlock()
			return categorize(CategoryWatcher, fmt.Errorf("watch config: %w", err))
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			cw.run(ctx)
		}()
	}

	if !c.opts.Headless {
		c.game.SetContext(ctx)
	}

	c.running.Store(true)
	c.startTime = time.Now()
	c.metrics.IncrementStarts()
	c.metrics.SetRunning(true)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.running.Store(false)
		defer c.metrics.SetRunning(false)

		if c.opts.Headless {
			<-ctx.Done()
		} else {
			c.runRenderLoop()
			// Closing the window ends the loop without Stop; release the
			// watcher too.
			cancel()
		}

		c.emitEvent(Event{Type: EventStopped, Message: "instance stopped"})
	}()

	c.mu.Unlock()

	c.logger.Info("letterbox started",
		"source", c.configSource,
		"resolution", c.game.Config().Resolution.String(),
		"headless", c.opts.Headless)
	c.emitEvent(Event{Type: EventStarted, Message: "instance started"})
	return nil
}

// Stop gracefully shuts down the instance.
func (c *letterboxImpl) Stop() error {
	if !c.running.Load() {
		return nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	timeout := c.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		c.metrics.IncrementStops()
		c.logger.Info("letterbox stopped")
		return nil
	case <-time.After(timeout):
		err := categorize(CategoryLifecycle, fmt.Errorf("shutdown timeout after %v: some goroutines did not stop", timeout))
		c.notifyError(err)
		return err
	}
}

// ReloadConfig reloads the configuration in-place without stopping.
func (c *letterboxImpl) ReloadConfig() error {
	if !c.running.Load() {
		return ErrNotRunning
	}

	newCfg, warnings, err := loadValidated(c.configLoader)
	if err != nil {
		wrapped := categorize(CategoryConfig, fmt.Errorf("config reload failed: %w", err))
		c.notifyError(wrapped)
		return wrapped
	}
	for _, w := range warnings {
		c.logger.Warn("configuration warning", "field", w.Field, "message", w.Message)
	}

	current := c.game.Config()
	message := "configuration reloaded in-place"
	if err := c.game.SetConfig(c.renderConfig(newCfg, current.Width, current.Height)); err != nil {
		if !errors.Is(err, render.ErrResolutionChanged) {
			wrapped := categorize(CategoryConfig, fmt.Errorf("apply config: %w", err))
			c.notifyError(wrapped)
			return wrapped
		}
		c.logger.Warn("virtual resolution change ignored",
			"current", current.Resolution.String(),
			"requested", newCfg.Resolution.Aspect().String())
		message = "configuration reloaded in-place; virtual resolution change ignored"
		newCfg.Resolution = config.ResolutionConfig{
			Width:  current.Resolution.Width,
			Height: current.Resolution.Height,
		}
	}
	c.game.SetTemplate(newCfg.Text.Template)

	c.mu.Lock()
	c.cfg = newCfg
	c.mu.Unlock()

	c.metrics.IncrementConfigReloads()
	c.logger.Info("configuration reloaded", "source", c.configSource)
	c.emitEvent(Event{Type: EventConfigReloaded, Message: message})
	return nil
}

// SurfaceResized reports a new surface size.
func (c *letterboxImpl) SurfaceResized(width, height float64) {
	c.game.Resize(width, height)
	if c.opts.Headless {
		// No frame loop: apply now.
		if err := c.game.Update(); err != nil {
			c.notifyError(categorize(CategoryResize, err))
		}
	}
}

// onResized runs for every result the game applies.
func (c *letterboxImpl) onResized(r aspect.Result) {
	c.metrics.IncrementResizes()
	c.metrics.SetScale(r.Scale)
	c.metrics.RecordComputeLatency(c.game.ComputeTime())

	c.logger.Debug("surface resized",
		"surface", r.Surface.String(),
		"scale", r.Scale,
		"margin_left", r.Margin.Left,
		"margin_top", r.Margin.Top)
	c.emitEvent(Event{
		Type:    EventResized,
		Message: fmt.Sprintf("surface %s, scale %g", r.Surface, r.Scale),
		Result:  &r,
	})
}

// onSkipped runs for every degenerate surface size the game ignores.
func (c *letterboxImpl) onSkipped(size aspect.Size, err error) {
	c.metrics.IncrementResizesSkipped()
	c.logger.Debug("surface resize skipped", "surface", size.String(), "error", err)
	c.emitEvent(Event{Type: EventResizeSkipped, Message: err.Error()})
}

// Result returns the last applied geometry.
func (c *letterboxImpl) Result() (aspect.Result, bool) {
	return c.game.Result()
}

// ContentRoot returns the root content attaches to.
func (c *letterboxImpl) ContentRoot() *render.ContentRoot {
	return c.game.ContentRoot()
}

// IsRunning returns true if the instance is currently running.
func (c *letterboxImpl) IsRunning() bool {
	return c.running.Load()
}

// Status returns detailed status information about the instance.
func (c *letterboxImpl) Status() Status {
	c.mu.RLock()
	startTime := c.startTime
	c.mu.RUnlock()

	applied, skipped := c.game.Stats()
	st := Status{
		Running:        c.running.Load(),
		StartTime:      startTime,
		Resolution:     c.game.Config().Resolution,
		Resizes:        applied,
		SkippedResizes: skipped,
		LastError:      c.getError(),
		ConfigSource:   c.configSource,
	}
	if r, ok := c.game.Result(); ok {
		st.Surface = r.Surface
		st.Scale = r.Scale
	}
	return st
}

// SetErrorHandler registers a callback for runtime errors.
func (c *letterboxImpl) SetErrorHandler(handler ErrorHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorHandler = handler
}

// SetEventHandler registers a callback for events.
func (c *letterboxImpl) SetEventHandler(handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventHandler = handler
}

// Metrics returns the metrics collector for this instance.
func (c *letterboxImpl) Metrics() *Metrics {
	return c.metrics
}

func (c *letterboxImpl) getError() error {
	if v := c.lastError.Load(); v != nil {
		if err, ok := v.(error); ok {
			return err
		}
	}
	return nil
}

// notifyError stores err, logs it and invokes the error handler.
func (c *letterboxImpl) notifyError(err error) {
	c.lastError.Store(err)
	c.metrics.IncrementErrors()
	c.logger.Error("runtime error", "category", CategoryOf(err).String(), "error", err)

	c.mu.RLock()
	handler := c.errorHandler
	c.mu.RUnlock()

	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	c.emitEvent(Event{Type: EventError, Message: err.Error()})
}

// emitEvent stamps ev and sends it to the event handler.
func (c *letterboxImpl) emitEvent(ev Event) {
	c.metrics.IncrementEventsEmitted()

	c.mu.RLock()
	handler := c.eventHandler
	c.mu.RUnlock()

	if handler == nil {
		return
	}
	ev.Timestamp = time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.mu.RLock()
				errHandler := c.errorHandler
				c.mu.RUnlock()
				if errHandler != nil {
					errHandler(fmt.Errorf("panic in event handler: %v", r))
				}
			}
		}()
		handler(ev)
	}()
}
