package letterbox

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"

	"github.com/opd-ai/go-letterbox/internal/config"
	"github.com/opd-ai/go-letterbox/internal/render"
	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// Configuration format constants for use with NewFromReader.
const (
	// FormatLegacy indicates the key-value configuration format.
	FormatLegacy = config.FormatLegacy
	// FormatLua indicates the Lua configuration format.
	FormatLua = config.FormatLua
)

// Letterbox is an embedded go-letterbox instance with lifecycle control.
// It is safe for concurrent use from multiple goroutines.
type Letterbox interface {
	// Start opens the window and begins the render loop in the background.
	// In headless mode it only marks the instance as running.
	// Returns ErrAlreadyRunning if the instance is running.
	Start() error

	// Stop shuts the instance down and waits for its goroutines.
	// Safe to call multiple times; subsequent calls are no-ops.
	Stop() error

	// ReloadConfig reloads the configuration in-place without stopping.
	// The virtual resolution cannot change; a different value in the
	// reloaded configuration is logged and ignored. On error the previous
	// configuration remains active.
	ReloadConfig() error

	// SurfaceResized reports a new surface size in pixels. Windowed
	// instances receive sizes from the window system and apply them on the
	// next frame; headless instances apply them immediately.
	SurfaceResized(width, height float64)

	// Result returns the last applied geometry. ok is false until the
	// first valid surface size has been applied.
	Result() (result aspect.Result, ok bool)

	// ContentRoot returns the scaled, centered root that content attaches
	// to. Its identity is stable for the lifetime of the instance.
	ContentRoot() *render.ContentRoot

	// IsRunning returns true if the instance is currently running.
	IsRunning() bool

	// Status returns detailed status information about the instance.
	Status() Status

	// Health returns a health check result for the instance.
	Health() HealthCheck

	// SetErrorHandler registers a callback for runtime errors.
	// The handler is invoked asynchronously and panics in it are recovered.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle and geometry events.
	SetEventHandler(handler EventHandler)

	// Metrics returns the metrics collector for this instance.
	Metrics() *Metrics
}

// New creates a Letterbox from a configuration file on disk, in either the
// Lua or the legacy key-value format. The instance is created but not
// started.
//
// Example:
//
//	lb, err := letterbox.New("/home/user/.config/letterbox.lua", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer lb.Stop()
//	if err := lb.Start(); err != nil {
//		log.Fatal(err)
//	}
func New(configPath string, opts *Options) (Letterbox, error) {
	loader := func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFile(configPath)
		})
	}
	return newFromLoader(loader, configPath, configPath, opts)
}

// NewFromFS creates a Letterbox using configuration from a filesystem such
// as an embed.FS.
//
// Example:
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	lb, err := letterbox.NewFromFS(configFS, "configs/letterbox.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Letterbox, error) {
	loader := func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFromFS(fsys, configPath)
		})
	}
	return newFromLoader(loader, "embedded:"+configPath, "", opts)
}

// NewFromReader creates a Letterbox from configuration content in the given
// format (FormatLua or FormatLegacy). The content is read once and kept for
// ReloadConfig.
//
// Example:
//
//	cfg := strings.NewReader(`
//		letterbox.config = { virtual_width = 1280, virtual_height = 720 }
//		letterbox.text = [[hello]]
//	`)
//	lb, err := letterbox.NewFromReader(cfg, letterbox.FormatLua, nil)
func NewFromReader(r io.Reader, format string, opts *Options) (Letterbox, error) {
	if format != FormatLegacy && format != FormatLua {
		return nil, fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidFormat, format, FormatLua, FormatLegacy)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	loader := func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseReader(bytes.NewReader(content), format)
		})
	}
	return newFromLoader(loader, "reader", "", opts)
}

// parseWith runs parse with a fresh Parser, closing it afterwards.
func parseWith(parse func(p *config.Parser) (*config.Config, error)) (*config.Config, error) {
	p, err := config.NewParser()
	if err != nil {
		return nil, fmt.Errorf("parser init: %w", err)
	}
	defer p.Close()
	return parse(p)
}

// loadValidated loads a configuration and rejects it unless it validates.
// Warnings are returned for logging.
func loadValidated(loader func() (*config.Config, error)) (*config.Config, []config.ValidationError, error) {
	cfg, err := loader()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	result := config.NewValidator().Validate(cfg)
	if err := result.Error(); err != nil {
		return nil, result.Warnings, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, result.Warnings, nil
}

func newFromLoader(loader func() (*config.Config, error), source, watchPath string, opts *Options) (Letterbox, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}

	cfg, warnings, err := loadValidated(loader)
	if err != nil {
		return nil, err
	}

	c := newLetterbox(cfg, *opts, source, watchPath, loader)
	for _, w := range warnings {
		c.logger.Warn("configuration warning", "field", w.Field, "message", w.Message)
	}
	return c, nil
}
