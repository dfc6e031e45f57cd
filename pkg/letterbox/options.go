package letterbox

import "time"

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
// This can be overridden via Options.ShutdownTimeout.
const DefaultShutdownTimeout = 5 * time.Second

// Options configures the Letterbox instance behavior.
type Options struct {
	// WindowTitle overrides the window title.
	// Empty string means use the configuration file's value.
	WindowTitle string

	// Headless runs without creating a window. Surface sizes are reported
	// through SurfaceResized instead of the window system.
	Headless bool

	// ShutdownTimeout sets the maximum time to wait for graceful shutdown.
	// Zero means use DefaultShutdownTimeout.
	ShutdownTimeout time.Duration

	// Logger sets a custom logger for debug/info messages.
	// If nil, no logging is performed.
	Logger Logger

	// Metrics sets a custom metrics collector.
	// If nil, DefaultMetrics() is used.
	Metrics *Metrics

	// WatchConfig reloads the configuration in-place when the file changes
	// on disk. It only applies to instances created with New.
	WatchConfig bool

	// WatchDebounce sets the debounce interval for file change events.
	// Zero means use DefaultWatchDebounce.
	WatchDebounce time.Duration

	// ScreenFill is the fraction of the screen the initial window may cover
	// when the configuration leaves the window size unset. Zero means 0.8.
	ScreenFill float64
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		ShutdownTimeout: DefaultShutdownTimeout,
		WatchDebounce:   DefaultWatchDebounce,
		ScreenFill:      defaultScreenFill,
	}
}

// Logger interface for custom logging.
// It follows the slog-style signature for compatibility with Go's structured logging.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, args ...any)
	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, args ...any)
	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, args ...any)
	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, args ...any)
}
