package letterbox

import (
	"time"

	"github.com/opd-ai/go-letterbox/pkg/aspect"
)

// Status represents the current state of a Letterbox instance.
type Status struct {
	// Running indicates if the instance is currently active.
	Running bool
	// StartTime is when the instance was last started (zero if never started).
	StartTime time.Time
	// Resolution is the fixed virtual resolution.
	Resolution aspect.Resolution
	// Surface is the last applied surface size (zero before the first resize).
	Surface aspect.Size
	// Scale is the last applied uniform scale (zero before the first resize).
	Scale float64
	// Resizes is the number of surface sizes applied.
	Resizes uint64
	// SkippedResizes is the number of degenerate surface sizes ignored.
	SkippedResizes uint64
	// LastError is the most recent error encountered (nil if none).
	LastError error
	// ConfigSource describes the configuration source (file path, "embedded:" path or "reader").
	ConfigSource string
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously; do not block in the handler.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a lifecycle or geometry event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
	// Result is set for EventResized.
	Result *aspect.Result
}

// EventType enumerates event types.
// The underlying integer values are implementation details and should not
// be relied upon for serialization. Use the constant names for comparison.
type EventType int

const (
	// EventStarted is emitted when the instance starts successfully.
	EventStarted EventType = iota
	// EventStopped is emitted when the instance stops.
	EventStopped
	// EventConfigReloaded is emitted when configuration is reloaded.
	EventConfigReloaded
	// EventResized is emitted every time a new surface size is applied.
	EventResized
	// EventResizeSkipped is emitted when a degenerate surface size is ignored.
	EventResizeSkipped
	// EventError is emitted when a recoverable error occurs.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventConfigReloaded:
		return "config_reloaded"
	case EventResized:
		return "resized"
	case EventResizeSkipped:
		return "resize_skipped"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
