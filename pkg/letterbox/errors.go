package letterbox

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the public API.
var (
	// ErrInvalidConfiguration is returned by the constructors and by
	// ReloadConfig when the configuration fails validation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrAlreadyRunning is returned by Start on a running instance.
	ErrAlreadyRunning = errors.New("letterbox instance already running")
	// ErrNotRunning is returned by operations that need a running instance.
	ErrNotRunning = errors.New("letterbox instance not running")
	// ErrInvalidFormat is returned by NewFromReader for an unknown format.
	ErrInvalidFormat = errors.New("invalid configuration format")
)

// ErrorCategory classifies runtime errors reported to the ErrorHandler.
type ErrorCategory int

const (
	// CategoryUnknown is used for errors that have not been classified.
	CategoryUnknown ErrorCategory = iota
	// CategoryConfig covers parse, validation and reload failures.
	CategoryConfig
	// CategoryResize covers surface sizes that could not be applied.
	CategoryResize
	// CategoryRender covers failures of the render loop.
	CategoryRender
	// CategoryWatcher covers configuration file watch failures.
	CategoryWatcher
	// CategoryLifecycle covers start and shutdown failures.
	CategoryLifecycle
)

// String returns a human-readable representation of the category.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryConfig:
		return "config"
	case CategoryResize:
		return "resize"
	case CategoryRender:
		return "render"
	case CategoryWatcher:
		return "watcher"
	case CategoryLifecycle:
		return "lifecycle"
	default:
		return "unknown"
	}
}

// CategorizedError attaches an ErrorCategory to an error.
type CategorizedError struct {
	Category ErrorCategory
	Err      error
}

// Error implements the error interface.
func (e *CategorizedError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Category, e.Err)
}

// Unwrap returns the underlying error.
func (e *CategorizedError) Unwrap() error {
	return e.Err
}

// categorize wraps err with category. A nil err stays nil.
func categorize(category ErrorCategory, err error) error {
	if err == nil {
		return nil
	}
	return &CategorizedError{Category: category, Err: err}
}

// CategoryOf returns the category of err, or CategoryUnknown.
func CategoryOf(err error) ErrorCategory {
	var ce *CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return CategoryUnknown
}
