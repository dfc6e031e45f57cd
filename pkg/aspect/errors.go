package aspect

import "errors"

// ErrInvalidResolution is returned when the virtual resolution has a
// non-positive or non-finite dimension. It is a configuration error and
// should be rejected at startup.
var ErrInvalidResolution = errors.New("invalid virtual resolution")

// ErrDegenerateSurface is returned when the surface has a non-positive or
// non-finite dimension, as happens while a window is minimized. Hosts should
// skip the recompute and keep the last valid Result.
var ErrDegenerateSurface = errors.New("degenerate surface size")
