package render

import "errors"

// ErrNoDisplay is returned when no display server can be queried.
var ErrNoDisplay = errors.New("no display available")
