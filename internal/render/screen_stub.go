//go:build !linux

package render

import "github.com/opd-ai/go-letterbox/pkg/aspect"

// WorkArea is not supported on this platform.
func WorkArea() (aspect.Size, error) {
	return aspect.Size{}, ErrNoDisplay
}
