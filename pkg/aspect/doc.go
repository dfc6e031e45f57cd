// Package aspect computes letterbox geometry for a fixed virtual resolution
// shown inside a resizable surface.
//
// Given a virtual resolution and the current surface size, [Compute] derives a
// single uniform scale, the margin that centers the content region, and four
// mask bars that cover the leftover space:
//
//	res := aspect.DefaultResolution()
//	r, err := aspect.Compute(res, aspect.Size{Width: 1280, Height: 540})
//	if err != nil {
//		return err
//	}
//	// r.Scale == 1, r.Margin.Left == 160
//	// r.Mask(aspect.SideLeft).Length == 320
//
// All values in a [Result] except those returned by [Result.ContentRect] and
// [Result.MaskRect] are in virtual units; multiply by [Result.Scale] to get
// surface pixels.
//
// The package holds no state. Calling Compute twice with the same input
// yields the same Result.
package aspect
