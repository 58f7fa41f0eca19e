// Package bgone removes a solid background color from a raster image by
// recovering, per pixel, an alpha and a foreground color that alpha-
// composite back to the observed pixel over the declared background. The
// kernel lives in pkg/unmix; this package wires decode, background
// detection, foreground deduction, the pixel driver, trim, and encode into
// the two public entry points, Process and ProcessAsync.
package bgone

import (
	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

// Options configures a single Process/ProcessAsync call. Background and
// Threshold are pointers so "unset" is distinguishable from "zero value":
// an unset Background triggers detection, an unset Threshold resolves to
// bgcolor.GetDefaultThreshold().
type Options struct {
	Input      []byte
	Background *bgcolor.RGB
	Foreground []bgcolor.BasisSlot
	Strict     bool
	Threshold  *float32
	Trim       bool
}

func (o Options) resolvedThreshold() float32 {
	if o.Threshold != nil {
		return *o.Threshold
	}
	return bgcolor.GetDefaultThreshold()
}
