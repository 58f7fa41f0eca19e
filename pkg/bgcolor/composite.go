package bgcolor

import "math"

// GetDefaultThreshold returns the default basis-proximity threshold used
// when Options.Threshold is unset.
func GetDefaultThreshold() float32 { return 0.05 }

// ColorToNormalized maps an 8-bit channel set to normalized [0,1] floats.
func ColorToNormalized(c RGB) NRGB {
	return NRGB{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
	}
}

// NormalizedToColor is the exact inverse of ColorToNormalized for the
// 8-bit set: round(x*255), clamped to [0,255].
func NormalizedToColor(n NRGB) RGB {
	return RGB{
		R: roundToByte(n.R),
		G: roundToByte(n.G),
		B: roundToByte(n.B),
	}
}

func roundToByte(v float32) uint8 {
	x := math.Round(float64(v) * 255.0)
	if x < 0 {
		x = 0
	}
	if x > 255 {
		x = 255
	}
	return uint8(x)
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// CompositeOverBackground returns α·fg + (1-α)·bg per channel, where fg is
// pixel's R/G/B and α = pixel.A/255. Each output channel is rounded to the
// nearest integer and clamped to [0,255].
func CompositeOverBackground(pixel RGBA, bg RGB) RGB {
	a := float32(pixel.A) / 255.0
	fg := NRGB{
		R: float32(pixel.R) / 255.0,
		G: float32(pixel.G) / 255.0,
		B: float32(pixel.B) / 255.0,
	}
	g := ColorToNormalized(bg)
	out := NRGB{
		R: a*fg.R + (1-a)*g.R,
		G: a*fg.G + (1-a)*g.G,
		B: a*fg.B + (1-a)*g.B,
	}
	return NormalizedToColor(out)
}

// Distance returns the Euclidean distance between two normalized colors.
func Distance(a, b NRGB) float32 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return float32(math.Sqrt(float64(dr*dr + dg*dg + db*db)))
}
