// Package bgcolor holds the color primitives the rest of the bgone
// pipeline shares: 8-bit RGB/RGBA values, their normalized linear-naive
// float32 form, hex parsing, and the alpha-compositing helper. Arithmetic
// stays in 0..1 normalized per-channel space without gamma correction,
// matching the reference implementation's contract.
package bgcolor

// RGB is an opaque 8-bit color: a background or basis (foreground) color.
type RGB struct {
	R, G, B uint8
}

// RGBA is a straight-alpha 8-bit pixel (alpha is not premultiplied).
type RGBA struct {
	R, G, B, A uint8
}

// NRGB is the normalized [0,1] per-channel form the unmix kernel operates on.
type NRGB struct {
	R, G, B float32
}

// BasisSlot is a declared foreground entry: either a concrete color or the
// AUTO sentinel, resolved later by the foreground deducer.
type BasisSlot struct {
	Auto bool
	RGB  RGB
}

// Channels returns the three channels as a [3]float32 for loop-friendly code.
func (n NRGB) Channels() [3]float32 { return [3]float32{n.R, n.G, n.B} }

// NRGBFromChannels is the inverse of Channels.
func NRGBFromChannels(c [3]float32) NRGB { return NRGB{c[0], c[1], c[2]} }
