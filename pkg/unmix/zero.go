package unmix

import "github.com/Fepozopo/bgone/pkg/bgcolor"

// Solve0 implements the zero-basis free-foreground solve (spec §4.3.3): the
// system is free to choose the foreground, so it picks the smallest alpha
// for which E = G + (C-G)/alpha still lies in [0,1]^3. This always
// succeeds, so it returns the resulting straight-alpha pixel directly
// (E rounded to 8 bits, A = round(alpha·255)) with no error value.
func Solve0(observed, bg bgcolor.RGB) bgcolor.RGBA {
	c := bgcolor.ColorToNormalized(observed)
	g := bgcolor.ColorToNormalized(bg)

	alpha := zeroBasisAlpha(c, g)
	e := bgcolor.NRGB{R: g.R, G: g.G, B: g.B}
	if alpha > 0 {
		e = effectiveColor(c, g, alpha)
	}
	e.R = bgcolor.Clamp01(e.R)
	e.G = bgcolor.Clamp01(e.G)
	e.B = bgcolor.Clamp01(e.B)

	rgb := bgcolor.NormalizedToColor(e)
	return bgcolor.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: roundAlpha(alpha)}
}

// ImpliedForeground computes the same channel-wise-maximum alpha and
// effective foreground as Solve0, but returns the raw (unclamped) values
// and whether the foreground lies in [0,1]^3 before clamping — used by the
// foreground deducer (spec §4.4 step 2) to discard out-of-gamut candidates
// rather than silently clamping them.
func ImpliedForeground(observed, bg bgcolor.RGB) (e bgcolor.NRGB, alpha float32, inBounds bool) {
	c := bgcolor.ColorToNormalized(observed)
	g := bgcolor.ColorToNormalized(bg)
	alpha = zeroBasisAlpha(c, g)
	if alpha == 0 {
		return bgcolor.NRGB{R: g.R, G: g.G, B: g.B}, 0, true
	}
	e = effectiveColor(c, g, alpha)
	inBounds = e.R >= 0 && e.R <= 1 && e.G >= 0 && e.G <= 1 && e.B >= 0 && e.B <= 1
	return e, alpha, inBounds
}

// zeroBasisAlpha computes the smallest α such that E = G + (C-G)/α lies in
// [0,1]^3: α = max over channels k of |C_k − G_k| / room_k, where room_k is
// the distance from G_k to the bound C_k is pushing E_k toward (1−G_k when
// C_k > G_k, G_k when C_k < G_k), or 0 when C == G. The room must be
// direction-aware: using max(G_k, 1−G_k) regardless of which way C_k sits
// picks the larger of the two bounds even when only the smaller one is
// reachable, understating α and leaving E outside [0,1]^3 after the
// caller's clamp.
func zeroBasisAlpha(c, g bgcolor.NRGB) float32 {
	var alpha float32
	consider := func(ck, gk float32) {
		if ck == gk {
			return
		}
		var room float32
		if ck > gk {
			room = 1 - gk
		} else {
			room = gk
		}
		if room == 0 {
			return
		}
		a := abs32(ck-gk) / room
		if a > alpha {
			alpha = a
		}
	}
	consider(c.R, g.R)
	consider(c.G, g.G)
	consider(c.B, g.B)
	return clamp01(alpha)
}
