// Package unmix implements the per-pixel color-unmixing kernel: given an
// observed color, a declared background, and zero or more basis
// (foreground) colors, it recovers non-negative basis weights and an
// alpha such that compositing the weighted basis over the background
// reproduces the observed color. The kernel is pure and never fails —
// infeasible solves are reported via UnmixResult.Feasible so callers can
// apply their own fallback policy (see the pixel driver).
package unmix

import (
	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/bgerr"
)

// Epsilon is the channel-wise reconstruction tolerance used throughout the
// kernel (spec precision note: ε = 1/512).
const Epsilon = float32(1.0 / 512.0)

// UnmixResult is the outcome of a constrained decomposition: Weights has
// one non-negative entry per basis color (their sum may exceed 1 when the
// basis is not linearly independent), Alpha is in [0,1], Residual is the
// largest per-channel reconstruction error after clamping, and Feasible
// reports whether that residual is within Epsilon.
type UnmixResult struct {
	Weights  []float32
	Alpha    float32
	Residual float32
	Feasible bool
}

// UnmixColor decomposes observed against basis and bg. An empty basis is
// a caller error (bgerr.ErrInsufficientColors) — the zero-basis free solve
// lives in Solve0, not here, since it needs no basis at all and always
// succeeds by construction.
func UnmixColor(observed bgcolor.RGB, basis []bgcolor.RGB, bg bgcolor.RGB) (UnmixResult, error) {
	if len(basis) == 0 {
		return UnmixResult{}, bgerr.Wrap(bgerr.ErrInsufficientColors, "unmixColor requires at least one basis color")
	}
	c := bgcolor.ColorToNormalized(observed)
	g := bgcolor.ColorToNormalized(bg)
	fs := make([]bgcolor.NRGB, len(basis))
	for i, f := range basis {
		fs[i] = bgcolor.ColorToNormalized(f)
	}
	if len(basis) == 1 {
		return solve1(c, fs[0], g), nil
	}
	return solveN(c, fs, g), nil
}

// ComputeUnmixResultColor reconstructs the straight-alpha RGBA pixel from
// unmix weights, alpha, and the basis that produced them: R,G,B come from
// the clamped effective foreground Σ wᵢ·Fᵢ, A from alpha.
func ComputeUnmixResultColor(weights []float32, alpha float32, basis []bgcolor.RGB) bgcolor.RGBA {
	var e bgcolor.NRGB
	for i, w := range weights {
		if i >= len(basis) {
			break
		}
		f := bgcolor.ColorToNormalized(basis[i])
		e.R += w * f.R
		e.G += w * f.G
		e.B += w * f.B
	}
	e.R = bgcolor.Clamp01(e.R)
	e.G = bgcolor.Clamp01(e.G)
	e.B = bgcolor.Clamp01(e.B)
	rgb := bgcolor.NormalizedToColor(e)
	return bgcolor.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: roundAlpha(alpha)}
}

func roundAlpha(a float32) uint8 {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return bgcolor.NormalizedToColor(bgcolor.NRGB{R: a}).R
}

func maxAbs3(a, b, c float32) float32 {
	m := abs32(a)
	if v := abs32(b); v > m {
		m = v
	}
	if v := abs32(c); v > m {
		m = v
	}
	return m
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float32) float32 { return bgcolor.Clamp01(v) }
