package unmix

import "github.com/Fepozopo/bgone/pkg/bgcolor"

// solve1 implements the closed-form single-basis case (spec §4.3.1): pick
// the channel with the largest |F-G| denominator for numerical stability,
// solve α·w1 = (C-G)/(F-G) on that channel, clamp to [0,1] and fix w1=1.
func solve1(c, f, g bgcolor.NRGB) UnmixResult {
	dr := f.R - g.R
	dg := f.G - g.G
	db := f.B - g.B

	type chan3 struct {
		num, den float32
	}
	channels := [3]chan3{
		{c.R - g.R, dr},
		{c.G - g.G, dg},
		{c.B - g.B, db},
	}

	best := 0
	bestAbs := abs32(channels[0].den)
	for i := 1; i < 3; i++ {
		if a := abs32(channels[i].den); a > bestAbs {
			bestAbs = a
			best = i
		}
	}

	var alpha float32
	if bestAbs == 0 {
		// Basis equals background on every channel: any alpha reproduces the
		// same effective color, so only an exact background pixel solves
		// cleanly. Treat as fully transparent.
		alpha = 0
	} else {
		alpha = channels[best].num / channels[best].den
	}
	alpha = clamp01(alpha)

	e := bgcolor.NRGB{R: f.R, G: f.G, B: f.B}
	recon := bgcolor.NRGB{
		R: alpha*e.R + (1-alpha)*g.R,
		G: alpha*e.G + (1-alpha)*g.G,
		B: alpha*e.B + (1-alpha)*g.B,
	}
	residual := maxAbs3(recon.R-c.R, recon.G-c.G, recon.B-c.B)

	return UnmixResult{
		Weights:  []float32{1.0},
		Alpha:    alpha,
		Residual: residual,
		Feasible: residual <= Epsilon,
	}
}
