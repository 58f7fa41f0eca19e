package unmix

import "github.com/Fepozopo/bgone/pkg/bgcolor"

// bisectPrecision bounds how finely solveN narrows in on the smallest
// feasible alpha (spec §4.3.2: "to within 1/512 precision").
const bisectPrecision = float32(1.0 / 512.0)

// alphaFloor is the lower search bound: alpha=0 degenerates to "observed
// equals background on every basis", which is never informative to search.
const alphaFloor = float32(1.0 / 255.0)

// solveN implements the multi-basis case (spec §4.3.2): bisect on alpha to
// find the smallest value for which E(alpha) = G + (C-G)/alpha lies in
// [0,1]^3 and decomposes as a non-negative combination of the basis colors
// within Epsilon. Smaller alpha is preferred because it is the least
// committal explanation of the observed pixel.
func solveN(c bgcolor.NRGB, basis []bgcolor.NRGB, g bgcolor.NRGB) UnmixResult {
	feasibleAt := func(alpha float32) (UnmixResult, bool) {
		e := effectiveColor(c, g, alpha)
		if e.R < 0 || e.R > 1 || e.G < 0 || e.G > 1 || e.B < 0 || e.B > 1 {
			return UnmixResult{}, false
		}
		weights, residual := nonNegativeLeastSquares(e, basis)
		ok := residual <= Epsilon
		return UnmixResult{
			Weights:  weights,
			Alpha:    alpha,
			Residual: residual,
			Feasible: ok,
		}, ok
	}

	hiResult, hiOK := feasibleAt(1.0)
	if !hiOK {
		hiResult.Alpha = 1.0
		hiResult.Feasible = false
		return hiResult
	}

	lo, hi := alphaFloor, float32(1.0)
	best := hiResult
	for hi-lo > bisectPrecision {
		mid := (lo + hi) / 2
		if r, ok := feasibleAt(mid); ok {
			hi = mid
			best = r
		} else {
			lo = mid
		}
	}
	return best
}

func effectiveColor(c, g bgcolor.NRGB, alpha float32) bgcolor.NRGB {
	return bgcolor.NRGB{
		R: g.R + (c.R-g.R)/alpha,
		G: g.G + (c.G-g.G)/alpha,
		B: g.B + (c.B-g.B)/alpha,
	}
}
