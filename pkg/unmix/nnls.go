package unmix

import "github.com/Fepozopo/bgone/pkg/bgcolor"

// nonNegativeLeastSquares finds non-negative weights over basis (each an
// NRGB column) minimizing the channel-wise residual against target, via
// brute-force active-set enumeration over all 2^n subsets. Acceptable for
// the realistic ceiling of n ≤ 4 basis colors the spec targets.
func nonNegativeLeastSquares(target bgcolor.NRGB, basis []bgcolor.NRGB) (weights []float32, residual float32) {
	n := len(basis)
	weights = make([]float32, n)
	residual = maxAbs3(target.R, target.G, target.B) // residual of the all-zero (empty-set) solution

	bestResidual := residual
	bestWeights := make([]float32, n)

	for mask := 1; mask < (1 << n); mask++ {
		idx := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				idx = append(idx, i)
			}
		}
		cols := make([][3]float32, len(idx))
		for j, i := range idx {
			cols[j] = [3]float32{basis[i].R, basis[i].G, basis[i].B}
		}
		w, ok := solveNormalEquations(cols, [3]float32{target.R, target.G, target.B})
		if !ok {
			continue
		}
		feasible := true
		for _, v := range w {
			if v < -1e-4 {
				feasible = false
				break
			}
		}
		if !feasible {
			continue
		}
		// Clamp tiny negative noise to zero.
		for i := range w {
			if w[i] < 0 {
				w[i] = 0
			}
		}
		recon := [3]float32{}
		for j, c := range cols {
			recon[0] += w[j] * c[0]
			recon[1] += w[j] * c[1]
			recon[2] += w[j] * c[2]
		}
		r := maxAbs3(recon[0]-target.R, recon[1]-target.G, recon[2]-target.B)
		if r < bestResidual {
			bestResidual = r
			for i := range bestWeights {
				bestWeights[i] = 0
			}
			for j, i := range idx {
				bestWeights[i] = w[j]
			}
		}
	}
	return bestWeights, bestResidual
}

// solveNormalEquations solves the k-column least squares A w ≈ target via
// the normal equations (AᵀA) w = Aᵀtarget, k ≤ 4, using Gaussian
// elimination with partial pivoting. ok is false if AᵀA is singular.
func solveNormalEquations(cols [][3]float32, target [3]float32) (w []float32, ok bool) {
	k := len(cols)
	m := make([][]float64, k)
	rhs := make([]float64, k)
	for i := 0; i < k; i++ {
		m[i] = make([]float64, k)
		for j := 0; j < k; j++ {
			m[i][j] = float64(cols[i][0])*float64(cols[j][0]) +
				float64(cols[i][1])*float64(cols[j][1]) +
				float64(cols[i][2])*float64(cols[j][2])
		}
		rhs[i] = float64(cols[i][0])*float64(target[0]) +
			float64(cols[i][1])*float64(target[1]) +
			float64(cols[i][2])*float64(target[2])
	}

	for col := 0; col < k; col++ {
		pivot := col
		best := abs64(m[col][col])
		for r := col + 1; r < k; r++ {
			if v := abs64(m[r][col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < 1e-12 {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for r := col + 1; r < k; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < k; c++ {
				m[r][c] -= factor * m[col][c]
			}
			rhs[r] -= factor * rhs[col]
		}
	}

	x := make([]float64, k)
	for i := k - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < k; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}

	w = make([]float32, k)
	for i, v := range x {
		w[i] = float32(v)
	}
	return w, true
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
