package unmix

import (
	"testing"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

func within(got, want uint8, tol int) bool {
	d := int(got) - int(want)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// S3: strict single-basis unmix of #800000 against bg=#000000, fg=[#ff0000]
// should reconstruct roughly (255,0,0,128).
func TestUnmixColorAndReconstructStrict(t *testing.T) {
	observed := bgcolor.RGB{R: 0x80, G: 0x00, B: 0x00}
	bg := bgcolor.RGB{R: 0x00, G: 0x00, B: 0x00}
	basis := []bgcolor.RGB{{R: 0xff, G: 0x00, B: 0x00}}

	res, err := UnmixColor(observed, basis, bg)
	if err != nil {
		t.Fatalf("UnmixColor: %v", err)
	}
	got := ComputeUnmixResultColor(res.Weights, res.Alpha, basis)
	want := bgcolor.RGBA{R: 255, G: 0, B: 0, A: 128}
	if !within(got.R, want.R, 1) || !within(got.G, want.G, 1) ||
		!within(got.B, want.B, 1) || !within(got.A, want.A, 1) {
		t.Fatalf("got %+v, want ~%+v", got, want)
	}
}

// S4: UnmixColor({128,0,0}, [{255,0,0}], {0,0,0}) -> weights ~[1.0], alpha ~0.502.
func TestUnmixColorSingleBasisWeightsAndAlpha(t *testing.T) {
	observed := bgcolor.RGB{R: 128, G: 0, B: 0}
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	basis := []bgcolor.RGB{{R: 255, G: 0, B: 0}}

	res, err := UnmixColor(observed, basis, bg)
	if err != nil {
		t.Fatalf("UnmixColor: %v", err)
	}
	if len(res.Weights) != 1 {
		t.Fatalf("expected 1 weight, got %d", len(res.Weights))
	}
	if d := res.Weights[0] - 1.0; d < -0.01 || d > 0.01 {
		t.Fatalf("weight = %v, want ~1.0", res.Weights[0])
	}
	if d := res.Alpha - 0.502; d < -0.01 || d > 0.01 {
		t.Fatalf("alpha = %v, want ~0.502", res.Alpha)
	}
}

// S5: computeUnmixResultColor([0.5,0.5], 1.0, [{255,0,0},{0,255,0}]) -> (128,128,0,255).
func TestComputeUnmixResultColorTwoBasis(t *testing.T) {
	basis := []bgcolor.RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}
	got := ComputeUnmixResultColor([]float32{0.5, 0.5}, 1.0, basis)
	want := bgcolor.RGBA{R: 128, G: 128, B: 0, A: 255}
	if !within(got.R, want.R, 1) || !within(got.G, want.G, 1) ||
		!within(got.B, want.B, 1) || got.A != want.A {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestUnmixColorEmptyBasisFails(t *testing.T) {
	if _, err := UnmixColor(bgcolor.RGB{}, nil, bgcolor.RGB{}); err == nil {
		t.Fatalf("expected error for empty basis")
	}
}

func TestSolve0PerfectReconstruction(t *testing.T) {
	bg := bgcolor.RGB{R: 10, G: 20, B: 30}
	observed := bgcolor.RGB{R: 200, G: 5, B: 60}
	got := Solve0(observed, bg)

	e := bgcolor.ColorToNormalized(bgcolor.RGB{R: got.R, G: got.G, B: got.B})
	g := bgcolor.ColorToNormalized(bg)
	alpha := float32(got.A) / 255
	recon := bgcolor.NRGB{
		R: alpha*e.R + (1-alpha)*g.R,
		G: alpha*e.G + (1-alpha)*g.G,
		B: alpha*e.B + (1-alpha)*g.B,
	}
	c := bgcolor.ColorToNormalized(observed)
	if maxAbs3(recon.R-c.R, recon.G-c.G, recon.B-c.B) > 0.01 {
		t.Fatalf("Solve0 reconstruction mismatch: got %+v from observed %+v bg %+v", got, observed, bg)
	}
}

// A bright background (G > 0.5 on every channel) exercises the direction-
// aware room computation in zeroBasisAlpha: naively using max(G, 1-G)
// picks the wrong bound here and understates alpha.
func TestSolve0PerfectReconstructionBrightBackground(t *testing.T) {
	bg := bgcolor.RGB{R: 0xcc, G: 0xcc, B: 0xcc}
	observed := bgcolor.RGB{R: 0xff, G: 0xff, B: 0xff}
	got := Solve0(observed, bg)

	if got.A != 255 {
		t.Fatalf("expected alpha 255 for white-on-light-gray, got %d", got.A)
	}
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("expected reconstructed foreground (255,255,255), got (%d,%d,%d)", got.R, got.G, got.B)
	}
}

func TestSolve0IdenticalToBackground(t *testing.T) {
	bg := bgcolor.RGB{R: 50, G: 50, B: 50}
	got := Solve0(bg, bg)
	if got.A != 0 {
		t.Fatalf("expected alpha 0 when observed equals background, got %d", got.A)
	}
}

// solveN bisects toward the smallest feasible alpha, so observing
// (128,128,0) over a black background with {red,green} basis settles near
// alpha=0.502 with E driven up to (255,255,0) rather than staying at
// alpha=1 with E equal to the observed color.
func TestSolveNTwoBasisFeasible(t *testing.T) {
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	basis := []bgcolor.RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}}
	observed := bgcolor.RGB{R: 128, G: 128, B: 0}

	res, err := UnmixColor(observed, basis, bg)
	if err != nil {
		t.Fatalf("UnmixColor: %v", err)
	}
	if !res.Feasible {
		t.Fatalf("expected feasible solve, got %+v", res)
	}
	if d := res.Alpha - 0.502; d < -0.02 || d > 0.02 {
		t.Fatalf("alpha = %v, want ~0.502", res.Alpha)
	}
	got := ComputeUnmixResultColor(res.Weights, res.Alpha, basis)
	if !within(got.R, 255, 2) || !within(got.G, 255, 2) || !within(got.B, 0, 2) {
		t.Fatalf("reconstruction mismatch: %+v", got)
	}
}
