package driver

import (
	"image"
	"image/color"
	"testing"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

func TestRunBackgroundPixelGoesFullyTransparent(t *testing.T) {
	bg := bgcolor.RGB{R: 10, G: 20, B: 30}
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
		}
	}
	out := Run(src, Options{Background: bg})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.NRGBAAt(x, y); got.A != 0 {
				t.Fatalf("pixel (%d,%d) = %v, want fully transparent", x, y, got)
			}
		}
	}
}

func TestRunZeroBasisPerfectReconstruction(t *testing.T) {
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 5, B: 60, A: 255})

	out := Run(src, Options{Background: bg})
	if got := out.NRGBAAt(0, 0); got.A != 0 {
		t.Fatalf("background pixel not cleared: %v", got)
	}
	got := out.NRGBAAt(1, 0)
	if got.A == 0 {
		t.Fatalf("non-background pixel unexpectedly fully transparent: %v", got)
	}
	recon := bgcolor.CompositeOverBackground(bgcolor.RGBA{R: got.R, G: got.G, B: got.B, A: got.A}, bg)
	want := bgcolor.RGB{R: 200, G: 5, B: 60}
	for _, d := range []int{int(recon.R) - int(want.R), int(recon.G) - int(want.G), int(recon.B) - int(want.B)} {
		if d < -1 || d > 1 {
			t.Fatalf("composite of %v over %v = %v, want %v within 1", got, bg, recon, want)
		}
	}
}

func TestRunDeterministicAcrossRuns(t *testing.T) {
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	basis := []bgcolor.RGB{{R: 255, G: 0, B: 0}}
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := uint8((x + y) % 256)
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: 0, B: 0, A: 255})
		}
	}
	opts := Options{Background: bg, Basis: basis, Strict: true, Threshold: 0.1}
	a := Run(src, opts)
	b := Run(src, opts)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				t.Fatalf("non-deterministic output at (%d,%d): %v vs %v", x, y, a.NRGBAAt(x, y), b.NRGBAAt(x, y))
			}
		}
	}
}
