package trim

import (
	"image"
	"image/color"
	"testing"
)

func TestTrimCropsToOpaqueBoundingBox(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(3, 4, color.NRGBA{R: 255, A: 255})
	src.SetNRGBA(6, 7, color.NRGBA{G: 255, A: 128})

	got := Trim(src)
	want := image.Rect(0, 0, 4, 4)
	if got.Bounds() != want {
		t.Fatalf("got bounds %v, want %v", got.Bounds(), want)
	}
	if got.NRGBAAt(0, 0) != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("pixel not preserved after crop: %v", got.NRGBAAt(0, 0))
	}
}

func TestTrimFullyTransparentReturnsOnePixel(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	got := Trim(src)
	if got.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("expected 1x1 result for fully transparent input, got %v", got.Bounds())
	}
}

func TestTrimNilReturnsOnePixel(t *testing.T) {
	got := Trim(nil)
	if got.Bounds() != image.Rect(0, 0, 1, 1) {
		t.Fatalf("expected 1x1 result for nil input, got %v", got.Bounds())
	}
}
