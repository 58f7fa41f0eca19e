package deduce

import (
	"image"
	"image/color"
	"testing"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

func makeTwoColorImage(w, h int, left, right color.RGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func TestDeduceTwoClusters(t *testing.T) {
	bg := bgcolor.RGB{R: 255, G: 255, B: 255}
	img := makeTwoColorImage(20, 10,
		color.RGBA{R: 200, G: 0, B: 0, A: 255},
		color.RGBA{R: 0, G: 200, B: 0, A: 255})

	got, err := Deduce(img, bg, 0.1, 2)
	if err != nil {
		t.Fatalf("Deduce: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 centroids, got %d", len(got))
	}
}

func TestDeduceInsufficientColorsFails(t *testing.T) {
	bg := bgcolor.RGB{R: 255, G: 255, B: 255}
	img := makeTwoColorImage(10, 10,
		color.RGBA{R: 10, G: 10, B: 10, A: 255},
		color.RGBA{R: 10, G: 10, B: 10, A: 255})

	if _, err := Deduce(img, bg, 0.1, 3); err == nil {
		t.Fatalf("expected ErrInsufficientColors for a single candidate color and k=3")
	}
}

func TestCollectCandidatesSkipsNearBackground(t *testing.T) {
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	img := makeTwoColorImage(4, 2,
		color.RGBA{R: 1, G: 1, B: 1, A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got := CollectCandidates(img, bg, 0.05)
	if len(got) != 1 {
		t.Fatalf("expected only the far color to survive, got %v", got)
	}
	if got[0] != (bgcolor.RGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("unexpected candidate: %v", got[0])
	}
}
