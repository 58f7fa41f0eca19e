// Package bgdetect picks a background color from the border pixels of a
// decoded image: the strongest prior available for a solid background,
// computable in O(perimeter).
package bgdetect

import (
	"image"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/bgerr"
)

// DetectBackground samples every pixel on the four borders of img (top
// row, bottom row, left column, right column) and returns the mode RGB
// triple. Ties break in scan order: top-to-bottom, then left-to-right
// within a row. Fails with bgerr.ErrEmptyImage if width or height is zero.
func DetectBackground(img image.Image) (bgcolor.RGB, error) {
	if img == nil {
		return bgcolor.RGB{}, bgerr.Wrap(bgerr.ErrEmptyImage, "nil image")
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return bgcolor.RGB{}, bgerr.Wrapf(bgerr.ErrEmptyImage, "dimensions %dx%d", w, h)
	}

	counts := map[bgcolor.RGB]int{}
	order := []bgcolor.RGB{}
	note := func(x, y int) {
		c := pixelAt(img, x, y)
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		if y == b.Min.Y || y == b.Max.Y-1 {
			for x := b.Min.X; x < b.Max.X; x++ {
				note(x, y)
			}
			continue
		}
		note(b.Min.X, y)
		if w > 1 {
			note(b.Max.X-1, y)
		}
	}

	best := order[0]
	bestCount := counts[best]
	for _, c := range order[1:] {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best, nil
}

func pixelAt(img image.Image, x, y int) bgcolor.RGB {
	r, g, b, _ := img.At(x, y).RGBA()
	return bgcolor.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
