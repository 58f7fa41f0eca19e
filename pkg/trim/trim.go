// Package trim crops an unmixed image to the bounding box of its
// non-transparent pixels. Adapted from the fuzz-color border trim this
// module grew out of, but keyed on alpha rather than color distance: once
// alpha carries the unmixed result, transparency is the only signal that
// still means "nothing here".
package trim

import (
	"image"
	"image/draw"
)

// Trim returns a copy of the smallest rectangle of src containing every
// pixel with alpha != 0, rebased so its bounds start at (0,0). If no such
// pixel exists the image is fully transparent and
// Trim returns a 1x1 transparent image rather than src unchanged — an
// empty result has no meaningful bounding box to preserve.
func Trim(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	b := src.Bounds()

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.NRGBAAt(x, y).A == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < minX || maxY < minY {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}

	rect := image.Rect(minX, minY, maxX+1, maxY+1)
	out := image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), src, rect.Min, draw.Src)
	return out
}
