package bgcolor

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Swatch renders a small debug preview for verbose/--detect runs: a solid
// block of bg with its hex code annotated in the corner. fontPath may be
// empty to fall back to the built-in basic font.
func Swatch(bg RGB, fontPath string, size float64) *image.NRGBA {
	const w, h = 160, 48
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetNRGBA(x, y, fill)
		}
	}
	label := fmt.Sprintf("bg %s", ToHex(bg))
	return annotate(out, label, fontPath, size, 6, h/2+4, labelColor(fill))
}

// annotate draws text onto src at pixel position x,y, adapted from the
// teacher's Annotate: TTF via opentype when fontPath is set and readable,
// basicfont.Face7x13 otherwise.
func annotate(src *image.NRGBA, text, fontPath string, size float64, x, y int, col color.Color) *image.NRGBA {
	var face font.Face = basicfont.Face7x13
	if fontPath != "" {
		if data, err := os.ReadFile(fontPath); err == nil {
			if tt, err := opentype.Parse(data); err == nil {
				if f, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull}); err == nil {
					face = f
				}
			}
		}
	}
	d := &font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
	return src
}

// labelColor picks black or white text depending on the perceived
// brightness of bg, so the hex label stays legible on any swatch color.
func labelColor(bg color.NRGBA) color.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
}
