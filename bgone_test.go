package bgone

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) *image.NRGBA {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return bgcolor.ToNRGBA(img)
}

// S1: 2x2 image, all pixels #ffffff, no options. Output: 2x2, all alpha=0.
func TestProcessScenarioS1(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, white)
		}
	}
	bg := bgcolor.RGB{R: 255, G: 255, B: 255}
	out, err := Process(context.Background(), Options{Input: encodePNG(t, src), Background: &bg})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := decodePNG(t, out)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if a := got.NRGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d,%d) alpha=%d, want 0", x, y, a)
			}
		}
	}
}

// S2: 2x2 image, [#ff0000,#ffffff;#ffffff,#ffffff], bg=#ffffff.
// Output: (0,0)=(255,0,0,255); all others alpha=0.
func TestProcessScenarioS2(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	src.SetNRGBA(0, 0, red)
	src.SetNRGBA(1, 0, white)
	src.SetNRGBA(0, 1, white)
	src.SetNRGBA(1, 1, white)

	bg := bgcolor.RGB{R: 255, G: 255, B: 255}
	out, err := Process(context.Background(), Options{Input: encodePNG(t, src), Background: &bg})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	got := decodePNG(t, out)
	p := got.NRGBAAt(0, 0)
	if p.R != 255 || p.G != 0 || p.B != 0 || p.A != 255 {
		t.Fatalf("pixel (0,0) = %v, want (255,0,0,255)", p)
	}
	for _, pt := range [][2]int{{1, 0}, {0, 1}, {1, 1}} {
		if a := got.NRGBAAt(pt[0], pt[1]).A; a != 0 {
			t.Fatalf("pixel %v alpha=%d, want 0", pt, a)
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 40, A: 255})
		}
	}
	bg := bgcolor.RGB{R: 0, G: 0, B: 40}
	opts := Options{Input: encodePNG(t, src), Background: &bg}

	a, err := Process(context.Background(), opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	b, err := Process(context.Background(), opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("two runs on the same input produced different bytes")
	}
}

func TestProcessEmptyInputFails(t *testing.T) {
	if _, err := Process(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestProcessAsyncMatchesSync(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: 0, B: 0, A: 255})
		}
	}
	bg := bgcolor.RGB{R: 0, G: 0, B: 0}
	opts := Options{Input: encodePNG(t, src), Background: &bg}

	sync_, err := Process(context.Background(), opts)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	fut := ProcessAsync(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	async, err := fut.Wait(ctx)
	if err != nil {
		t.Fatalf("Future.Wait: %v", err)
	}
	if !bytes.Equal(sync_, async) {
		t.Fatalf("sync and async results differ")
	}
}
