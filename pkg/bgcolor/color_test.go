package bgcolor

import (
	"errors"
	"testing"

	"github.com/Fepozopo/bgone/pkg/bgerr"
)

func TestParseColorShorthandMatchesFull(t *testing.T) {
	got, err := ParseColor("#f00")
	if err != nil {
		t.Fatalf("parse shorthand: %v", err)
	}
	want, err := ParseColor("#ff0000")
	if err != nil {
		t.Fatalf("parse full: %v", err)
	}
	if got != want {
		t.Fatalf("shorthand %v != full %v", got, want)
	}
}

func TestParseColorCaseInsensitiveNoHash(t *testing.T) {
	got, err := ParseColor("FFAA00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != (RGB{0xff, 0xaa, 0x00}) {
		t.Fatalf("got %v", got)
	}
}

func TestParseColorInvalid(t *testing.T) {
	cases := []string{"invalid", "auto", "#12", "#1234567", "zzzzzz"}
	for _, c := range cases {
		if _, err := ParseColor(c); !errors.Is(err, bgerr.ErrInvalidColor) {
			t.Fatalf("ParseColor(%q): expected ErrInvalidColor, got %v", c, err)
		}
	}
}

func TestParseColorRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 23 {
			for b := 0; b < 256; b += 29 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				hex := ToHex(c)
				got, err := ParseColor(hex)
				if err != nil {
					t.Fatalf("ParseColor(%q): %v", hex, err)
				}
				if got != c {
					t.Fatalf("round-trip mismatch: %v -> %q -> %v", c, hex, got)
				}
			}
		}
	}
}

func TestNormalizationRoundTripAllValues(t *testing.T) {
	for r := 0; r < 256; r++ {
		c := RGB{uint8(r), uint8(r), uint8(r)}
		got := NormalizedToColor(ColorToNormalized(c))
		if got != c {
			t.Fatalf("round-trip mismatch at %d: got %v", r, got)
		}
	}
}

func TestCompositeOverBackgroundOpaqueIdentity(t *testing.T) {
	bgs := []RGB{{0, 0, 0}, {255, 255, 255}, {12, 200, 77}}
	for _, bg := range bgs {
		px := RGBA{R: 10, G: 20, B: 30, A: 255}
		out := CompositeOverBackground(px, bg)
		if out != (RGB{10, 20, 30}) {
			t.Fatalf("opaque composite over %v: got %v", bg, out)
		}
	}
}

func TestCompositeOverBackgroundTransparent(t *testing.T) {
	bg := RGB{50, 60, 70}
	px := RGBA{R: 10, G: 20, B: 30, A: 0}
	out := CompositeOverBackground(px, bg)
	if out != bg {
		t.Fatalf("fully transparent composite should equal background, got %v", out)
	}
}
