package bgone

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/bgdetect"
	"github.com/Fepozopo/bgone/pkg/bgerr"
	"github.com/Fepozopo/bgone/pkg/deduce"
	"github.com/Fepozopo/bgone/pkg/driver"
	"github.com/Fepozopo/bgone/pkg/trim"
)

var log = logrus.New()

// Process decodes opts.Input, resolves the background and any AUTO
// foreground slots, runs the pixel driver, optionally trims, and returns
// the encoded PNG bytes. ctx is honored between pipeline stages only — the
// decode/drive/encode stages themselves do not suspend (spec §5).
func Process(ctx context.Context, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := decode(opts.Input)
	if err != nil {
		return nil, err
	}
	nrgba := bgcolor.ToNRGBA(src)

	bg, err := resolveBackground(nrgba, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	basis, err := resolveForeground(nrgba, bg, opts)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"background": bgcolor.ToHex(bg), "basis": len(basis), "strict": opts.Strict}).Debug("running pixel driver")

	out := driver.Run(nrgba, driver.Options{
		Background: bg,
		Basis:      basis,
		Strict:     opts.Strict,
		Threshold:  opts.resolvedThreshold(),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Trim {
		out = trim.Trim(out)
	}

	return encode(out)
}

func decode(input []byte) (image.Image, error) {
	if len(input) == 0 {
		return nil, bgerr.Wrap(bgerr.ErrEmptyImage, "empty input")
	}
	img, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, bgerr.Wrapf(bgerr.ErrDecodeFailed, "decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, bgerr.Wrapf(bgerr.ErrEmptyImage, "dimensions %dx%d", b.Dx(), b.Dy())
	}
	return img, nil
}

func resolveBackground(img image.Image, opts Options) (bgcolor.RGB, error) {
	if opts.Background != nil {
		return *opts.Background, nil
	}
	bg, err := bgdetect.DetectBackground(img)
	if err != nil {
		return bgcolor.RGB{}, err
	}
	log.WithField("background", bgcolor.ToHex(bg)).Debug("detected background")
	return bg, nil
}

// resolveForeground fills AUTO basis slots via the foreground deducer and
// returns the fully-concrete basis list, preserving the declared order.
func resolveForeground(img image.Image, bg bgcolor.RGB, opts Options) ([]bgcolor.RGB, error) {
	if len(opts.Foreground) == 0 {
		return nil, nil
	}
	k := 0
	for _, s := range opts.Foreground {
		if s.Auto {
			k++
		}
	}
	var autoColors []bgcolor.RGB
	if k > 0 {
		var err error
		autoColors, err = deduce.Deduce(img, bg, opts.resolvedThreshold(), k)
		if err != nil {
			return nil, err
		}
		log.WithField("clusters", k).Debug("deduced foreground colors")
	}

	basis := make([]bgcolor.RGB, 0, len(opts.Foreground))
	autoIdx := 0
	for _, s := range opts.Foreground {
		if s.Auto {
			basis = append(basis, autoColors[autoIdx])
			autoIdx++
			continue
		}
		basis = append(basis, s.RGB)
	}
	return basis, nil
}

func encode(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, bgerr.Wrapf(bgerr.ErrEncodeFailed, "encode: %v", err)
	}
	return buf.Bytes(), nil
}
