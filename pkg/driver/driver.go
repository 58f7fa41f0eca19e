// Package driver runs the per-pixel unmix policy (spec §4.5) over a whole
// decoded image, partitioning work into row-aligned slabs processed by a
// fixed worker pool — the same jobs-channel-plus-WaitGroup shape the
// teacher used to parallelize per-channel Poisson CDF construction,
// generalized here to slabs of image rows.
package driver

import (
	"image"
	"image/color"
	"runtime"
	"sync"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/unmix"
)

// minSlabRows is the minimum number of rows per dispatched unit of work,
// chosen so slab dispatch overhead is amortized over enough pixels.
const minSlabRows = 16

// Options configures a single run of the driver.
type Options struct {
	Background bgcolor.RGB
	Basis      []bgcolor.RGB
	Strict     bool
	Threshold  float32
}

// Run decodes policy over every pixel of src and writes the result into a
// freshly allocated *image.NRGBA the same size as src. Pixel order has no
// effect on the bytes written: each slab writes to a disjoint region of
// the output buffer, so the result is bit-identical regardless of the
// number of workers used.
func Run(src *image.NRGBA, opts Options) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	h := b.Dy()
	if h == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	slabRows := minSlabRows
	if perWorker := (h + workers - 1) / workers; perWorker > slabRows {
		slabRows = perWorker
	}

	type slab struct{ y0, y1 int }
	jobs := make(chan slab, (h+slabRows-1)/slabRows)
	for y0 := b.Min.Y; y0 < b.Max.Y; y0 += slabRows {
		y1 := y0 + slabRows
		if y1 > b.Max.Y {
			y1 = b.Max.Y
		}
		jobs <- slab{y0, y1}
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for s := range jobs {
				processRows(src, out, b, s.y0, s.y1, opts)
			}
		}()
	}
	wg.Wait()
	return out
}

func processRows(src, out *image.NRGBA, b image.Rectangle, y0, y1 int, opts Options) {
	for y := y0; y < y1; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			result := processPixel(pixelRGB(src, x, y), opts)
			out.SetNRGBA(x, y, color.NRGBA{R: result.R, G: result.G, B: result.B, A: result.A})
		}
	}
}

func pixelRGB(src *image.NRGBA, x, y int) bgcolor.RGB {
	p := src.NRGBAAt(x, y)
	return bgcolor.RGB{R: p.R, G: p.G, B: p.B}
}

// processPixel implements the per-pixel policy table of spec §4.5.
func processPixel(c bgcolor.RGB, opts Options) bgcolor.RGBA {
	if c == opts.Background {
		return bgcolor.RGBA{}
	}
	if len(opts.Basis) == 0 {
		return unmix.Solve0(c, opts.Background)
	}

	d := minDistanceToBasis(c, opts.Basis)
	if opts.Strict || d <= opts.Threshold {
		res, err := unmix.UnmixColor(c, opts.Basis, opts.Background)
		if err == nil && res.Feasible {
			return unmix.ComputeUnmixResultColor(res.Weights, res.Alpha, opts.Basis)
		}
		if opts.Strict {
			return strictFallback(c, opts.Background, opts.Basis)
		}
	}
	return unmix.Solve0(c, opts.Background)
}

// strictFallback selects the single basis color minimizing post-clamp
// reconstruction error on c and emits its single-basis unmix result (spec
// §4.5: "On failure in strict mode").
func strictFallback(c, bg bgcolor.RGB, basis []bgcolor.RGB) bgcolor.RGBA {
	bestIdx := 0
	bestErr := float32(-1)
	for i, f := range basis {
		res, err := unmix.UnmixColor(c, []bgcolor.RGB{f}, bg)
		if err != nil {
			continue
		}
		if bestErr < 0 || res.Residual < bestErr {
			bestErr = res.Residual
			bestIdx = i
		}
	}
	res, err := unmix.UnmixColor(c, []bgcolor.RGB{basis[bestIdx]}, bg)
	if err != nil {
		return bgcolor.RGBA{R: basis[bestIdx].R, G: basis[bestIdx].G, B: basis[bestIdx].B, A: 255}
	}
	return unmix.ComputeUnmixResultColor(res.Weights, res.Alpha, []bgcolor.RGB{basis[bestIdx]})
}

func minDistanceToBasis(c bgcolor.RGB, basis []bgcolor.RGB) float32 {
	cn := bgcolor.ColorToNormalized(c)
	best := float32(-1)
	for _, f := range basis {
		d := bgcolor.Distance(cn, bgcolor.ColorToNormalized(f))
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
