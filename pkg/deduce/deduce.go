// Package deduce fills AUTO foreground slots by clustering the image's own
// pixels into likely foreground colors, grounded on the Chromium
// dominantcolor k-means approach: seed centroids, iterate assignment and
// recentering to a fixed point, then sort by population.
package deduce

import (
	"image"
	"sort"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
	"github.com/Fepozopo/bgone/pkg/bgerr"
	"github.com/Fepozopo/bgone/pkg/unmix"
)

// seed fixes the PRNG used for k-means++ centroid seeding so that
// deduction is reproducible across runs on the same image.
const seed = 20060102

// maxIterations bounds the k-means refinement loop (spec §4.4 step 3).
const maxIterations = 32

// Deduce fills k AUTO foreground slots by: collecting unique observed
// colors at least threshold away from bg, mapping each to its implied pure
// foreground (§4.3.3), discarding out-of-gamut implied colors, clustering
// the survivors into k groups, and returning their centroids sorted by
// descending cluster population. Fails with bgerr.ErrInsufficientColors if
// fewer than k distinct clusters can be formed.
func Deduce(img image.Image, bg bgcolor.RGB, threshold float32, k int) ([]bgcolor.RGB, error) {
	candidates := CollectCandidates(img, bg, threshold)
	points := ImpliedForegrounds(candidates, bg)
	return Cluster(points, k)
}

// candidateThresholdScale converts a threshold on the Glossary's [0,1]
// scale (where 1 means the maximum possible normalized RGB distance, √3)
// into the raw normalized-Euclidean-distance scale bgcolor.Distance
// returns, matching §4.4 step 1's "threshold=1 means √3" definition.
const candidateThresholdScale = float32(1.7320508) // sqrt(3)

// CollectCandidates returns the unique observed colors in img whose
// normalized Euclidean distance to bg exceeds threshold, scaled so
// threshold=1 corresponds to the maximum possible distance √3 (spec §4.4
// step 1). Iteration order is row-major so output order is deterministic.
func CollectCandidates(img image.Image, bg bgcolor.RGB, threshold float32) []bgcolor.RGB {
	seen := map[bgcolor.RGB]bool{}
	var out []bgcolor.RGB
	b := img.Bounds()
	g := bgcolor.ColorToNormalized(bg)
	cutoff := threshold * candidateThresholdScale
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, gg, bb, _ := img.At(x, y).RGBA()
			c := bgcolor.RGB{R: uint8(r >> 8), G: uint8(gg >> 8), B: uint8(bb >> 8)}
			if seen[c] {
				continue
			}
			seen[c] = true
			if bgcolor.Distance(bgcolor.ColorToNormalized(c), g) > cutoff {
				out = append(out, c)
			}
		}
	}
	return out
}

// ImpliedForegrounds maps each candidate to its implied pure-foreground
// color via the zero-basis solve, dropping any whose implied color falls
// outside [0,1]^3 (spec §4.4 step 2).
func ImpliedForegrounds(candidates []bgcolor.RGB, bg bgcolor.RGB) []bgcolor.RGB {
	out := make([]bgcolor.RGB, 0, len(candidates))
	for _, c := range candidates {
		e, _, ok := unmix.ImpliedForeground(c, bg)
		if !ok {
			continue
		}
		out = append(out, bgcolor.NormalizedToColor(e))
	}
	return out
}

type cluster struct {
	centroid   [3]float64
	sumR       float64
	sumG       float64
	sumB       float64
	population int
}

// Cluster runs k-means++ over points with k centroids and returns their
// final centroids sorted by descending population, snapped to the nearest
// 8-bit color. Fails if fewer than k distinct colors are present.
func Cluster(points []bgcolor.RGB, k int) ([]bgcolor.RGB, error) {
	if k <= 0 {
		return nil, nil
	}
	unique := uniqueColors(points)
	if len(unique) < k {
		return nil, bgerr.Wrapf(bgerr.ErrInsufficientColors, "need %d distinct candidate colors, found %d", k, len(unique))
	}

	clusters := seedClusters(unique, k)

	for iter := 0; iter < maxIterations; iter++ {
		for i := range clusters {
			clusters[i].sumR, clusters[i].sumG, clusters[i].sumB = 0, 0, 0
			clusters[i].population = 0
		}
		for _, p := range points {
			idx := closestCluster(clusters, p)
			clusters[idx].sumR += float64(p.R)
			clusters[idx].sumG += float64(p.G)
			clusters[idx].sumB += float64(p.B)
			clusters[idx].population++
		}
		converged := true
		for i := range clusters {
			if clusters[i].population == 0 {
				continue
			}
			newR := clusters[i].sumR / float64(clusters[i].population)
			newG := clusters[i].sumG / float64(clusters[i].population)
			newB := clusters[i].sumB / float64(clusters[i].population)
			if newR != clusters[i].centroid[0] || newG != clusters[i].centroid[1] || newB != clusters[i].centroid[2] {
				converged = false
			}
			clusters[i].centroid = [3]float64{newR, newG, newB}
		}
		if converged {
			break
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].population > clusters[j].population
	})

	out := make([]bgcolor.RGB, k)
	for i, c := range clusters {
		out[i] = bgcolor.RGB{
			R: snap(c.centroid[0]),
			G: snap(c.centroid[1]),
			B: snap(c.centroid[2]),
		}
	}
	return out, nil
}

func uniqueColors(points []bgcolor.RGB) []bgcolor.RGB {
	seen := map[bgcolor.RGB]bool{}
	var out []bgcolor.RGB
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func closestCluster(clusters []cluster, p bgcolor.RGB) int {
	best := 0
	bestDist := sqDist(clusters[0].centroid, p)
	for i := 1; i < len(clusters); i++ {
		if d := sqDist(clusters[i].centroid, p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func sqDist(centroid [3]float64, p bgcolor.RGB) float64 {
	dr := centroid[0] - float64(p.R)
	dg := centroid[1] - float64(p.G)
	db := centroid[2] - float64(p.B)
	return dr*dr + dg*dg + db*db
}

func snap(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
