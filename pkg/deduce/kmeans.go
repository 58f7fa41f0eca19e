package deduce

import (
	"math/rand"

	"github.com/Fepozopo/bgone/pkg/bgcolor"
)

// seedClusters picks k initial centroids from candidates using k-means++:
// the first is chosen uniformly at random, each subsequent one is chosen
// with probability proportional to its squared distance from the nearest
// already-chosen centroid. The PRNG is seeded with the fixed package-level
// seed so the same candidate set always yields the same clusters.
func seedClusters(candidates []bgcolor.RGB, k int) []cluster {
	rng := rand.New(rand.NewSource(seed))
	clusters := make([]cluster, 0, k)

	first := candidates[rng.Intn(len(candidates))]
	clusters = append(clusters, newCluster(first))

	for len(clusters) < k {
		weights := make([]float64, len(candidates))
		var total float64
		for i, c := range candidates {
			d := nearestSqDist(clusters, c)
			weights[i] = d
			total += d
		}
		if total == 0 {
			// Every remaining candidate already matches a chosen centroid;
			// fall back to uniform choice among them.
			clusters = append(clusters, newCluster(candidates[rng.Intn(len(candidates))]))
			continue
		}
		pick := rng.Float64() * total
		var idx int
		var running float64
		for i, w := range weights {
			running += w
			if running >= pick {
				idx = i
				break
			}
		}
		clusters = append(clusters, newCluster(candidates[idx]))
	}
	return clusters
}

func newCluster(c bgcolor.RGB) cluster {
	return cluster{centroid: [3]float64{float64(c.R), float64(c.G), float64(c.B)}}
}

func nearestSqDist(clusters []cluster, c bgcolor.RGB) float64 {
	best := sqDist(clusters[0].centroid, c)
	for i := 1; i < len(clusters); i++ {
		if d := sqDist(clusters[i].centroid, c); d < best {
			best = d
		}
	}
	return best
}
