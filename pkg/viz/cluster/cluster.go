// Package cluster groups paths by traversal similarity: a weighted
// Jaccard distance matrix feeds either DBSCAN density clustering or a
// UPGMA dendrogram cut, with medoid selection and row ordering on top.
package cluster

import (
	"math"
	"sort"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// Config selects the clustering algorithm and its thresholds.
type Config struct {
	// UseUPGMA cuts the UPGMA tree instead of running DBSCAN.
	UseUPGMA bool
	// Threshold is the DBSCAN similarity threshold in [0,1]; eps is
	// 1-Threshold. Negative means automatic eps selection.
	Threshold float64
	// UPGMAThreshold is the tree cut height as a fraction of the
	// maximum merge height. Negative means automatic selection.
	UPGMAThreshold float64
	// MaxClusters caps the automatic threshold searches; <= 0 derives
	// roughly 11% of the path count.
	MaxClusters int
	// Dendrogram requests tree construction in DBSCAN mode too, with
	// merging constrained to keep density clusters contiguous.
	Dendrogram bool
	// AllNodes disables the variable-node filter on the distance
	// metric.
	AllNodes bool
}

// Result is the outcome of one clustering run.
type Result struct {
	// Order lists path indices in display order.
	Order []int
	// ClusterIDs is parallel to Order.
	ClusterIDs []int
	// NumClusters counts distinct clusters.
	NumClusters int
	// Medoids holds one representative path index per display cluster,
	// parallel to Sizes; clusters are in size-descending order.
	Medoids []int
	Sizes   []int

	Dendrogram *Dendrogram
	Matrix     *Matrix
}

// Paths groups paths by similarity and derives the display order. The
// distance matrix is built once; DBSCAN or a UPGMA cut assigns cluster
// ids; each cluster gets a medoid; and rows order clusters largest
// first with a greedy nearest-neighbor walk inside each cluster,
// starting from the member with the most bases. When a dendrogram is
// built its leaf order supersedes the greedy order.
func Paths(g *gfa.Graph, paths []*gfa.Path, cfg Config) *Result {
	if len(paths) == 0 {
		return &Result{}
	}
	m, totals := Distances(g, paths, cfg.AllNodes)
	return FromDistances(m, totals, cfg)
}

// FromDistances runs the clustering stages on a prebuilt distance
// matrix. totals holds each path's traversed base count and only
// influences the greedy within-cluster ordering.
func FromDistances(m *Matrix, totals []uint64, cfg Config) *Result {
	var assignments []int
	var dendro *Dendrogram

	if cfg.UseUPGMA {
		dendro = Build(m, nil)
		cut := cfg.UPGMAThreshold
		if cut >= 0 {
			cut *= dendro.MaxHeight
		} else {
			cut = dendro.AutoThreshold(cfg.MaxClusters)
		}
		assignments = dendro.Cut(cut)
	} else {
		eps := cfg.Threshold
		if eps >= 0 {
			eps = 1.0 - eps
		} else {
			eps = AutoEps(m, cfg.MaxClusters)
		}
		assignments = DBSCAN(m, eps)
		if cfg.Dendrogram {
			dendro = Build(m, assignments)
		}
	}

	num := numClusters(assignments)
	members := make([][]int, num)
	for i, c := range assignments {
		members[c] = append(members[c], i)
	}
	// Largest clusters first; stable so equal sizes keep id order.
	sort.SliceStable(members, func(a, b int) bool {
		return len(members[a]) > len(members[b])
	})

	res := &Result{
		NumClusters: num,
		Medoids:     make([]int, 0, num),
		Sizes:       make([]int, 0, num),
		Dendrogram:  dendro,
		Matrix:      m,
	}

	for _, mem := range members {
		res.Sizes = append(res.Sizes, len(mem))
		res.Medoids = append(res.Medoids, Medoid(mem, m))
	}

	if dendro != nil {
		// Leaf order keeps subtrees contiguous, which reads better
		// under a drawn tree than the greedy order.
		for _, idx := range dendro.LeafOrder {
			res.Order = append(res.Order, idx)
			res.ClusterIDs = append(res.ClusterIDs, assignments[idx])
		}
		return res
	}

	for clusterID, mem := range members {
		for _, idx := range orderGreedy(mem, m, totals) {
			res.Order = append(res.Order, idx)
			res.ClusterIDs = append(res.ClusterIDs, clusterID)
		}
	}
	return res
}

// Medoid returns the member with the minimal average distance to the
// rest of its cluster; a singleton is its own medoid.
func Medoid(members []int, m *Matrix) int {
	if len(members) == 1 {
		return members[0]
	}
	best := members[0]
	bestAvg := math.MaxFloat64
	for _, candidate := range members {
		var sum float64
		for _, other := range members {
			if other != candidate {
				sum += m.At(candidate, other)
			}
		}
		avg := sum / float64(len(members)-1)
		if avg < bestAvg {
			bestAvg = avg
			best = candidate
		}
	}
	return best
}

// orderGreedy walks the cluster members nearest-neighbor first,
// starting from the member with the most bases.
func orderGreedy(members []int, m *Matrix, totals []uint64) []int {
	if len(members) <= 1 {
		return members
	}

	start := 0
	for i, idx := range members {
		if totals[idx] > totals[members[start]] {
			start = i
		}
	}

	placed := make([]bool, len(members))
	placed[start] = true
	out := []int{members[start]}
	current := start

	for len(out) < len(members) {
		best := -1
		bestDist := math.MaxFloat64
		for i, idx := range members {
			if placed[i] {
				continue
			}
			if d := m.At(members[current], idx); d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best < 0 {
			break
		}
		placed[best] = true
		out = append(out, members[best])
		current = best
	}
	return out
}
