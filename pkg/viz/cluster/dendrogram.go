package cluster

import (
	"math"
	"sort"
)

// Merge is one UPGMA merge record. Children below the leaf count are
// leaves; larger values index earlier merges (child - n). The flat
// arena avoids parent/child pointer cycles and serializes trivially.
type Merge struct {
	Left   int
	Right  int
	Height float64
	Size   int
}

// Dendrogram is the UPGMA tree over the clustered paths: exactly n-1
// merges for n leaves.
type Dendrogram struct {
	Merges    []Merge
	LeafOrder []int
	MaxHeight float64
}

// Build runs UPGMA over a private copy of the distance matrix,
// repeatedly merging the two closest clusters with the size-weighted
// arithmetic mean linkage update. Merge height is half the distance at
// which the pair merged; ties resolve to the lowest (i, j) in scan
// order, keeping the tree deterministic for a given input order.
//
// constraint optionally carries density-cluster ids: merges within one
// density cluster are preferred over cross-cluster merges, so a
// dendrogram drawn over DBSCAN clusters keeps each cluster contiguous.
func Build(m *Matrix, constraint []int) *Dendrogram {
	n := m.Len()
	if n == 0 {
		return &Dendrogram{}
	}
	if n == 1 {
		return &Dendrogram{LeafOrder: []int{0}}
	}

	dists := m.clone()

	// Active slot i carries the cluster id currently rooted there;
	// -1 marks a slot merged away. Ids 0..n-1 are leaves, n.. merges.
	clusterID := make([]int, n)
	sizes := make([]int, n)
	for i := range clusterID {
		clusterID[i] = i
		sizes[i] = 1
	}

	children := make(map[int][]int, 2*n-1)
	for i := 0; i < n; i++ {
		children[i] = []int{i}
	}

	d := &Dendrogram{Merges: make([]Merge, 0, n-1)}

	for mi := 0; mi < n-1; mi++ {
		minDist := math.MaxFloat64
		minI, minJ := -1, -1

		// Constrained pass: same density cluster only.
		if constraint != nil {
			for i := 0; i < n; i++ {
				if clusterID[i] < 0 {
					continue
				}
				for j := i + 1; j < n; j++ {
					if clusterID[j] < 0 || constraint[i] != constraint[j] {
						continue
					}
					if dists[i][j] < minDist {
						minDist, minI, minJ = dists[i][j], i, j
					}
				}
			}
		}
		if minI < 0 {
			minDist = math.MaxFloat64
			for i := 0; i < n; i++ {
				if clusterID[i] < 0 {
					continue
				}
				for j := i + 1; j < n; j++ {
					if clusterID[j] < 0 {
						continue
					}
					if dists[i][j] < minDist {
						minDist, minI, minJ = dists[i][j], i, j
					}
				}
			}
		}

		newID := n + mi
		leftID, rightID := clusterID[minI], clusterID[minJ]
		leftSize, rightSize := sizes[minI], sizes[minJ]
		newSize := leftSize + rightSize
		height := minDist / 2

		d.Merges = append(d.Merges, Merge{Left: leftID, Right: rightID, Height: height, Size: newSize})
		if height > d.MaxHeight {
			d.MaxHeight = height
		}

		merged := append(append([]int{}, children[leftID]...), children[rightID]...)
		children[newID] = merged

		for k := 0; k < n; k++ {
			if k == minI || k == minJ || clusterID[k] < 0 {
				continue
			}
			nd := (dists[minI][k]*float64(leftSize) + dists[minJ][k]*float64(rightSize)) / float64(newSize)
			dists[minI][k] = nd
			dists[k][minI] = nd
		}

		clusterID[minJ] = -1
		clusterID[minI] = newID
		sizes[minI] = newSize
	}

	d.LeafOrder = children[2*n-2]
	return d
}

// Cut slices the tree at a height threshold: merges at or below the
// threshold stay joined, everything above splits apart. Cluster ids are
// consecutive in leaf index order. Cutting at 0 yields all singletons
// (assuming distinct positive heights); cutting at MaxHeight yields one
// cluster.
func (d *Dendrogram) Cut(threshold float64) []int {
	n := len(d.LeafOrder)
	if n == 0 {
		return nil
	}
	if len(d.Merges) == 0 {
		return []int{0}
	}

	uf := newUnionFind(n)
	for _, mg := range d.Merges {
		if mg.Height <= threshold {
			uf.union(d.leftmostLeaf(mg.Left), d.leftmostLeaf(mg.Right))
		}
	}
	return uf.labels()
}

// leftmostLeaf descends a subtree to its smallest-index leaf, the
// union-find representative for that subtree.
func (d *Dendrogram) leftmostLeaf(node int) int {
	n := len(d.LeafOrder)
	for node >= n {
		idx := node - n
		if idx >= len(d.Merges) {
			return 0
		}
		node = d.Merges[idx].Left
	}
	return node
}

// AutoThreshold picks the highest merge height whose cut still produces
// at least maxClusters clusters; maxClusters <= 0 defaults to roughly
// 11% of the leaf count. Falls back to the smallest merge height when
// no cut reaches the target.
func (d *Dendrogram) AutoThreshold(maxClusters int) float64 {
	if len(d.Merges) == 0 {
		return 0.5
	}
	if maxClusters <= 0 {
		maxClusters = (len(d.LeafOrder) + 8) / 9
	}

	heights := make([]float64, len(d.Merges))
	for i, mg := range d.Merges {
		heights[i] = mg.Height
	}
	sort.Float64s(heights)

	for i := len(heights) - 1; i >= 0; i-- {
		ids := d.Cut(heights[i])
		if numClusters(ids) >= maxClusters {
			return heights[i]
		}
	}
	return heights[0]
}

func numClusters(ids []int) int {
	max := -1
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
