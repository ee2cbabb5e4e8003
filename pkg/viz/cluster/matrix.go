package cluster

import (
	"sync"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// Matrix is a dense symmetric distance matrix with a zero diagonal.
// It is populated once before clustering starts and read-only after.
type Matrix struct {
	n int
	d [][]float64
}

// NewMatrix allocates an n x n zero matrix.
func NewMatrix(n int) *Matrix {
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	return &Matrix{n: n, d: d}
}

// Len returns the number of paths covered by the matrix.
func (m *Matrix) Len() int { return m.n }

// At returns the distance between paths i and j.
func (m *Matrix) At(i, j int) float64 { return m.d[i][j] }

// Set stores a symmetric entry.
func (m *Matrix) Set(i, j int, v float64) {
	m.d[i][j] = v
	m.d[j][i] = v
}

// Raw exposes the backing rows for serialization. Callers must not
// mutate the returned slices.
func (m *Matrix) Raw() [][]float64 { return m.d }

// FromRaw wraps deserialized rows in a Matrix without copying.
func FromRaw(d [][]float64) *Matrix {
	return &Matrix{n: len(d), d: d}
}

// clone returns a private working copy for the UPGMA routine to mutate.
func (m *Matrix) clone() [][]float64 {
	d := make([][]float64, m.n)
	for i := range d {
		d[i] = make([]float64, m.n)
		copy(d[i], m.d[i])
	}
	return d
}

// Distances computes the normalized pairwise dissimilarity matrix for
// the given paths. Per path, base-pair weighted node counts feed a
// weighted Jaccard similarity (sum of per-node minimums over the union
// mass); that converts to an estimated difference rate
// (1-J)/(1+J), and the matrix is normalized by its maximum entry so
// distances lie in [0,1].
//
// By default only variable nodes (those whose bp count differs between
// paths) enter the metric, which sharpens contrast when most of the
// graph is shared; allNodes uses every traversed node instead. The
// returned totals are each path's bp mass over the counted nodes, used
// downstream to seed the within-cluster ordering.
func Distances(g *gfa.Graph, paths []*gfa.Path, allNodes bool) (*Matrix, []uint64) {
	n := len(paths)

	counts := make([]map[int]uint64, n)
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p *gfa.Path) {
			defer wg.Done()
			c := make(map[int]uint64)
			for _, st := range p.Steps {
				c[st.Segment] += g.Segments[st.Segment].Length
			}
			counts[i] = c
		}(i, p)
	}
	wg.Wait()

	if !allNodes {
		counts = filterVariableNodes(counts)
	}

	totals := make([]uint64, n)
	for i, c := range counts {
		for _, bp := range c {
			totals[i] += bp
		}
	}

	m := NewMatrix(n)
	var maxEDR float64
	var mu sync.Mutex
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rowMax := 0.0
			for j := i + 1; j < n; j++ {
				jac := weightedJaccard(counts[i], counts[j], totals[i], totals[j])
				edr := (1.0 - jac) / (1.0 + jac)
				m.d[i][j] = edr
				m.d[j][i] = edr
				if edr > rowMax {
					rowMax = edr
				}
			}
			mu.Lock()
			if rowMax > maxEDR {
				maxEDR = rowMax
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	if maxEDR > 0 {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					m.d[i][j] /= maxEDR
				}
			}
		}
	}
	return m, totals
}

// filterVariableNodes drops nodes whose bp count is identical across
// every path.
func filterVariableNodes(counts []map[int]uint64) []map[int]uint64 {
	if len(counts) == 0 {
		return counts
	}

	nodes := make(map[int]struct{})
	for _, c := range counts {
		for node := range c {
			nodes[node] = struct{}{}
		}
	}

	variable := make(map[int]struct{})
	for node := range nodes {
		first := counts[0][node]
		for _, c := range counts[1:] {
			if c[node] != first {
				variable[node] = struct{}{}
				break
			}
		}
	}

	filtered := make([]map[int]uint64, len(counts))
	for i, c := range counts {
		f := make(map[int]uint64)
		for node, bp := range c {
			if _, ok := variable[node]; ok {
				f[node] = bp
			}
		}
		filtered[i] = f
	}
	return filtered
}

// weightedJaccard is the base-pair weighted Jaccard similarity: the sum
// of per-node minimums over the union mass.
func weightedJaccard(a, b map[int]uint64, bpA, bpB uint64) float64 {
	if bpA == 0 && bpB == 0 {
		return 1.0
	}
	var intersection uint64
	for node, x := range a {
		if y, ok := b[node]; ok {
			if y < x {
				intersection += y
			} else {
				intersection += x
			}
		}
	}
	union := bpA + bpB - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
