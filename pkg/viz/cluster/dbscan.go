package cluster

// DBSCAN labels paths by density clustering with minPts=1, which
// reduces to connected components over the graph joining pairs within
// eps distance. Ids are consecutive in index order.
func DBSCAN(m *Matrix, eps float64) []int {
	n := m.Len()
	if n == 0 {
		return nil
	}
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.At(i, j) <= eps {
				uf.union(i, j)
			}
		}
	}
	return uf.labels()
}

func dbscanComponents(m *Matrix, eps float64) int {
	n := m.Len()
	if n == 0 {
		return 0
	}
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.At(i, j) <= eps {
				uf.union(i, j)
			}
		}
	}
	return uf.components()
}

// AutoEps scans eps from 0 to 0.30 in 0.005 steps until the cluster
// count stabilizes (changes by at most 1 between steps, or jumps
// straight under the target) at no more than maxClusters clusters.
// maxClusters <= 0 defaults to roughly 11% of the path count. Returns
// 0.30 when no stabilization point is found.
func AutoEps(m *Matrix, maxClusters int) float64 {
	if m.Len() == 0 {
		return 0.30
	}
	if maxClusters <= 0 {
		maxClusters = (m.Len() + 8) / 9
	}

	prev := dbscanComponents(m, 0)
	for step := 1; step <= 60; step++ {
		eps := float64(step) * 0.005
		curr := dbscanComponents(m, eps)

		change := prev - curr
		if change < 0 {
			change = -change
		}
		firstHitMax := prev > maxClusters && curr <= maxClusters

		if (change <= 1 || firstHitMax) && curr <= maxClusters {
			return eps
		}
		prev = curr
	}
	return 0.30
}
