package cluster

// unionFind is a disjoint-set forest with path compression and union by
// rank, shared by the DBSCAN components and the dendrogram cut.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(x, y int) {
	px, py := uf.find(x), uf.find(y)
	if px == py {
		return
	}
	switch {
	case uf.rank[px] < uf.rank[py]:
		uf.parent[px] = py
	case uf.rank[px] > uf.rank[py]:
		uf.parent[py] = px
	default:
		uf.parent[py] = px
		uf.rank[px]++
	}
}

// components counts the distinct sets.
func (uf *unionFind) components() int {
	roots := make(map[int]struct{})
	for i := range uf.parent {
		roots[uf.find(i)] = struct{}{}
	}
	return len(roots)
}

// labels assigns consecutive 0-based ids to the sets in index order.
func (uf *unionFind) labels() []int {
	ids := make([]int, len(uf.parent))
	rootID := make(map[int]int)
	next := 0
	for i := range uf.parent {
		root := uf.find(i)
		id, ok := rootID[root]
		if !ok {
			id = next
			next++
			rootID[root] = id
		}
		ids[i] = id
	}
	return ids
}
