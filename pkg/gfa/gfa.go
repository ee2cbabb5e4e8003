// Package gfa holds the in-memory variation graph model and the reader
// for the GFA exchange format it is loaded from.
package gfa

// Segment is one unit of shared sequence. Segments are immutable once
// parsed and referenced by index everywhere else.
type Segment struct {
	Length   uint64
	Uncalled uint64 // number of N bases in the sequence
}

// Step is one oriented traversal of a segment.
type Step struct {
	Segment int
	Reverse bool
}

// Path is an ordered traversal of oriented segments, typically one
// haplotype's route through the graph.
type Path struct {
	Name  string
	Steps []Step
}

// Edge joins two oriented segment ends. Edges are stored in canonical
// direction (lower segment index first) so a link and its reverse
// complement collapse to one record.
type Edge struct {
	From    int
	FromRev bool
	To      int
	ToRev   bool
}

// Graph is the parsed variation graph. Offsets assigns every segment a
// pangenomic coordinate by prefix sum over file order, giving the shared
// x-axis all binning works in.
type Graph struct {
	Segments    []Segment
	Names       []string
	Offsets     []uint64
	TotalLength uint64
	Paths       []Path
	Edges       []Edge

	// Checksum is the hex SHA-256 of the source bytes, used to key
	// cached derived matrices.
	Checksum string

	index map[string]int
}

// SegmentID returns the index for a segment name.
func (g *Graph) SegmentID(name string) (int, bool) {
	id, ok := g.index[name]
	return id, ok
}

// PathLength returns the total traversed base length of a path.
func (g *Graph) PathLength(p *Path) uint64 {
	var n uint64
	for _, s := range p.Steps {
		n += g.Segments[s.Segment].Length
	}
	return n
}

// Path returns the path with the given name, or nil.
func (g *Graph) Path(name string) *Path {
	for i := range g.Paths {
		if g.Paths[i].Name == name {
			return &g.Paths[i]
		}
	}
	return nil
}

// canonical returns the edge in normalized direction: the lower segment
// index comes first; flipping swaps the endpoints and both orientations.
func canonical(e Edge) Edge {
	if e.From > e.To || (e.From == e.To && e.FromRev && !e.ToRev) {
		return Edge{From: e.To, FromRev: !e.ToRev, To: e.From, ToRev: !e.FromRev}
	}
	return e
}
