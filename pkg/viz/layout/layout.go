// Package layout assigns vertical positions to paths: plain ordered
// rows with cluster gaps, prefix-merged group rows, greedy shelf
// packing, or a single compressed row.
package layout

import (
	"strings"

	"github.com/pangenome/gfalook/pkg/viz/bin"
)

// Span is a vertical pixel range.
type Span struct {
	Y      int
	Height int
}

// Row places one rendered path (or group member) on the canvas.
type Row struct {
	// Path indexes the display path this row renders.
	Path int
	// Label is the text drawn next to the row; only meaningful when
	// FirstInGroup is set.
	Label string
	Span  Span
	// ClusterID is the display cluster, -1 when clustering is off.
	ClusterID int
	// Group is the prefix-merge group index, -1 when merging is off.
	Group int
	// FirstInGroup marks the row that draws the label and side bars.
	FirstInGroup bool
}

// Connector links two pieces of a packed path across a bin gap.
type Connector struct {
	Row     int // index into Plan.Rows
	FromBin int // first empty bin of the gap
	ToBin   int // bin where the path resumes
}

// Plan is a finalized vertical layout.
type Plan struct {
	Rows       []Row
	Height     int // total pixel height of the path area
	PackedRows int // shelf count in packing mode, 0 otherwise
	Connectors []Connector
	Compressed bool
}

// Config carries the row geometry knobs.
type Config struct {
	// PathHeight is the pixel height of one path row.
	PathHeight int
	// ClusterGap is extra pixels inserted between clusters.
	ClusterGap int
}

// Rows lays the paths out one per row in the given order. clusterIDs
// may be nil; when present, a gap of ClusterGap pixels opens wherever
// the cluster changes between adjacent rows.
func Rows(labels []string, clusterIDs []int, cfg Config) *Plan {
	plan := &Plan{Rows: make([]Row, 0, len(labels))}

	gap := 0
	for i, label := range labels {
		cid := -1
		if clusterIDs != nil {
			cid = clusterIDs[i]
			if i > 0 && clusterIDs[i-1] != cid {
				gap += cfg.ClusterGap
			}
		}
		plan.Rows = append(plan.Rows, Row{
			Path:         i,
			Label:        label,
			Span:         Span{Y: i*cfg.PathHeight + gap, Height: cfg.PathHeight},
			ClusterID:    cid,
			Group:        -1,
			FirstInGroup: true,
		})
	}
	plan.Height = len(labels)*cfg.PathHeight + gap
	return plan
}

// Grouped collapses paths sharing a prefix onto one row per group.
// groupOf maps each path to its group index or -1 (excluded from the
// image entirely); the first member of a group carries the label.
func Grouped(groupOf []int, groupLabels []string, cfg Config) *Plan {
	plan := &Plan{Rows: make([]Row, 0, len(groupOf))}

	seen := make([]bool, len(groupLabels))
	for i, grp := range groupOf {
		if grp < 0 {
			continue
		}
		first := !seen[grp]
		seen[grp] = true
		plan.Rows = append(plan.Rows, Row{
			Path:         i,
			Label:        groupLabels[grp],
			Span:         Span{Y: grp * cfg.PathHeight, Height: cfg.PathHeight},
			ClusterID:    -1,
			Group:        grp,
			FirstInGroup: first,
		})
	}
	plan.Height = len(groupLabels) * cfg.PathHeight
	return plan
}

// AssignGroups maps each path name to the first prefix it matches, or
// -1 when none does.
func AssignGroups(names []string, prefixes []string) []int {
	out := make([]int, len(names))
	for i, name := range names {
		out[i] = -1
		for g, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				out[i] = g
				break
			}
		}
	}
	return out
}

// Pack stacks paths into shelf rows by greedy first-fit over their bin
// extents: each path lands in the first shelf whose bins across its
// [MinBin, MaxBin] span are all free, opening a new shelf when none
// fits. Paths keep their input order. Rows with no occupied bins go to
// shelf 0 without reserving space.
func Pack(labels []string, m *bin.Matrix, cfg Config) *Plan {
	plan := &Plan{Rows: make([]Row, 0, len(labels))}

	occupancy := [][]bool{make([]bool, m.Bins)}
	for i, label := range labels {
		ext := m.Rows[i]
		shelf := 0
		if ext.Occupied() {
			shelf = -1
			for s := range occupancy {
				if fits(occupancy[s], ext.MinBin, ext.MaxBin) {
					shelf = s
					break
				}
			}
			if shelf < 0 {
				occupancy = append(occupancy, make([]bool, m.Bins))
				shelf = len(occupancy) - 1
			}
			for b := ext.MinBin; b <= ext.MaxBin; b++ {
				occupancy[shelf][b] = true
			}
		}
		plan.Rows = append(plan.Rows, Row{
			Path:         i,
			Label:        label,
			Span:         Span{Y: shelf * cfg.PathHeight, Height: cfg.PathHeight},
			ClusterID:    -1,
			Group:        -1,
			FirstInGroup: true,
		})
	}

	plan.PackedRows = len(occupancy)
	plan.Height = plan.PackedRows * cfg.PathHeight
	plan.Connectors = Connectors(m)
	return plan
}

func fits(shelf []bool, lo, hi int) bool {
	if hi > len(shelf)-1 {
		hi = len(shelf) - 1
	}
	for b := lo; b <= hi; b++ {
		if shelf[b] {
			return false
		}
	}
	return true
}

// Connectors emits one directive per gap in a path's occupied bins, so
// the renderer can join discontinuous pieces with a thin line.
func Connectors(m *bin.Matrix) []Connector {
	var out []Connector
	for i, row := range m.Rows {
		if !row.Occupied() {
			continue
		}
		prev := -1
		for b := row.MinBin; b <= row.MaxBin; b++ {
			if row.Profiles[b].Coverage == 0 {
				continue
			}
			if prev >= 0 && b > prev+1 {
				out = append(out, Connector{Row: i, FromBin: prev + 1, ToBin: b})
			}
			prev = b
		}
	}
	return out
}

// Compressed is the single aggregate row covering every path.
func Compressed(cfg Config) *Plan {
	return &Plan{
		Rows: []Row{{
			Path:         0,
			Label:        "COMPRESSED_MODE",
			Span:         Span{Y: 0, Height: cfg.PathHeight},
			ClusterID:    -1,
			Group:        -1,
			FirstInGroup: true,
		}},
		Height:     cfg.PathHeight,
		Compressed: true,
	}
}
