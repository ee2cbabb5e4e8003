// Package bin projects paths onto the shared pangenomic axis and
// aggregates per-bin statistics. Bin profiles are computed once per
// path and read-only afterwards.
package bin

import (
	"math"
	"sync"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// Profile holds the aggregated statistics of one (path, bin) cell.
// Coverage and Reverse are exact base counts; the Mean* fields are
// filled in by finalize and are what the color engine consumes.
type Profile struct {
	Coverage uint64
	Reverse  uint64
	PosSum   float64
	Uncalled float64

	MeanDepth    float64
	MeanInv      float64
	MeanPos      float64
	MeanUncalled float64

	Highlighted bool
}

// Row is one path's dense bin profile plus its occupied extent.
type Row struct {
	Profiles []Profile
	MinBin   int
	MaxBin   int
}

// Occupied reports whether the row touches any bin at all.
func (r *Row) Occupied() bool {
	return r.MinBin <= r.MaxBin
}

// Matrix is the paths x bins profile grid.
type Matrix struct {
	Bins     int
	BinWidth float64
	Rows     []Row
}

// Binner projects paths onto bins of fixed pangenomic width.
type Binner struct {
	graph      *gfa.Graph
	binWidth   float64
	bins       int
	start, end uint64 // pangenomic window, half-open
	highlights map[int]bool
}

// Config controls how a Binner divides the pangenomic axis.
type Config struct {
	// Width is the requested bin count (usually the image width in
	// pixels). Ignored when BinWidth is set explicitly.
	Width int
	// BinWidth overrides the derived bin width when > 0.
	BinWidth float64
	// Window restricts binning to a pangenomic interval; nil means the
	// whole graph.
	Window *Window
	// Highlights marks segments whose bins get the Highlighted flag.
	Highlights map[int]bool
}

// Window is a half-open pangenomic interval.
type Window struct {
	Start, End uint64
}

// New builds a Binner for the graph. The bin width defaults to window
// span divided by the requested width, so the whole span maps onto
// exactly Width bins.
func New(g *gfa.Graph, cfg Config) *Binner {
	start, end := uint64(0), g.TotalLength
	if cfg.Window != nil {
		start, end = cfg.Window.Start, cfg.Window.End
		if end > g.TotalLength {
			end = g.TotalLength
		}
	}
	span := end - start

	width := cfg.Width
	if width <= 0 {
		width = 1
	}
	if uint64(width) > span && span > 0 {
		width = int(span)
	}

	binWidth := cfg.BinWidth
	if binWidth <= 0 {
		binWidth = float64(span) / float64(width)
	}
	bins := width
	if cfg.BinWidth > 0 && span > 0 {
		bins = int(math.Ceil(float64(span) / binWidth))
	}
	if bins < 1 {
		bins = 1
	}

	return &Binner{
		graph:      g,
		binWidth:   binWidth,
		bins:       bins,
		start:      start,
		end:        end,
		highlights: cfg.Highlights,
	}
}

// Bins returns the bin count.
func (b *Binner) Bins() int { return b.bins }

// BinWidth returns the pangenomic width of one bin in bases.
func (b *Binner) BinWidth() float64 { return b.binWidth }

// BinOf maps a pangenomic position inside the window to its bin index.
func (b *Binner) BinOf(pos uint64) int {
	idx := int(float64(pos-b.start) / b.binWidth)
	if idx > b.bins-1 {
		idx = b.bins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Profiles computes the bin profile matrix for the given paths. Each
// path is binned on its own goroutine writing a disjoint row, so no
// locking is needed.
func (b *Binner) Profiles(paths []*gfa.Path) *Matrix {
	m := &Matrix{
		Bins:     b.bins,
		BinWidth: b.binWidth,
		Rows:     make([]Row, len(paths)),
	}

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p *gfa.Path) {
			defer wg.Done()
			m.Rows[i] = b.profilePath(p)
		}(i, p)
	}
	wg.Wait()
	return m
}

// profilePath walks one path accumulating per-bin statistics. Steps are
// split into runs of consecutive bases sharing a bin, so contributions
// are exact integer arithmetic per run rather than per base: the summed
// Coverage over all bins equals the path's traversed length exactly,
// and a step shorter than one bin still lands its full base weight.
func (b *Binner) profilePath(p *gfa.Path) Row {
	row := Row{
		Profiles: make([]Profile, b.bins),
		MinBin:   b.bins,
		MaxBin:   -1,
	}

	var pathPos uint64
	for _, st := range p.Steps {
		seg := b.graph.Segments[st.Segment]
		offset := b.graph.Offsets[st.Segment]
		segLen := seg.Length
		if segLen == 0 {
			continue
		}

		var nProp float64
		if seg.Uncalled > 0 {
			nProp = float64(seg.Uncalled) / float64(segLen)
		}
		hit := b.highlights != nil && b.highlights[st.Segment]

		pos := offset
		remaining := segLen
		for remaining > 0 {
			// Clip against the window; path position still advances
			// over skipped bases so gradients stay anchored.
			if pos < b.start {
				skip := b.start - pos
				if skip >= remaining {
					pathPos += remaining
					remaining = 0
					break
				}
				pos += skip
				pathPos += skip
				remaining -= skip
			}
			if pos >= b.end {
				pathPos += remaining
				break
			}

			binIdx := b.BinOf(pos)
			binEnd := b.start + uint64(math.Ceil(float64(binIdx+1)*b.binWidth))
			if binEnd <= pos {
				binEnd = pos + 1
			}
			run := binEnd - pos
			if run > remaining {
				run = remaining
			}
			if pos+run > b.end {
				run = b.end - pos
			}

			pr := &row.Profiles[binIdx]
			pr.Coverage += run
			if st.Reverse {
				pr.Reverse += run
			}
			// Sum of pathPos..pathPos+run-1.
			pr.PosSum += float64(run)*float64(pathPos) + float64(run)*float64(run-1)/2
			pr.Uncalled += float64(run) * nProp
			if hit {
				pr.Highlighted = true
			}

			if binIdx < row.MinBin {
				row.MinBin = binIdx
			}
			if binIdx > row.MaxBin {
				row.MaxBin = binIdx
			}

			pos += run
			pathPos += run
			remaining -= run
		}
	}

	finalize(&row, b.binWidth)
	return row
}

// finalize derives the mean statistics from the raw tallies.
func finalize(row *Row, binWidth float64) {
	for i := range row.Profiles {
		pr := &row.Profiles[i]
		if pr.Coverage == 0 {
			continue
		}
		cov := float64(pr.Coverage)
		pr.MeanPos = pr.PosSum / cov
		pr.MeanUncalled = pr.Uncalled / cov
		pr.MeanInv = float64(pr.Reverse) / cov
		pr.MeanDepth = cov / binWidth
	}
}

// Compress collapses all rows into one whose per-bin mean depth is the
// arithmetic mean of the individual paths' depths.
func Compress(m *Matrix) Row {
	row := Row{
		Profiles: make([]Profile, m.Bins),
		MinBin:   m.Bins,
		MaxBin:   -1,
	}
	if len(m.Rows) == 0 {
		return row
	}

	for _, r := range m.Rows {
		for i := range r.Profiles {
			row.Profiles[i].Coverage += r.Profiles[i].Coverage
		}
	}
	n := float64(len(m.Rows))
	for i := range row.Profiles {
		pr := &row.Profiles[i]
		if pr.Coverage == 0 {
			continue
		}
		pr.MeanDepth = float64(pr.Coverage) / m.BinWidth / n
		if i < row.MinBin {
			row.MinBin = i
		}
		if i > row.MaxBin {
			row.MaxBin = i
		}
	}
	return row
}
