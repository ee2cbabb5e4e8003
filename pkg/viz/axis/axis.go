// Package axis converts bin indices to displayable x-axis coordinates,
// either in pangenomic order or in a chosen reference path's own
// coordinate system.
package axis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// Mapper projects between bin indices and displayed coordinates. One
// mapping serves both the plotted axis and its labels, so labels always
// land on true bin boundaries.
type Mapper struct {
	// Label is the axis caption: "pangenomic" or the reference path
	// name (range-stripped in absolute mode).
	Label string
	// CoordStart/CoordEnd bound the displayed coordinate values.
	CoordStart, CoordEnd uint64
	// BinStart/BinEnd bound the bins the axis spans, half-open.
	BinStart, BinEnd int
}

// Tick is one labeled axis position.
type Tick struct {
	Bin   int
	Coord uint64
	Label string
}

// pangenomicLabel is the coordSystem value selecting graph order.
const pangenomicLabel = "pangenomic"

// New builds a Mapper for the requested coordinate system. "pangenomic"
// (case-insensitive) spans the whole bin range over the total graph
// length. A path name spans that path's length over the bins its
// pangenomic extent covers; absolute mode offsets coordinates by the
// start parsed from a "name:start-end" subpath name and strips the
// range from the label. An unknown path name falls back to pangenomic
// coordinates; the second return reports whether that happened.
func New(g *gfa.Graph, coordSystem string, absolute bool, binWidth float64, bins int) (*Mapper, bool) {
	if strings.EqualFold(coordSystem, pangenomicLabel) {
		return &Mapper{
			Label:      pangenomicLabel,
			CoordStart: 0,
			CoordEnd:   g.TotalLength,
			BinStart:   0,
			BinEnd:     bins,
		}, false
	}

	p := g.Path(coordSystem)
	if p == nil || len(p.Steps) == 0 {
		return &Mapper{
			Label:      pangenomicLabel,
			CoordStart: 0,
			CoordEnd:   g.TotalLength,
			BinStart:   0,
			BinEnd:     bins,
		}, true
	}

	var pathLen uint64
	first := p.Steps[0]
	pangStart := g.Offsets[first.Segment]
	var pangEnd uint64
	for _, st := range p.Steps {
		pathLen += g.Segments[st.Segment].Length
		pangEnd = g.Offsets[st.Segment] + g.Segments[st.Segment].Length
	}

	binStart := int(float64(pangStart) / binWidth)
	binEnd := int(float64(pangEnd) / binWidth)
	if binStart > bins {
		binStart = bins
	}
	if binEnd > bins {
		binEnd = bins
	}

	var offset uint64
	label := coordSystem
	if absolute {
		offset = ParseSubpathStart(coordSystem)
		label = StripSubpathRange(coordSystem)
	}

	return &Mapper{
		Label:      label,
		CoordStart: offset,
		CoordEnd:   offset + pathLen,
		BinStart:   binStart,
		BinEnd:     binEnd,
	}, false
}

// span returns the axis width in bins, at least 1.
func (m *Mapper) span() int {
	w := m.BinEnd - m.BinStart
	if w < 1 {
		return 1
	}
	return w
}

// CoordAt maps a bin index to its displayed coordinate.
func (m *Mapper) CoordAt(binIdx int) float64 {
	w := m.span() - 1
	if w < 1 {
		return float64(m.CoordStart)
	}
	t := float64(binIdx-m.BinStart) / float64(w)
	return float64(m.CoordStart) + t*float64(m.CoordEnd-m.CoordStart)
}

// BinAt inverts CoordAt: the bin whose boundary displays the given
// coordinate.
func (m *Mapper) BinAt(coord float64) int {
	span := float64(m.CoordEnd - m.CoordStart)
	if span <= 0 {
		return m.BinStart
	}
	t := (coord - float64(m.CoordStart)) / span
	return m.BinStart + int(t*float64(m.span()-1)+0.5)
}

// Ticks places n evenly spaced ticks across the axis span, labels
// re-derived through CoordAt. Always at least 2 ticks.
func (m *Mapper) Ticks(n int) []Tick {
	if n < 2 {
		n = 2
	}
	ticks := make([]Tick, 0, n)
	w := m.span() - 1
	if w < 0 {
		w = 0
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		binIdx := m.BinStart + int(t*float64(w))
		coord := m.CoordAt(binIdx)
		ticks = append(ticks, Tick{
			Bin:   binIdx,
			Coord: uint64(coord),
			Label: FormatCoord(uint64(coord)),
		})
	}
	return ticks
}

// FormatCoord renders a coordinate with K/M/G suffixes.
func FormatCoord(v uint64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%.1fG", float64(v)/1e9)
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(v)/1e6)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1e3)
	}
	return strconv.FormatUint(v, 10)
}

// ParseSubpathStart extracts start from a "name:start-end" path name,
// or 0 when the name carries no range.
func ParseSubpathStart(name string) uint64 {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		rangePart := name[i+1:]
		if dash := strings.Index(rangePart, "-"); dash >= 0 {
			if start, err := strconv.ParseUint(rangePart[:dash], 10, 64); err == nil {
				return start
			}
		}
	}
	return 0
}

// StripSubpathRange removes a trailing ":start-end" range from a path
// name when both bounds parse as numbers.
func StripSubpathRange(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		rangePart := name[i+1:]
		if dash := strings.Index(rangePart, "-"); dash >= 0 {
			_, err1 := strconv.ParseUint(rangePart[:dash], 10, 64)
			_, err2 := strconv.ParseUint(rangePart[dash+1:], 10, 64)
			if err1 == nil && err2 == nil {
				return name[:i]
			}
		}
	}
	return name
}
