package viz

import (
	"github.com/pangenome/gfalook/pkg/viz/axis"
	"github.com/pangenome/gfalook/pkg/viz/cluster"
	"github.com/pangenome/gfalook/pkg/viz/color"
	"github.com/pangenome/gfalook/pkg/viz/layout"
)

// Frame is the finished, renderer-agnostic output of the pipeline: a
// per-row color grid plus everything a sink needs to draw labels,
// connectors, cluster decorations, the axis, and the edge band.
type Frame struct {
	// Bins is the horizontal resolution of the grid.
	Bins int
	// BinWidth is the pangenomic width of one bin in bases.
	BinWidth float64

	// Plan fixes each row's vertical placement; Rows is parallel to
	// Plan.Rows.
	Plan *layout.Plan
	Rows []FrameRow

	// Axis is nil when no x-axis was requested. Ticks are derived from
	// the same mapper.
	Axis  *axis.Mapper
	Ticks []axis.Tick

	// Dendrogram is non-nil when the clustering tree should be drawn.
	Dendrogram *cluster.Dendrogram
	// DendrogramWidth is the panel width in pixels.
	DendrogramWidth int

	// Legend holds one entry per annotation category, in display order.
	// LegendHeight and AnnotationBarWidth are zero when no annotations
	// were loaded.
	Legend             []LegendEntry
	LegendHeight       int
	AnnotationBarWidth int

	// Edges describes the bottom edge band, one span per graph edge.
	Edges []EdgeSpan
	// EdgeHeight is the pixel height of the edge band, 0 to omit it.
	EdgeHeight int
	// TotalLength is the graph's pangenomic length; edge depths scale
	// against it.
	TotalLength uint64

	// Empty marks a degenerate frame: no paths survived filtering. The
	// sink renders a labeled blank canvas.
	Empty bool
}

// FrameRow carries one display row's colors and name metadata.
type FrameRow struct {
	// Name is the full path (or group) name; Label on the layout row is
	// the truncated display form.
	Name string
	// NameColor backs the name text when name backgrounds are enabled.
	NameColor color.RGB
	// Colors holds one RGB per bin; Present marks which bins the path
	// actually occupies.
	Colors  []color.RGB
	Present []bool
	// Annotation indexes Frame.Legend, -1 when unannotated.
	Annotation int
}

// LegendEntry is one annotation category with its swatch color.
type LegendEntry struct {
	Category string
	Color    color.RGB
}

// EdgeSpan is one graph edge projected onto bin coordinates. The sink
// draws it as two verticals joined by a horizontal whose depth scales
// with Dist.
type EdgeSpan struct {
	FromBin int
	ToBin   int
	// Dist is the pangenomic distance in bases between the endpoints.
	Dist uint64
}
