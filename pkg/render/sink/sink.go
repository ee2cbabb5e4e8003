package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/observability"
	"github.com/pangenome/gfalook/pkg/viz"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

// Option configures frame rendering for both sinks.
type Option func(*renderer)

type renderer struct {
	hideNames       bool
	noBorders       bool
	blackBorders    bool
	nameBackgrounds bool
}

// WithHiddenNames suppresses the path-name column.
func WithHiddenNames() Option { return func(r *renderer) { r.hideNames = true } }

// WithoutBorders drops the 1px separators between path rows.
func WithoutBorders() Option { return func(r *renderer) { r.noBorders = true } }

// WithBlackBorders draws the row separators black instead of white.
func WithBlackBorders() Option { return func(r *renderer) { r.blackBorders = true } }

// WithNameBackgrounds fills each name cell with the path's identity
// color.
func WithNameBackgrounds() Option { return func(r *renderer) { r.nameBackgrounds = true } }

// WriteFile renders the frame and writes it to path, picking the sink
// by extension (.svg or .png).
func WriteFile(path string, f *viz.Frame, opts ...Option) error {
	ctx := context.Background()
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	observability.Pipeline().OnRenderStart(ctx, format)
	start := time.Now()

	var data []byte
	switch format {
	case "svg":
		data = RenderSVG(f, opts...)
	case "png":
		var err error
		data, err = RenderPNG(f, opts...)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, format, 0, time.Since(start), err)
			return err
		}
	default:
		return errors.New(errors.ErrCodeConfig, "unsupported output format %q, want .svg or .png", filepath.Ext(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "write %s", path)
	}
	observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), nil)
	return nil
}

func newRenderer(opts ...Option) renderer {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// =============================================================================
// Geometry
// =============================================================================

// geometry fixes the pixel placement of every band: the left panel
// (dendrogram, cluster bar, annotation bar, names), then the bin grid,
// with the legend above and axis plus edge band below.
type geometry struct {
	charSize    int
	dendroW     int
	clusterBarW int
	barGap      int
	annotBarW   int
	textW       int
	leftW       int
	legendH     int
	pathH       int // path area height from the plan
	axisH       int
	edgeH       int
	width       int
	height      int
}

const (
	axisHeight     = 16
	dendroInset    = 5
	leafInset      = 2
	clusterBarSpan = 10
)

func computeGeometry(f *viz.Frame, r *renderer) geometry {
	var g geometry

	rowH := viz.DefaultPathHeight
	if len(f.Plan.Rows) > 0 {
		rowH = f.Plan.Rows[0].Span.Height
	}
	g.charSize = clampInt((rowH/8)*8, 8, 64)

	if f.Dendrogram != nil {
		g.dendroW = f.DendrogramWidth
	}
	for _, row := range f.Plan.Rows {
		if row.ClusterID >= 0 {
			g.clusterBarW = clusterBarSpan
			break
		}
	}
	if len(f.Legend) > 0 {
		g.annotBarW = f.AnnotationBarWidth
		g.legendH = f.LegendHeight
	}
	if g.clusterBarW > 0 && g.annotBarW > 0 {
		g.barGap = 4
	}

	if !r.hideNames && f.Plan.PackedRows == 0 {
		maxLabel := 0
		for _, row := range f.Plan.Rows {
			if n := len(row.Label); n > maxLabel {
				maxLabel = n
			}
		}
		if maxLabel > 0 {
			g.textW = maxLabel*g.charSize + g.charSize/2
		}
	}

	g.leftW = g.dendroW + g.clusterBarW + g.barGap + g.annotBarW + g.textW
	g.pathH = f.Plan.Height
	if f.Axis != nil {
		g.axisH = axisHeight
	}
	g.edgeH = f.EdgeHeight
	g.width = g.leftW + f.Bins
	g.height = g.legendH + g.pathH + g.axisH + g.edgeH
	return g
}

// =============================================================================
// Scene
// =============================================================================

// scene is the device-independent draw list both sinks consume. All
// primitives are axis-aligned.
type scene struct {
	width, height int
	rects         []rectOp
	lines         []lineOp
	texts         []textOp
}

type rectOp struct {
	x, y, w, h int
	c          color.RGB
}

type lineOp struct {
	x1, y1, x2, y2 int
	c              color.RGB
}

type textOp struct {
	x, y int
	size int
	c    color.RGB
	text string
	// truncated appends the trailing-dots glyph in raster output.
	truncated bool
}

var (
	white      = color.RGB{R: 255, G: 255, B: 255}
	black      = color.RGB{}
	dendroGrey = color.RGB{R: 80, G: 80, B: 80}
)

func buildScene(f *viz.Frame, r *renderer) *scene {
	g := computeGeometry(f, r)
	s := &scene{width: g.width, height: g.height}
	if f.Empty {
		if s.width < 200 {
			s.width = 200
		}
		if s.height < 16 {
			s.height = 16
		}
		s.rects = append(s.rects, rectOp{0, 0, s.width, s.height, white})
		s.texts = append(s.texts, textOp{x: 4, y: 4, size: 8, c: black, text: "no paths to display"})
		return s
	}
	s.rects = append(s.rects, rectOp{0, 0, g.width, g.height, white})

	s.addLegend(f, &g)
	s.addDendrogram(f, &g)
	s.addRows(f, r, &g)
	s.addConnectors(f, &g)
	s.addAxis(f, &g)
	s.addEdges(f, &g)
	return s
}

func (s *scene) addLegend(f *viz.Frame, g *geometry) {
	if len(f.Legend) == 0 {
		return
	}
	x := 4
	swatch := 10
	y := (g.legendH - swatch) / 2
	for _, entry := range f.Legend {
		s.rects = append(s.rects, rectOp{x, y, swatch, swatch, entry.Color})
		s.texts = append(s.texts, textOp{
			x: x + swatch + 3, y: y + 1, size: 8, c: black, text: entry.Category,
		})
		x += swatch + 6 + len(entry.Category)*8
	}
}

// addDendrogram draws the clustering tree with leaves on the right
// edge of the panel and merge heights growing leftwards.
func (s *scene) addDendrogram(f *viz.Frame, g *geometry) {
	d := f.Dendrogram
	if d == nil || g.dendroW == 0 {
		return
	}
	n := len(d.LeafOrder)
	// Representative-only display keeps one row per cluster, so the
	// tree can have more leaves than the plan has rows. There is no row
	// to anchor the extra leaves to; leave the panel blank.
	if n > len(f.Plan.Rows) {
		return
	}

	// A leaf's Y is the center of its display row.
	leafY := make([]int, n)
	for pos, leaf := range d.LeafOrder {
		row := f.Plan.Rows[pos]
		leafY[leaf] = g.legendH + row.Span.Y + row.Span.Height/2
	}

	nodeX := func(id int) int {
		if id < n {
			return g.dendroW - leafInset
		}
		m := d.Merges[id-n]
		if d.MaxHeight <= 0 {
			return g.dendroW / 2
		}
		return int((1 - m.Height/d.MaxHeight) * float64(g.dendroW-dendroInset))
	}

	// Resolve internal Y positions bottom-up; merges are ordered so
	// children always precede parents.
	nodeY := make([]int, n+len(d.Merges))
	for i := 0; i < n; i++ {
		nodeY[i] = leafY[i]
	}
	for k, m := range d.Merges {
		id := n + k
		ly, ry := nodeY[m.Left], nodeY[m.Right]
		x := nodeX(id)
		s.lines = append(s.lines,
			lineOp{nodeX(m.Left), ly, x, ly, dendroGrey},
			lineOp{nodeX(m.Right), ry, x, ry, dendroGrey},
			lineOp{x, ly, x, ry, dendroGrey},
		)
		nodeY[id] = (ly + ry) / 2
	}
}

func (s *scene) addRows(f *viz.Frame, r *renderer, g *geometry) {
	barX := g.dendroW
	annotX := g.dendroW + g.clusterBarW + g.barGap
	textX := annotX + g.annotBarW

	for i, row := range f.Plan.Rows {
		fr := f.Rows[i]
		y := g.legendH + row.Span.Y
		h := row.Span.Height

		if row.ClusterID >= 0 && g.clusterBarW > 0 && row.FirstInGroup {
			s.rects = append(s.rects, rectOp{barX, y, g.clusterBarW - 2, h, color.ClusterColor(row.ClusterID)})
		}
		if g.annotBarW > 0 && fr.Annotation >= 0 && fr.Annotation < len(f.Legend) {
			s.rects = append(s.rects, rectOp{annotX, y, g.annotBarW - 2, h, f.Legend[fr.Annotation].Color})
		}

		if g.textW > 0 && row.FirstInGroup && row.Label != "" {
			if r.nameBackgrounds {
				s.rects = append(s.rects, rectOp{textX, y, g.textW, h, fr.NameColor})
			}
			s.texts = append(s.texts, textOp{
				x:         textX + 3,
				y:         y + h/2 - g.charSize/2,
				size:      g.charSize,
				c:         black,
				text:      row.Label,
				truncated: len(row.Label) < len(fr.Name),
			})
		}

		s.addBinRuns(fr, r, g, y, h)
	}
}

// addBinRuns merges consecutive equal-colored bins into single rects.
// The border gap shaves one pixel off the row height so adjacent rows
// stay visually separate.
func (s *scene) addBinRuns(fr viz.FrameRow, r *renderer, g *geometry, y, h int) {
	drawH := h
	if !r.noBorders && h >= 3 {
		drawH = h - 1
		if r.blackBorders {
			s.rects = append(s.rects, rectOp{g.leftW, y + h - 1, len(fr.Colors), 1, black})
		}
	}
	runStart := -1
	var runColor color.RGB
	flush := func(end int) {
		if runStart >= 0 {
			s.rects = append(s.rects, rectOp{g.leftW + runStart, y, end - runStart, drawH, runColor})
			runStart = -1
		}
	}
	for b := 0; b < len(fr.Colors); b++ {
		if !fr.Present[b] {
			flush(b)
			continue
		}
		if runStart < 0 {
			runStart, runColor = b, fr.Colors[b]
		} else if fr.Colors[b] != runColor {
			flush(b)
			runStart, runColor = b, fr.Colors[b]
		}
	}
	flush(len(fr.Colors))
}

func (s *scene) addConnectors(f *viz.Frame, g *geometry) {
	for _, c := range f.Plan.Connectors {
		if c.Row >= len(f.Plan.Rows) {
			continue
		}
		row := f.Plan.Rows[c.Row]
		y := g.legendH + row.Span.Y + row.Span.Height/2
		s.lines = append(s.lines, lineOp{g.leftW + c.FromBin, y, g.leftW + c.ToBin, y, black})
	}
}

func (s *scene) addAxis(f *viz.Frame, g *geometry) {
	if f.Axis == nil {
		return
	}
	axisY := g.legendH + g.pathH + 2
	for _, tick := range f.Ticks {
		x := g.leftW + tick.Bin
		s.lines = append(s.lines, lineOp{x, axisY, x, axisY + 3, black})
		s.texts = append(s.texts, textOp{x: x + 1, y: axisY + 4, size: 8, c: black, text: tick.Label})
	}
}

// addEdges draws each edge as a U shape below the paths: two verticals
// whose depth scales with the edge's pangenomic distance, joined by a
// horizontal.
func (s *scene) addEdges(f *viz.Frame, g *geometry) {
	if g.edgeH == 0 || f.TotalLength == 0 {
		return
	}
	top := g.legendH + g.pathH + g.axisH
	scaleY := float64(g.edgeH) / float64(f.TotalLength)
	for _, e := range f.Edges {
		depth := int(float64(e.Dist) * scaleY)
		if depth > g.edgeH-1 {
			depth = g.edgeH - 1
		}
		ax := g.leftW + e.FromBin
		bx := g.leftW + e.ToBin
		s.lines = append(s.lines,
			lineOp{ax, top, ax, top + depth, black},
			lineOp{ax, top + depth, bx, top + depth, black},
			lineOp{bx, top, bx, top + depth, black},
		)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
