package viz

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pangenome/gfalook/pkg/cache"
	"github.com/pangenome/gfalook/pkg/gfa"
	"github.com/pangenome/gfalook/pkg/observability"
	"github.com/pangenome/gfalook/pkg/viz/axis"
	"github.com/pangenome/gfalook/pkg/viz/bin"
	"github.com/pangenome/gfalook/pkg/viz/cluster"
	"github.com/pangenome/gfalook/pkg/viz/color"
	"github.com/pangenome/gfalook/pkg/viz/layout"
)

// Runner executes the visualization pipeline with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// Render runs the full pipeline on a loaded graph and returns the
// finished frame. Integrity and configuration problems abort with an
// error; degenerate inputs (no paths after filtering, too few paths to
// cluster) fall back gracefully with a logged warning.
func (r *Runner) Render(ctx context.Context, g *gfa.Graph, opts Options) (*Frame, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	aux, err := loadAux(g, opts)
	if err != nil {
		return nil, err
	}

	display := selectPaths(g, aux.pathList, opts.IgnorePrefix)
	if len(display) == 0 {
		logger.Warn("no paths left to display after filtering", "total", len(g.Paths))
		return &Frame{Bins: opts.Width, Empty: true, Plan: &layout.Plan{}}, nil
	}

	var window *bin.Window
	if opts.PathRange != "" {
		window, err = bin.ParseRange(opts.PathRange, g)
		if err != nil {
			return nil, err
		}
	}

	width := r.deriveWidth(g, opts)

	// Clustering runs before binning; its display order decides the
	// row order of the profile matrix.
	var clusterRes *cluster.Result
	originals := display
	if opts.ClusterPaths {
		if len(display) < 2 {
			logger.Warn("clustering skipped, need at least 2 paths", "paths", len(display))
		} else {
			start := time.Now()
			m, totals, err := r.distances(ctx, g, display, opts)
			if err != nil {
				return nil, err
			}
			clusterRes = cluster.FromDistances(m, totals, clusterConfig(opts))
			logger.Info("clustered paths",
				"paths", len(display),
				"clusters", clusterRes.NumClusters,
				"duration", time.Since(start))

			reordered := make([]*gfa.Path, len(clusterRes.Order))
			for i, idx := range clusterRes.Order {
				reordered[i] = display[idx]
			}
			display = reordered

			if opts.Out != "" {
				r.writeSidecars(originals, clusterRes, opts.Out)
			}
		}
	}

	var clusterIDs []int
	if clusterRes != nil {
		clusterIDs = clusterRes.ClusterIDs
	}
	labels := displayLabels(display, opts)

	if clusterRes != nil && opts.ClusterRepresentatives {
		display, labels, clusterIDs = filterRepresentatives(originals, display, labels, clusterIDs, clusterRes)
	}

	binner := bin.New(g, bin.Config{
		Width:      width,
		BinWidth:   opts.BinWidth,
		Window:     window,
		Highlights: aux.highlights,
	})
	matrix, err := r.profiles(ctx, g, binner, display, opts, aux)
	if err != nil {
		return nil, err
	}

	lcfg := layout.Config{PathHeight: opts.PathHeight, ClusterGap: opts.ClusterGap}
	frame := &Frame{
		Bins:     matrix.Bins,
		BinWidth: matrix.BinWidth,
	}

	switch {
	case opts.CompressedMode:
		frame.Plan = layout.Compressed(lcfg)
		frame.Rows = []FrameRow{compressedRow(matrix, opts)}
	case opts.PackPaths:
		frame.Plan = layout.Pack(labels, matrix, lcfg)
		frame.Rows = r.colorRows(g, display, matrix, opts, aux)
	case len(aux.merges) > 0:
		groupOf := layout.AssignGroups(pathNames(display), aux.merges)
		frame.Plan = layout.Grouped(groupOf, aux.merges, lcfg)
		frame.Rows = r.colorPlanRows(g, display, matrix, frame.Plan, opts, aux)
	default:
		frame.Plan = layout.Rows(labels, clusterIDs, lcfg)
		frame.Rows = r.colorRows(g, display, matrix, opts, aux)
		if opts.LinkPathPieces {
			frame.Plan.Connectors = layout.Connectors(matrix)
		}
	}

	if aux.annotations != nil {
		frame.LegendHeight = opts.LegendHeight
		frame.AnnotationBarWidth = opts.AnnotationBarWidth
		frame.Legend = usedLegend(aux.annotations, frame.Rows)
	}

	if opts.XAxis != "" {
		mapper, fellBack := axis.New(g, opts.XAxis, opts.XAxisAbsolute, binner.BinWidth(), binner.Bins())
		if fellBack {
			logger.Warn("x-axis path not found, using pangenomic coordinates", "path", opts.XAxis)
		}
		frame.Axis = mapper
		frame.Ticks = mapper.Ticks(opts.XTicks)
	}

	if clusterRes != nil && opts.Dendrogram && clusterRes.Dendrogram != nil {
		frame.Dendrogram = clusterRes.Dendrogram
		frame.DendrogramWidth = opts.DendrogramWidth
	}

	frame.Edges = edgeSpans(g, binner)
	frame.EdgeHeight = edgeHeight(g.TotalLength, opts.Height)
	frame.TotalLength = g.TotalLength

	return frame, nil
}

// =============================================================================
// Auxiliary Input Files
// =============================================================================

type auxInputs struct {
	pathList    []string
	highlights  map[int]bool
	colorTable  map[string]color.RGB
	merges      []string
	annotations *Annotations
}

func loadAux(g *gfa.Graph, opts Options) (auxInputs, error) {
	var aux auxInputs
	var err error
	if opts.PathsToDisplay != "" {
		if aux.pathList, err = gfa.LoadPathList(opts.PathsToDisplay); err != nil {
			return aux, err
		}
	}
	if opts.HighlightNodeIDs != "" {
		if aux.highlights, err = gfa.LoadHighlights(opts.HighlightNodeIDs, g); err != nil {
			return aux, err
		}
	}
	if opts.PathColors != "" {
		if aux.colorTable, err = color.LoadTable(opts.PathColors); err != nil {
			return aux, err
		}
	}
	if opts.PrefixMerges != "" {
		if aux.merges, err = gfa.LoadPrefixMerges(opts.PrefixMerges); err != nil {
			return aux, err
		}
	}
	if opts.AnnotationFile != "" {
		if aux.annotations, err = LoadAnnotations(opts.AnnotationFile, opts.AnnotationColumn); err != nil {
			return aux, err
		}
	}
	return aux, nil
}

// selectPaths applies the prefix filter and the explicit inclusion
// list. The list fixes the display order; names it mentions that the
// graph lacks are dropped silently, matching the list's advisory role.
func selectPaths(g *gfa.Graph, list []string, ignorePrefix string) []*gfa.Path {
	display := make([]*gfa.Path, 0, len(g.Paths))
	for i := range g.Paths {
		p := &g.Paths[i]
		if ignorePrefix != "" && strings.HasPrefix(p.Name, ignorePrefix) {
			continue
		}
		display = append(display, p)
	}
	if list == nil {
		return display
	}
	byName := make(map[string]*gfa.Path, len(display))
	for _, p := range display {
		byName[p.Name] = p
	}
	picked := make([]*gfa.Path, 0, len(list))
	for _, name := range list {
		if p, ok := byName[name]; ok {
			picked = append(picked, p)
		}
	}
	return picked
}

// deriveWidth widens the image when every segment must span at least
// NodeWidth pixels.
func (r *Runner) deriveWidth(g *gfa.Graph, opts Options) int {
	if !opts.ShowAllNodes {
		return opts.Width
	}
	minSeg := uint64(0)
	for _, s := range g.Segments {
		if s.Length == 0 {
			continue
		}
		if minSeg == 0 || s.Length < minSeg {
			minSeg = s.Length
		}
	}
	if minSeg == 0 {
		minSeg = 1
	}
	minWidth := int(g.TotalLength * uint64(opts.NodeWidth) / minSeg)
	if minWidth > opts.Width {
		r.Logger.Debug("widening image for show-all-nodes",
			"min_segment", minSeg, "width", minWidth)
		return minWidth
	}
	return opts.Width
}

// =============================================================================
// Cached Stages
// =============================================================================

// distanceEntry is the cached form of a distance matrix.
type distanceEntry struct {
	D      [][]float64 `json:"d"`
	Totals []uint64    `json:"totals"`
}

func (r *Runner) distances(ctx context.Context, g *gfa.Graph, paths []*gfa.Path, opts Options) (*cluster.Matrix, []uint64, error) {
	key := cache.DistanceKey(g.Checksum, cache.DistanceKeyOpts{
		AllNodes: opts.ClusterAllNodes,
		Paths:    pathNames(paths),
	})
	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var entry distanceEntry
			if err := json.Unmarshal(data, &entry); err == nil && len(entry.D) == len(paths) {
				r.Logger.Debug("distance matrix from cache", "paths", len(paths))
				observability.Cache().OnCacheHit(ctx, "distances")
				return cluster.FromRaw(entry.D), entry.Totals, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "distances")
	}

	m, totals := cluster.Distances(g, paths, opts.ClusterAllNodes)

	if !opts.NoCache {
		if data, err := json.Marshal(distanceEntry{D: m.Raw(), Totals: totals}); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.TTLDistances)
			observability.Cache().OnCacheSet(ctx, "distances", len(data))
		}
	}
	return m, totals, nil
}

func (r *Runner) profiles(ctx context.Context, g *gfa.Graph, b *bin.Binner, paths []*gfa.Path, opts Options, aux auxInputs) (*bin.Matrix, error) {
	key := cache.ProfileKey(g.Checksum, cache.ProfileKeyOpts{
		Bins:       b.Bins(),
		BinWidth:   b.BinWidth(),
		Range:      opts.PathRange,
		Paths:      pathNames(paths),
		Highlights: sortedKeys(aux.highlights),
	})
	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var m bin.Matrix
			if err := json.Unmarshal(data, &m); err == nil && len(m.Rows) == len(paths) {
				r.Logger.Debug("bin profiles from cache", "paths", len(paths), "bins", m.Bins)
				observability.Cache().OnCacheHit(ctx, "profiles")
				return &m, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "profiles")
	}

	start := time.Now()
	observability.Pipeline().OnBinStart(ctx, b.Bins(), len(paths))
	m := b.Profiles(paths)
	observability.Pipeline().OnBinComplete(ctx, time.Since(start), nil)
	r.Logger.Info("binned paths",
		"paths", len(paths),
		"bins", m.Bins,
		"duration", time.Since(start))

	if !opts.NoCache {
		if data, err := json.Marshal(m); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.TTLProfiles)
			observability.Cache().OnCacheSet(ctx, "profiles", len(data))
		}
	}
	return m, nil
}

// =============================================================================
// Clustering Helpers
// =============================================================================

func clusterConfig(opts Options) cluster.Config {
	thr := opts.ClusterThreshold
	if thr <= 0 {
		thr = -1 // automatic eps selection
	}
	upgma := opts.UPGMAThreshold
	if upgma <= 0 {
		upgma = -1
	}
	return cluster.Config{
		UseUPGMA:       opts.UseUPGMA,
		Threshold:      thr,
		UPGMAThreshold: upgma,
		MaxClusters:    opts.MaxClusters,
		Dendrogram:     opts.Dendrogram,
		AllNodes:       opts.ClusterAllNodes,
	}
}

// displayLabels truncates names for the label column.
func displayLabels(display []*gfa.Path, opts Options) []string {
	labels := make([]string, len(display))
	for i, p := range display {
		labels[i] = truncateName(p.Name, opts.MaxNameChars)
	}
	return labels
}

// filterRepresentatives keeps only each cluster's medoid row, relabeled
// as "name (n=size)".
func filterRepresentatives(originals, display []*gfa.Path, labels []string, clusterIDs []int, res *cluster.Result) ([]*gfa.Path, []string, []int) {
	sizeOf := make(map[int]int, len(res.Medoids))
	isMedoid := make(map[int]bool, len(res.Medoids))
	for clusterID, medoid := range res.Medoids {
		isMedoid[medoid] = true
		sizeOf[medoid] = res.Sizes[clusterID]
	}

	var outPaths []*gfa.Path
	var outLabels []string
	var outIDs []int
	for pos, origIdx := range res.Order {
		if !isMedoid[origIdx] {
			continue
		}
		p := originals[origIdx]
		outPaths = append(outPaths, p)
		outLabels = append(outLabels, labelWithSize(labels[pos], sizeOf[origIdx]))
		outIDs = append(outIDs, res.ClusterIDs[pos])
	}
	return outPaths, outLabels, outIDs
}

func labelWithSize(label string, size int) string {
	return fmt.Sprintf("%s (n=%d)", label, size)
}

// writeSidecars records cluster assignments and medoids next to the
// output image: foo.png gets foo.clusters.tsv and foo.medoids.tsv.
func (r *Runner) writeSidecars(originals []*gfa.Path, res *cluster.Result, out string) {
	base := strings.TrimSuffix(out, filepath.Ext(out))
	write := func(path string, fn func(f *os.File) error) {
		f, err := os.Create(path)
		if err != nil {
			r.Logger.Warn("could not write cluster TSV", "path", path, "error", err)
			return
		}
		defer f.Close()
		if err := fn(f); err != nil {
			r.Logger.Warn("could not write cluster TSV", "path", path, "error", err)
			return
		}
		r.Logger.Info("cluster assignments saved", "path", path)
	}
	write(base+".clusters.tsv", func(f *os.File) error {
		return cluster.WriteClusters(f, originals, res)
	})
	write(base+".medoids.tsv", func(f *os.File) error {
		return cluster.WriteMedoids(f, originals, res)
	})
}

// =============================================================================
// Coloring
// =============================================================================

// colorRows resolves one FrameRow per display path, rows parallel to
// the matrix.
func (r *Runner) colorRows(g *gfa.Graph, display []*gfa.Path, m *bin.Matrix, opts Options, aux auxInputs) []FrameRow {
	maxLen := maxPathLength(g, display)
	rows := make([]FrameRow, len(display))
	for i, p := range display {
		rows[i] = r.colorRow(g, p, &m.Rows[i], m.Bins, maxLen, opts, aux)
	}
	return rows
}

// colorPlanRows resolves FrameRows parallel to an explicit plan, used
// by prefix merging where the plan drops unmatched paths.
func (r *Runner) colorPlanRows(g *gfa.Graph, display []*gfa.Path, m *bin.Matrix, plan *layout.Plan, opts Options, aux auxInputs) []FrameRow {
	maxLen := maxPathLength(g, display)
	rows := make([]FrameRow, len(plan.Rows))
	for i, pr := range plan.Rows {
		rows[i] = r.colorRow(g, display[pr.Path], &m.Rows[pr.Path], m.Bins, maxLen, opts, aux)
	}
	return rows
}

func (r *Runner) colorRow(g *gfa.Graph, p *gfa.Path, row *bin.Row, bins int, maxLen uint64, opts Options, aux auxInputs) FrameRow {
	base := identityColor(p.Name, opts, aux.colorTable)
	fr := FrameRow{
		Name:       p.Name,
		NameColor:  base,
		Colors:     make([]color.RGB, bins),
		Present:    make([]bool, bins),
		Annotation: -1,
	}
	if aux.annotations != nil {
		fr.Annotation = aux.annotations.CategoryIndex(p.Name)
	}

	darknessLen := g.PathLength(p)
	if opts.LongestPath {
		darknessLen = maxLen
	}
	// AlignmentPrefix restricts strand and darkness coloring to the
	// matching (query) paths; others keep their identity color.
	prefixApplies := opts.AlignmentPrefix == "" || strings.HasPrefix(p.Name, opts.AlignmentPrefix)
	palette := opts.DepthPalette()

	for b := row.MinBin; b <= row.MaxBin && b < bins; b++ {
		prof := &row.Profiles[b]
		if prof.Coverage == 0 {
			continue
		}
		fr.Present[b] = true

		var c color.RGB
		switch {
		case aux.highlights != nil:
			c = color.Highlight(prof.Highlighted)
		case opts.ColorByMeanDepth:
			c = color.Depth(prof.MeanDepth, opts.NoGreyDepth, palette)
		case opts.ColorByInversion:
			c = color.InversionRate(prof.MeanInv)
		case opts.ColorByUncalled:
			c = color.Uncalled(prof.MeanUncalled)
		case opts.ShowStrand && prefixApplies:
			c = color.Strand(prof.MeanInv)
		default:
			c = base
		}

		if opts.ChangeDarkness && aux.highlights == nil && prefixApplies {
			c = color.Darkness(c, prof.MeanPos, darknessLen, prof.MeanInv, opts.WhiteToBlack)
		}
		fr.Colors[b] = c
	}
	return fr
}

// compressedRow aggregates every path into one mean-depth row. The
// RdBu ramp is the default here; spectral reads poorly for values
// centered on 1x.
func compressedRow(m *bin.Matrix, opts Options) FrameRow {
	palette := opts.DepthPalette()
	if palette == nil {
		p, _ := color.Palette("rdbu")
		palette = p
	}
	agg := bin.Compress(m)
	fr := FrameRow{
		Name:       "COMPRESSED_MODE",
		NameColor:  color.RGB{},
		Colors:     make([]color.RGB, m.Bins),
		Present:    make([]bool, m.Bins),
		Annotation: -1,
	}
	for b, prof := range agg.Profiles {
		if prof.MeanDepth == 0 {
			continue
		}
		fr.Present[b] = true
		fr.Colors[b] = color.Depth(prof.MeanDepth, opts.NoGreyDepth, palette)
	}
	return fr
}

func identityColor(name string, opts Options, table map[string]color.RGB) color.RGB {
	if c, ok := table[name]; ok {
		return c
	}
	if opts.ColorByPrefix != "" {
		return color.PathColorPrefix(name, opts.ColorByPrefix)
	}
	return color.PathColor(name)
}

// usedLegend keeps only the annotation categories some displayed row
// actually carries, remapping each row's category index into the
// filtered legend. Alphabetical category order is preserved.
func usedLegend(a *Annotations, rows []FrameRow) []LegendEntry {
	remap := make(map[int]int)
	var legend []LegendEntry
	for i, cat := range a.Categories {
		for _, row := range rows {
			if row.Annotation == i {
				remap[i] = len(legend)
				legend = append(legend, LegendEntry{Category: cat, Color: a.Color(cat)})
				break
			}
		}
	}
	for i := range rows {
		if idx, ok := remap[rows[i].Annotation]; ok {
			rows[i].Annotation = idx
		} else {
			rows[i].Annotation = -1
		}
	}
	return legend
}

// =============================================================================
// Edge Band
// =============================================================================

// edgeSpans projects graph edges onto bin coordinates. A forward
// endpoint exits at the segment's end, a reverse endpoint at its start.
func edgeSpans(g *gfa.Graph, b *bin.Binner) []EdgeSpan {
	binWidth := b.BinWidth()
	bins := b.Bins()
	spans := make([]EdgeSpan, 0, len(g.Edges))
	for _, e := range g.Edges {
		fromOff := g.Offsets[e.From]
		fromLen := g.Segments[e.From].Length
		toOff := g.Offsets[e.To]
		toLen := g.Segments[e.To].Length

		a := float64(fromOff+fromLen) / binWidth
		if e.FromRev {
			a = float64(fromOff) / binWidth
		}
		bp := float64(toOff) / binWidth
		if e.ToRev {
			bp = float64(toOff+toLen) / binWidth
		}
		if a > bp {
			a, bp = bp, a
		}
		spans = append(spans, EdgeSpan{
			FromBin: clampBin(a, bins),
			ToBin:   clampBin(bp, bins),
			Dist:    uint64((bp - a) * binWidth),
		})
	}
	return spans
}

func clampBin(v float64, bins int) int {
	b := int(v + 0.5)
	if b > bins-1 {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

func edgeHeight(totalLength uint64, height int) int {
	if totalLength < uint64(height) {
		return int(totalLength)
	}
	return height
}

// =============================================================================
// Small Helpers
// =============================================================================

func pathNames(paths []*gfa.Path) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = p.Name
	}
	return names
}

func maxPathLength(g *gfa.Graph, paths []*gfa.Path) uint64 {
	var max uint64
	for _, p := range paths {
		if l := g.PathLength(p); l > max {
			max = l
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

func sortedKeys(m map[int]bool) []int {
	if len(m) == 0 {
		return nil
	}
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func truncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}
