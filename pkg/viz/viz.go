// Package viz orchestrates the visualization pipeline that turns a
// parsed variation graph into a renderable frame.
//
// # Architecture
//
// The pipeline runs in fixed stages, each owned by a subpackage:
//
//	filter  - path selection (inclusion list, ignore prefix)
//	cluster - similarity ordering and grouping (pkg/viz/cluster)
//	bin     - projection of paths onto pangenomic bins (pkg/viz/bin)
//	layout  - vertical placement of rows (pkg/viz/layout)
//	color   - per-bin RGB resolution (pkg/viz/color)
//	axis    - coordinate mapping and ticks (pkg/viz/axis)
//
// The binning and distance stages are memoized through pkg/cache, keyed
// by the graph checksum plus the options that affect them.
//
// # Usage
//
//	runner := viz.NewRunner(fileCache, logger)
//	opts := viz.Options{Width: 1500, ColorByMeanDepth: true}
//	frame, err := runner.Render(ctx, graph, opts)
//
// The resulting Frame is consumed by pkg/render/sink to produce SVG or
// PNG output.
package viz

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

// =============================================================================
// Default Values - Single Source of Truth
// =============================================================================

const (
	// DefaultWidth is the output image width in pixels (= bin count).
	DefaultWidth = 1500

	// DefaultHeight caps the edge band height in pixels.
	DefaultHeight = 500

	// DefaultPathHeight is the pixel height of one path row.
	DefaultPathHeight = 10

	// DefaultTicks is the x-axis tick count.
	DefaultTicks = 10

	// DefaultClusterGap is the pixel gap inserted between clusters.
	DefaultClusterGap = 10

	// DefaultDendrogramWidth is the dendrogram panel width in pixels.
	DefaultDendrogramWidth = 100

	// DefaultNodeWidth is the minimum pixel width per segment when
	// ShowAllNodes is set.
	DefaultNodeWidth = 1

	// DefaultAnnotationBarWidth is the annotation bar width in pixels.
	DefaultAnnotationBarWidth = 10

	// DefaultLegendHeight is the annotation legend band height.
	DefaultLegendHeight = 30

	// DefaultMaxNameChars caps the path-name column when no explicit
	// limit is given.
	DefaultMaxNameChars = 128

	// XAxisPangenomic selects graph-order coordinates on the x-axis.
	XAxisPangenomic = "pangenomic"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// The toml tags allow loading a base configuration from a file; flag
// values set by the CLI win over file values.
type Options struct {
	// Output path; the extension selects the sink format, and the
	// cluster/medoid TSV sidecars derive their names from it.
	Out string `toml:"out"`

	// Image geometry
	Width      int `toml:"width"`       // bin count / image width in pixels
	Height     int `toml:"height"`      // edge band height cap
	PathHeight int `toml:"path_height"` // pixels per path row

	// Binning
	BinWidth     float64 `toml:"bin_width"`      // explicit bases per bin, 0 = derive from Width
	ShowAllNodes bool    `toml:"show_all_nodes"` // widen image so every segment spans >= NodeWidth pixels
	NodeWidth    int     `toml:"node_width"`
	PathRange    string  `toml:"path_range"` // "[PATH:]start-end" window

	// Path selection
	PathsToDisplay string `toml:"paths_to_display"` // file: one path name per line, display order
	IgnorePrefix   string `toml:"ignore_prefix"`    // drop paths with this name prefix

	// Clustering
	ClusterPaths           bool    `toml:"cluster_paths"`
	ClusterThreshold       float64 `toml:"cluster_threshold"` // DBSCAN similarity in [0,1], <0 = auto
	ClusterAllNodes        bool    `toml:"cluster_all_nodes"`
	ClusterGap             int     `toml:"cluster_gap"`
	MaxClusters            int     `toml:"max_clusters"` // 0 = auto
	ClusterRepresentatives bool    `toml:"cluster_representatives"`
	Dendrogram             bool    `toml:"dendrogram"`
	DendrogramWidth        int     `toml:"dendrogram_width"`
	UseUPGMA               bool    `toml:"use_upgma"`
	UPGMAThreshold         float64 `toml:"upgma_threshold"` // fraction of max merge height, <0 = auto

	// Path appearance
	PackPaths        bool   `toml:"pack_paths"`
	LinkPathPieces   bool   `toml:"link_path_pieces"`
	CompressedMode   bool   `toml:"compressed_mode"`
	PrefixMerges     string `toml:"prefix_merges"` // file: one prefix per line
	NoPathBorders    bool   `toml:"no_path_borders"`
	BlackPathBorders bool   `toml:"black_path_borders"`

	// Path names
	HidePathNames        bool   `toml:"hide_path_names"`
	ColorNamesBackground bool   `toml:"color_path_names_background"`
	MaxNameChars         int    `toml:"max_num_of_characters"`
	ColorByPrefix        string `toml:"color_by_prefix"` // separator char for identity hashing

	// Coloring
	PathColors         string `toml:"path_colors"` // file: name<TAB>color table
	ShowStrand         bool   `toml:"show_strand"`
	ColorByInversion   bool   `toml:"color_by_mean_inversion_rate"`
	ColorByUncalled    bool   `toml:"color_by_uncalled_bases"`
	ColorByMeanDepth   bool   `toml:"color_by_mean_depth"`
	HighlightNodeIDs   string `toml:"highlight_node_ids"`  // file: one segment name per line
	ColorbrewerPalette string `toml:"colorbrewer_palette"` // SCHEME:N
	NoGreyDepth        bool   `toml:"no_grey_depth"`
	AlignmentPrefix    string `toml:"alignment_prefix"` // limit strand/darkness coloring to matching paths

	// Darkness gradient
	ChangeDarkness bool `toml:"change_darkness"`
	LongestPath    bool `toml:"longest_path"` // normalize gradient by the longest displayed path
	WhiteToBlack   bool `toml:"white_to_black"`

	// X-axis
	XAxis         string `toml:"x_axis"` // "pangenomic" or a reference path name
	XTicks        int    `toml:"x_ticks"`
	XAxisAbsolute bool   `toml:"x_axis_absolute"`

	// Annotations
	AnnotationFile     string `toml:"annotation_file"`
	AnnotationColumn   int    `toml:"annotation_column"` // 1-based, 0 = format default
	AnnotationBarWidth int    `toml:"annotation_bar_width"`
	LegendHeight       int    `toml:"legend_height"`

	// Runtime options (not read from config files)
	NoCache bool        `toml:"-"` // bypass result memoization
	Logger  *log.Logger `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `toml:"-"`
}

// LoadConfig reads a TOML options file. The returned Options carry only
// file values; the caller overlays flag values before validation.
func LoadConfig(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeConfigFile, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeConfigFile, err, "parse config %s", path)
	}
	return opts, nil
}

// ValidateAndSetDefaults checks option conflicts and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.validateConflicts(); err != nil {
		return err
	}

	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.PathHeight <= 0 {
		o.PathHeight = DefaultPathHeight
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.XTicks <= 0 {
		o.XTicks = DefaultTicks
	}
	if o.ClusterGap <= 0 {
		o.ClusterGap = DefaultClusterGap
	}
	if o.DendrogramWidth <= 0 {
		o.DendrogramWidth = DefaultDendrogramWidth
	}
	if o.AnnotationBarWidth <= 0 {
		o.AnnotationBarWidth = DefaultAnnotationBarWidth
	}
	if o.LegendHeight <= 0 {
		o.LegendHeight = DefaultLegendHeight
	}
	if o.MaxNameChars <= 0 {
		o.MaxNameChars = DefaultMaxNameChars
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}

	o.validated = true
	return nil
}

// validateConflicts rejects option combinations before any work starts.
func (o *Options) validateConflicts() error {
	if o.PackPaths {
		switch {
		case o.CompressedMode:
			return errors.New(errors.ErrCodeConfigConflict, "pack-paths cannot be combined with compressed-mode")
		case o.ClusterPaths:
			return errors.New(errors.ErrCodeConfigConflict, "pack-paths cannot be combined with cluster-paths")
		case o.PrefixMerges != "":
			return errors.New(errors.ErrCodeConfigConflict, "pack-paths cannot be combined with prefix-merges")
		case o.PathsToDisplay != "":
			return errors.New(errors.ErrCodeConfigConflict, "pack-paths cannot be combined with paths-to-display")
		}
	}
	if o.CompressedMode {
		if o.ClusterPaths {
			return errors.New(errors.ErrCodeConfigConflict, "compressed-mode cannot be combined with cluster-paths")
		}
		if o.PrefixMerges != "" {
			return errors.New(errors.ErrCodeConfigConflict, "compressed-mode cannot be combined with prefix-merges")
		}
	}
	if o.ClusterPaths && o.PrefixMerges != "" {
		return errors.New(errors.ErrCodeConfigConflict, "cluster-paths cannot be combined with prefix-merges")
	}
	if !o.ClusterPaths {
		for flag, set := range map[string]bool{
			"cluster-threshold":       o.ClusterThreshold > 0,
			"cluster-representatives": o.ClusterRepresentatives,
			"dendrogram":              o.Dendrogram,
			"use-upgma":               o.UseUPGMA,
		} {
			if set {
				return errors.New(errors.ErrCodeConfigConflict, "%s requires cluster-paths", flag)
			}
		}
	}
	if o.XAxisAbsolute {
		if o.XAxis == "" {
			return errors.New(errors.ErrCodeConfigConflict, "x-axis-absolute requires x-axis")
		}
		if strings.EqualFold(o.XAxis, XAxisPangenomic) {
			return errors.New(errors.ErrCodeConfigConflict, "x-axis-absolute cannot be used with the pangenomic coordinate system")
		}
	}
	if len(o.ColorByPrefix) > 1 {
		return errors.New(errors.ErrCodeConfig, "color-by-prefix takes a single separator character, got %q", o.ColorByPrefix)
	}
	if o.ColorbrewerPalette != "" {
		scheme, _, ok := color.ParsePaletteArg(o.ColorbrewerPalette)
		if !ok {
			return errors.New(errors.ErrCodeConfigPalette, "malformed palette argument %q, want SCHEME:N", o.ColorbrewerPalette)
		}
		if _, ok := color.Palette(scheme); !ok {
			return errors.New(errors.ErrCodeConfigPalette, "unknown colorbrewer scheme %q", scheme)
		}
	}
	return nil
}

// DepthPalette resolves the configured colorbrewer palette, or the
// default Spectral ramp when none is set.
func (o *Options) DepthPalette() []color.RGB {
	if o.ColorbrewerPalette == "" {
		return nil
	}
	scheme, _, ok := color.ParsePaletteArg(o.ColorbrewerPalette)
	if !ok {
		return nil
	}
	p, ok := color.Palette(scheme)
	if !ok {
		return nil
	}
	return p
}
