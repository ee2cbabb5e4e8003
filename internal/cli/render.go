package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pangenome/gfalook/pkg/gfa"
	"github.com/pangenome/gfalook/pkg/render/sink"
	"github.com/pangenome/gfalook/pkg/viz"
)

// newRenderCmd creates the render command, the main entry point: parse
// a GFA file, bin its paths onto the pangenomic axis, and write an SVG
// or PNG image.
//
// Flags mirror the viz.Options fields; a TOML config file can preload
// any of them via --config, with explicitly set flags taking
// precedence over file values.
func newRenderCmd() *cobra.Command {
	var (
		opts       viz.Options
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "render [gfa-file]",
		Short: "Render a variation graph to SVG or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := mergeConfig(configPath, &opts, cmd.Flags())
			if err != nil {
				return err
			}
			if merged.Out == "" {
				merged.Out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			return runRender(cmd.Context(), args[0], merged)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "TOML config file; explicit flags override file values")
	f.StringVarP(&opts.Out, "out", "o", "", "output image path (.svg or .png); default: input with .png extension")

	f.IntVarP(&opts.Width, "width", "w", 0, "number of bins / image width in pixels")
	f.IntVar(&opts.Height, "height", 0, "maximum height of the edge band in pixels")
	f.IntVar(&opts.PathHeight, "path-height", 0, "pixel height of one path row")

	f.Float64Var(&opts.BinWidth, "bin-width", 0, "bases per bin; overrides --width when set")
	f.BoolVar(&opts.ShowAllNodes, "show-all-nodes", false, "widen the image so every segment spans at least --node-width pixels")
	f.IntVar(&opts.NodeWidth, "node-width", 0, "minimum pixels per segment with --show-all-nodes")
	f.StringVar(&opts.PathRange, "path-range", "", "restrict to a window: [PATH:]start-end")

	f.StringVar(&opts.PathsToDisplay, "paths-to-display", "", "file with one path name per line, sets display order")
	f.StringVar(&opts.IgnorePrefix, "ignore-prefix", "", "drop paths whose name starts with this prefix")

	f.BoolVar(&opts.ClusterPaths, "cluster-paths", false, "group paths by similarity before display")
	f.Float64Var(&opts.ClusterThreshold, "cluster-threshold", -1, "similarity threshold in [0,1]; negative selects automatically")
	f.BoolVar(&opts.ClusterAllNodes, "cluster-all-nodes", false, "cluster on node presence instead of coverage")
	f.IntVar(&opts.ClusterGap, "cluster-gap", 0, "extra pixels between clusters")
	f.IntVar(&opts.MaxClusters, "max-clusters", 0, "target cluster count for automatic thresholds")
	f.BoolVar(&opts.ClusterRepresentatives, "cluster-representatives", false, "show only each cluster's medoid path")
	f.BoolVar(&opts.Dendrogram, "dendrogram", false, "draw the clustering tree next to the paths")
	f.IntVar(&opts.DendrogramWidth, "dendrogram-width", 0, "dendrogram panel width in pixels")
	f.BoolVar(&opts.UseUPGMA, "use-upgma", false, "cut the UPGMA tree instead of running DBSCAN")
	f.Float64Var(&opts.UPGMAThreshold, "upgma-threshold", -1, "UPGMA cut as a fraction of the maximum merge height")

	f.BoolVar(&opts.PackPaths, "pack-paths", false, "pack non-overlapping paths onto shared rows")
	f.BoolVar(&opts.LinkPathPieces, "link-path-pieces", false, "connect separated pieces of a path with a line")
	f.BoolVar(&opts.CompressedMode, "compressed-mode", false, "collapse all paths into a single depth row")
	f.StringVar(&opts.PrefixMerges, "prefix-merges", "", "file with one prefix per line; paths sharing a prefix merge onto one row")
	f.BoolVar(&opts.NoPathBorders, "no-path-borders", false, "draw path rows without separating borders")
	f.BoolVar(&opts.BlackPathBorders, "black-path-borders", false, "draw black borders instead of white")

	f.BoolVar(&opts.HidePathNames, "hide-path-names", false, "omit the path name column")
	f.BoolVar(&opts.ColorNamesBackground, "color-path-names-background", false, "fill name cells with the path's color")
	f.IntVar(&opts.MaxNameChars, "max-num-of-characters", 0, "truncate path names to this many characters")
	f.StringVar(&opts.ColorByPrefix, "color-by-prefix", "", "hash only the name up to this separator when picking path colors")

	f.StringVar(&opts.PathColors, "path-colors", "", "file with name<TAB>color overrides")
	f.BoolVar(&opts.ShowStrand, "show-strand", false, "color forward and reverse strands differently")
	f.BoolVar(&opts.ColorByInversion, "color-by-mean-inversion-rate", false, "color bins by mean inversion rate")
	f.BoolVar(&opts.ColorByUncalled, "color-by-uncalled-bases", false, "color bins by fraction of N bases")
	f.BoolVar(&opts.ColorByMeanDepth, "color-by-mean-depth", false, "color bins by mean coverage depth")
	f.StringVar(&opts.HighlightNodeIDs, "highlight-node-ids", "", "file with segment names to highlight")
	f.StringVar(&opts.ColorbrewerPalette, "colorbrewer-palette", "", "depth palette as SCHEME:N (e.g. RdBu:11)")
	f.BoolVar(&opts.NoGreyDepth, "no-grey-depth", false, "skip the grey bands for depth near 0 and 1")
	f.StringVar(&opts.AlignmentPrefix, "alignment-prefix", "", "restrict strand and darkness coloring to paths with this prefix")

	f.BoolVar(&opts.ChangeDarkness, "change-darkness", false, "darken bins along each path")
	f.BoolVar(&opts.LongestPath, "longest-path", false, "normalize the darkness gradient by the longest displayed path")
	f.BoolVar(&opts.WhiteToBlack, "white-to-black", false, "grayscale gradient instead of darkened path colors")

	f.StringVar(&opts.XAxis, "x-axis", "", `draw an x-axis: "pangenomic" or a reference path name`)
	f.IntVar(&opts.XTicks, "x-ticks", 0, "number of axis ticks")
	f.BoolVar(&opts.XAxisAbsolute, "x-axis-absolute", false, "label ticks with absolute reference coordinates")

	f.StringVar(&opts.AnnotationFile, "annotation-file", "", "TSV or CSV with per-path annotation categories")
	f.IntVar(&opts.AnnotationColumn, "annotation-column", 0, "1-based annotation column; 0 uses the format default")
	f.IntVar(&opts.AnnotationBarWidth, "annotation-bar-width", 0, "annotation bar width in pixels")
	f.IntVar(&opts.LegendHeight, "legend-height", 0, "legend band height in pixels")

	f.BoolVar(&opts.NoCache, "no-cache", false, "recompute everything, skip the result cache")

	return cmd
}

// mergeConfig layers explicitly set flags over a TOML config file.
// Without a config file the flag-bound options pass through untouched.
func mergeConfig(path string, flagOpts *viz.Options, flags *pflag.FlagSet) (*viz.Options, error) {
	if path == "" {
		return flagOpts, nil
	}
	base, err := viz.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := flagOverrides[f.Name]; ok {
			apply(&base, flagOpts)
		}
	})
	return &base, nil
}

// flagOverrides copies one flag's value from the flag-bound options
// into the config-derived options. Only visited (explicitly set) flags
// are applied.
var flagOverrides = map[string]func(dst, src *viz.Options){
	"out":                          func(d, s *viz.Options) { d.Out = s.Out },
	"width":                        func(d, s *viz.Options) { d.Width = s.Width },
	"height":                       func(d, s *viz.Options) { d.Height = s.Height },
	"path-height":                  func(d, s *viz.Options) { d.PathHeight = s.PathHeight },
	"bin-width":                    func(d, s *viz.Options) { d.BinWidth = s.BinWidth },
	"show-all-nodes":               func(d, s *viz.Options) { d.ShowAllNodes = s.ShowAllNodes },
	"node-width":                   func(d, s *viz.Options) { d.NodeWidth = s.NodeWidth },
	"path-range":                   func(d, s *viz.Options) { d.PathRange = s.PathRange },
	"paths-to-display":             func(d, s *viz.Options) { d.PathsToDisplay = s.PathsToDisplay },
	"ignore-prefix":                func(d, s *viz.Options) { d.IgnorePrefix = s.IgnorePrefix },
	"cluster-paths":                func(d, s *viz.Options) { d.ClusterPaths = s.ClusterPaths },
	"cluster-threshold":            func(d, s *viz.Options) { d.ClusterThreshold = s.ClusterThreshold },
	"cluster-all-nodes":            func(d, s *viz.Options) { d.ClusterAllNodes = s.ClusterAllNodes },
	"cluster-gap":                  func(d, s *viz.Options) { d.ClusterGap = s.ClusterGap },
	"max-clusters":                 func(d, s *viz.Options) { d.MaxClusters = s.MaxClusters },
	"cluster-representatives":      func(d, s *viz.Options) { d.ClusterRepresentatives = s.ClusterRepresentatives },
	"dendrogram":                   func(d, s *viz.Options) { d.Dendrogram = s.Dendrogram },
	"dendrogram-width":             func(d, s *viz.Options) { d.DendrogramWidth = s.DendrogramWidth },
	"use-upgma":                    func(d, s *viz.Options) { d.UseUPGMA = s.UseUPGMA },
	"upgma-threshold":              func(d, s *viz.Options) { d.UPGMAThreshold = s.UPGMAThreshold },
	"pack-paths":                   func(d, s *viz.Options) { d.PackPaths = s.PackPaths },
	"link-path-pieces":             func(d, s *viz.Options) { d.LinkPathPieces = s.LinkPathPieces },
	"compressed-mode":              func(d, s *viz.Options) { d.CompressedMode = s.CompressedMode },
	"prefix-merges":                func(d, s *viz.Options) { d.PrefixMerges = s.PrefixMerges },
	"no-path-borders":              func(d, s *viz.Options) { d.NoPathBorders = s.NoPathBorders },
	"black-path-borders":           func(d, s *viz.Options) { d.BlackPathBorders = s.BlackPathBorders },
	"hide-path-names":              func(d, s *viz.Options) { d.HidePathNames = s.HidePathNames },
	"color-path-names-background":  func(d, s *viz.Options) { d.ColorNamesBackground = s.ColorNamesBackground },
	"max-num-of-characters":        func(d, s *viz.Options) { d.MaxNameChars = s.MaxNameChars },
	"color-by-prefix":              func(d, s *viz.Options) { d.ColorByPrefix = s.ColorByPrefix },
	"path-colors":                  func(d, s *viz.Options) { d.PathColors = s.PathColors },
	"show-strand":                  func(d, s *viz.Options) { d.ShowStrand = s.ShowStrand },
	"color-by-mean-inversion-rate": func(d, s *viz.Options) { d.ColorByInversion = s.ColorByInversion },
	"color-by-uncalled-bases":      func(d, s *viz.Options) { d.ColorByUncalled = s.ColorByUncalled },
	"color-by-mean-depth":          func(d, s *viz.Options) { d.ColorByMeanDepth = s.ColorByMeanDepth },
	"highlight-node-ids":           func(d, s *viz.Options) { d.HighlightNodeIDs = s.HighlightNodeIDs },
	"colorbrewer-palette":          func(d, s *viz.Options) { d.ColorbrewerPalette = s.ColorbrewerPalette },
	"no-grey-depth":                func(d, s *viz.Options) { d.NoGreyDepth = s.NoGreyDepth },
	"alignment-prefix":             func(d, s *viz.Options) { d.AlignmentPrefix = s.AlignmentPrefix },
	"change-darkness":              func(d, s *viz.Options) { d.ChangeDarkness = s.ChangeDarkness },
	"longest-path":                 func(d, s *viz.Options) { d.LongestPath = s.LongestPath },
	"white-to-black":               func(d, s *viz.Options) { d.WhiteToBlack = s.WhiteToBlack },
	"x-axis":                       func(d, s *viz.Options) { d.XAxis = s.XAxis },
	"x-ticks":                      func(d, s *viz.Options) { d.XTicks = s.XTicks },
	"x-axis-absolute":              func(d, s *viz.Options) { d.XAxisAbsolute = s.XAxisAbsolute },
	"annotation-file":              func(d, s *viz.Options) { d.AnnotationFile = s.AnnotationFile },
	"annotation-column":            func(d, s *viz.Options) { d.AnnotationColumn = s.AnnotationColumn },
	"annotation-bar-width":         func(d, s *viz.Options) { d.AnnotationBarWidth = s.AnnotationBarWidth },
	"legend-height":                func(d, s *viz.Options) { d.LegendHeight = s.LegendHeight },
	"no-cache":                     func(d, s *viz.Options) { d.NoCache = s.NoCache },
}

// runRender parses the GFA file, runs the pipeline, and writes the image.
func runRender(ctx context.Context, input string, opts *viz.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	logger.Infof("Loading %s", input)
	g, err := gfa.ParseFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d segments, %d paths, %d edges, %d bp",
		len(g.Segments), len(g.Paths), len(g.Edges), g.TotalLength)

	runner, err := newRunner(opts.NoCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	frame, err := runner.Render(ctx, g, *opts)
	if err != nil {
		return err
	}

	if err := sink.WriteFile(opts.Out, frame, sinkOptions(opts)...); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d paths into %d bins", len(frame.Rows), frame.Bins))
	printSuccess("Wrote %s", filepath.Base(opts.Out))
	printFile(opts.Out)
	if opts.ClusterPaths {
		base := strings.TrimSuffix(opts.Out, filepath.Ext(opts.Out))
		printFile(base + ".clusters.tsv")
		printFile(base + ".medoids.tsv")
	}
	return nil
}

// sinkOptions translates the border and name flags into sink options.
func sinkOptions(opts *viz.Options) []sink.Option {
	var out []sink.Option
	if opts.HidePathNames {
		out = append(out, sink.WithHiddenNames())
	}
	if opts.NoPathBorders {
		out = append(out, sink.WithoutBorders())
	}
	if opts.BlackPathBorders {
		out = append(out, sink.WithBlackBorders())
	}
	if opts.ColorNamesBackground {
		out = append(out, sink.WithNameBackgrounds())
	}
	return out
}
