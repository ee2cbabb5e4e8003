// Package pkg provides the core libraries for gfalook variation graph visualization.
//
// # Overview
//
// gfalook renders GFA variation graphs as 1D images: every path becomes a
// horizontal bar on a shared pangenomic coordinate axis. The pkg directory is
// organized into five main areas:
//
//  1. [gfa] - Graph model and GFA parsing (S/P/W/L records)
//  2. [viz] - The pipeline (binning, similarity, clustering, layout, coloring)
//  3. [render] - Image output (SVG and PNG sinks)
//  4. [cache] - Result memoization for expensive pipeline stages
//  5. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow through gfalook:
//
//	GFA file
//	     ↓
//	[gfa] package (parse segments, paths, edges)
//	     ↓
//	[viz] package (bin paths, cluster, lay out rows, assign colors)
//	     ↓
//	[render/sink] package (SVG / PNG serialization)
//	     ↓
//	image file
//
// # Quick Start
//
// Parse a graph and render it:
//
//	import (
//	    "context"
//	    "github.com/pangenome/gfalook/pkg/gfa"
//	    "github.com/pangenome/gfalook/pkg/render/sink"
//	    "github.com/pangenome/gfalook/pkg/viz"
//	)
//
//	g, err := gfa.ParseFile("graph.gfa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	runner := viz.NewRunner(nil, nil)
//	frame, err := runner.Render(context.Background(), g, viz.Options{Out: "graph.png"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sink.WriteFile("graph.png", frame); err != nil {
//	    log.Fatal(err)
//	}
//
// [gfa]: github.com/pangenome/gfalook/pkg/gfa
// [viz]: github.com/pangenome/gfalook/pkg/viz
// [render]: github.com/pangenome/gfalook/pkg/render
// [render/sink]: github.com/pangenome/gfalook/pkg/render/sink
// [cache]: github.com/pangenome/gfalook/pkg/cache
// [errors]: github.com/pangenome/gfalook/pkg/errors
// [observability]: github.com/pangenome/gfalook/pkg/observability
// [buildinfo]: github.com/pangenome/gfalook/pkg/buildinfo
package pkg
