// Package sink renders computed frames to image files.
//
// # Overview
//
// A "sink" serializes a [viz.Frame] into a final output format. Both
// sinks share one drawing pipeline: the frame is flattened into a list
// of axis-aligned rectangles, lines, and text runs, which [RenderSVG]
// emits as SVG elements and [RenderPNG] rasterizes into a PNG. The two
// outputs therefore always agree on geometry.
//
// Basic usage:
//
//	svg := sink.RenderSVG(frame, sink.WithoutBorders())
//	png, err := sink.RenderPNG(frame)
//
// [WriteFile] picks the sink from the output path's extension:
//
//	err := sink.WriteFile("out.png", frame, opts...)
//
// # Layout
//
// The canvas is assembled left to right: dendrogram panel, cluster
// bar, annotation bar, path names, then the bin grid, with the
// annotation legend above and the axis plus edge band below. All
// widths and heights come from the frame; the sinks add nothing of
// their own beyond the name column, which is sized from the longest
// label and the per-row character size.
//
// # Options
//
//   - [WithHiddenNames]: drop the name column entirely
//   - [WithoutBorders]: no separator gap between adjacent path rows
//   - [WithBlackBorders]: draw the separators black instead of white
//   - [WithNameBackgrounds]: fill name cells with the path's identity color
//
// # Text
//
// SVG text uses a monospace font at the computed character size. PNG
// text is drawn with a built-in 5x8 bitmap font scaled to the same
// cell, with non-ASCII characters rendered as '?' and truncated names
// finished with a trailing-dots glyph.
//
// [viz.Frame]: github.com/pangenome/gfalook/pkg/viz.Frame
package sink
