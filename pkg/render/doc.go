// Package render provides image output for variation graph frames.
//
// # Overview
//
// This package holds the final stage of the pipeline: turning a
// computed [viz.Frame] into image bytes. The [sink] subpackage
// implements the actual serializers:
//
//   - SVG: vector output built from the shared draw list
//   - PNG: raster output drawn with a built-in bitmap font
//
// Both sinks consume the same frame and the same flattened scene, so
// the two formats always agree pixel for pixel on geometry.
//
//	svg := sink.RenderSVG(frame)
//	png, err := sink.RenderPNG(frame)
//	err = sink.WriteFile("out.png", frame)
//
// [sink]: github.com/pangenome/gfalook/pkg/render/sink
// [viz.Frame]: github.com/pangenome/gfalook/pkg/viz.Frame
package render
