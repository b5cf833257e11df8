// Package render converts rendered diagrams between output formats.
//
// # Overview
//
// Class diagrams are drawn to SVG by the [nodelink] subpackage using
// Graphviz. [ToPDF] and [ToPNG] convert any SVG to other formats using the
// external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot, nodelink.Engine(g))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/umlgraph/pkg/render/nodelink
package render
