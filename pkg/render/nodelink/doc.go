// Package nodelink renders class diagrams as Graphviz node-link diagrams.
//
// # Overview
//
// Each class becomes a node drawn as an HTML-like table (see
// [diagram.Label.HTML]) and each relationship an edge styled by its
// [diagram.Kind]. Graphs built by [diagram.Directed] are laid out by dot;
// graphs built by [diagram.Directed3D] are laid out by neato in three
// dimensions and projected onto the page.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot, nodelink.Engine(g))
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot, nodelink.Engine(g))
//	png, err := nodelink.RenderPNG(dot, nodelink.Engine(g), 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
