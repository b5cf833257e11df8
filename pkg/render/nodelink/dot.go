package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/graph"
	"github.com/matzehuels/umlgraph/pkg/render"
)

// DefaultEngine is the Graphviz layout used when a graph names none.
const DefaultEngine = "dot"

// Options configures node-link diagram rendering.
type Options struct {
	// RankDir is the dot rank direction. Empty means "BT", which places
	// parents above their children.
	RankDir string

	// FontName sets the node font. Empty leaves the Graphviz default.
	FontName string
}

// ToDOT converts a class diagram graph to Graphviz DOT source.
//
// Nodes carrying a [diagram.Label] are drawn as that label's table; other
// nodes fall back to their ID. Edges carrying a [diagram.Kind] get that
// kind's arrow style. Graphs laid out with neato get dim=3 when their dim
// metadata is 3.
func ToDOT(g *graph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "BT"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	if Engine(g) != DefaultEngine {
		fmt.Fprintf(&buf, "  layout=%s;\n", Engine(g))
		buf.WriteString("  overlap=false;\n")
		buf.WriteString("  splines=true;\n")
	}
	if dim, ok := g.Meta()[graph.MetaDim].(int); ok && dim == 3 {
		buf.WriteString("  dim=3;\n")
	}
	nodeAttrs := []string{"shape=plain", "fontsize=14"}
	if opts.FontName != "" {
		nodeAttrs = append(nodeAttrs, fmt.Sprintf("fontname=%q", opts.FontName))
	}
	fmt.Fprintf(&buf, "  node [%s];\n", strings.Join(nodeAttrs, ", "))
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtNodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeAttrs(n *graph.Node) []string {
	if l, ok := diagram.LabelOf(n); ok {
		return []string{"label=<" + l.HTML() + ">"}
	}
	return []string{"shape=box", fmt.Sprintf("label=%q", n.ID)}
}

func fmtEdgeAttrs(e graph.Edge) []string {
	k, ok := diagram.KindOf(e)
	if !ok {
		return nil
	}
	return k.Style().Attrs()
}

// Engine returns the Graphviz layout named in g's metadata, or DefaultEngine.
func Engine(g *graph.Graph) string {
	if s := g.Meta().String(graph.MetaLayout); s != "" {
		return s
	}
	return DefaultEngine
}

// RenderSVG renders DOT source to SVG using the given Graphviz layout engine.
// An empty engine selects DefaultEngine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot, engine string) ([]byte, error) {
	if engine == "" {
		engine = DefaultEngine
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot, engine string) ([]byte, error) {
	svg, err := RenderSVG(dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot, engine string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot, engine)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
