package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/umlgraph/pkg/graph"
	umlio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/observability"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
	"github.com/matzehuels/umlgraph/pkg/render/nodelink"
)

// rendererGraphviz names Graphviz in pipeline hook events.
const rendererGraphviz = "graphviz"

// RenderGraph renders g in one format. dot must be nodelink.ToDOT of g.
func RenderGraph(g *graph.Graph, dot, format string, scale float64) ([]byte, error) {
	engine := nodelink.Engine(g)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(dot, engine)
	case FormatPNG:
		return nodelink.RenderPNG(dot, engine, scale)
	case FormatPDF:
		return nodelink.RenderPDF(dot, engine)
	case FormatJSON:
		var buf bytes.Buffer
		if err := umlio.WriteGraphJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, ValidateFormat(format)
}

// RenderGraphFormats renders g in every requested format.
func RenderGraphFormats(ctx context.Context, g *graph.Graph, dot string, formats []string, scale float64) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, rendererGraphviz, formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderGraph(g, dot, format, scale)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, rendererGraphviz, formats, time.Since(start), err)
			return nil, err
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, rendererGraphviz, formats, time.Since(start), nil)
	return artifacts, nil
}

// RenderPlantUML passes text to the renderer. Collaborator failures are
// returned as they are.
func RenderPlantUML(ctx context.Context, r plantuml.Renderer, text string, format plantuml.Format) ([]byte, error) {
	formats := []string{string(format)}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, r.Name(), formats)
	start := time.Now()

	data, err := r.Render(ctx, text, format)
	hooks.OnRenderComplete(ctx, r.Name(), formats, time.Since(start), err)
	return data, err
}
