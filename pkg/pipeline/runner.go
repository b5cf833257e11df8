package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlgraph/pkg/cache"
	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/observability"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
	"github.com/matzehuels/umlgraph/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching and logging behave the same everywhere.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build, assemble and render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	// Stage 1: Build
	buildStart := time.Now()
	d, m, files, err := Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Description: d,
		Model:       m,
		Edges:       diagram.Classify(m),
		Warnings:    append([]error(nil), d.Warnings...),
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.ClassCount = len(m.Classes())
	result.Stats.EdgeCount = len(result.Edges)
	result.Stats.Files = files

	dopts, warn := opts.diagramOptions(d.Diagram)
	if warn != nil {
		result.Warnings = append(result.Warnings, warn)
	}
	for _, w := range result.Warnings {
		logger.Warn(w.Error())
	}

	logger.Info("built model",
		"classes", result.Stats.ClassCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 2: Assemble and render Graphviz outputs
	if len(opts.Formats) > 0 {
		assembleStart := time.Now()
		g, err := Assemble(ctx, m, dopts)
		if err != nil {
			return nil, err
		}
		result.Graph = g
		result.Stats.AssembleTime = time.Since(assembleStart)

		renderStart := time.Now()
		artifacts, hit, err := r.renderGraph(ctx, result, opts, dopts)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.CacheInfo.GraphHit = hit
		result.Stats.RenderTime = time.Since(renderStart)

		logger.Info("rendered graph",
			"formats", opts.Formats,
			"dim", dopts.Dimensionality,
			"cached", hit,
			"duration", result.Stats.RenderTime)
	}

	// Stage 3: PlantUML
	result.PlantUML = plantuml.Serialize(m)
	if opts.Renderer != nil {
		data, hit, err := r.renderPlantUML(ctx, result.PlantUML, opts)
		if err != nil {
			return nil, err
		}
		result.Rendered = data
		result.CacheInfo.PlantUMLHit = hit
		logger.Info("rendered plantuml",
			"renderer", opts.Renderer.Name(),
			"format", opts.PlantUMLFormat,
			"cached", hit)
	}

	return result, nil
}

// renderGraph renders every requested Graphviz format. Cache keys hash the
// DOT source, which fully determines the layout.
func (r *Runner) renderGraph(ctx context.Context, res *Result, opts Options, dopts diagram.Options) (map[string][]byte, bool, error) {
	dot := nodelink.ToDOT(res.Graph, nodelink.Options{RankDir: opts.RankDir})
	dotHash := cache.Hash([]byte(dot))

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !cacheable(format) {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.DiagramKey(dotHash, opts.diagramKeyOpts(format, dopts))
		if data, ok := r.get(ctx, cache.KindDiagram, key, opts.Refresh); ok {
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := RenderGraphFormats(ctx, res.Graph, dot, missing, opts.Scale)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if cacheable(format) {
			key := r.Keyer.DiagramKey(dotHash, opts.diagramKeyOpts(format, dopts))
			r.set(ctx, cache.KindDiagram, key, data, cache.TTLDiagram)
		}
	}
	return artifacts, false, nil
}

func (r *Runner) renderPlantUML(ctx context.Context, text string, opts Options) ([]byte, bool, error) {
	format := plantuml.Format(opts.PlantUMLFormat)
	key := r.Keyer.PlantUMLKey(cache.Hash([]byte(text)), cache.PlantUMLKeyOpts{
		Renderer: rendererID(opts.Renderer),
		Format:   string(format),
	})
	if data, ok := r.get(ctx, cache.KindPlantUML, key, opts.Refresh); ok {
		return data, true, nil
	}

	data, err := RenderPlantUML(ctx, opts.Renderer, text, format)
	if err != nil {
		return nil, false, err
	}
	r.set(ctx, cache.KindPlantUML, key, data, cache.TTLPlantUML)
	return data, false, nil
}

// get reads key, reporting the outcome to cache hooks. Read errors count as misses.
func (r *Runner) get(ctx context.Context, kind, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "kind", kind, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

// set writes key. Write errors are logged and otherwise ignored.
func (r *Runner) set(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheable reports whether a format is worth caching. DOT and JSON are
// cheap to regenerate.
func cacheable(format string) bool {
	return format != FormatDOT && format != FormatJSON
}

// rendererID distinguishes renderers that share a name but not an endpoint.
func rendererID(r plantuml.Renderer) string {
	switch v := r.(type) {
	case *plantuml.Server:
		return v.Name() + "|" + v.BaseURL
	case *plantuml.Local:
		return v.Name() + "|" + v.Executable
	}
	return r.Name()
}
