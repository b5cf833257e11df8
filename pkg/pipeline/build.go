package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/graph"
	"github.com/matzehuels/umlgraph/pkg/introspect"
	umlio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/observability"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// Load returns the description selected by opts: the given Description, the
// file at Path, or the result of scanning ScanRoot. The second return value
// is the number of source files read, zero unless scanning.
func Load(ctx context.Context, opts Options) (*umlio.Description, int, error) {
	switch {
	case opts.Description != nil:
		return opts.Description, 0, nil
	case opts.Path != "":
		d, err := umlio.ReadDescription(opts.Path)
		return d, 0, err
	}

	s := introspect.Scanner{
		ExportedOnly: opts.ExportedOnly,
		IncludeTests: opts.IncludeTests,
		NoGitignore:  opts.NoGitignore,
	}
	for _, name := range opts.Languages {
		lang, ok := introspect.ParseLanguage(name)
		if !ok {
			return nil, 0, errors.Configuration("language", "unsupported language %q (must be one of: go, python)", name)
		}
		s.Languages = append(s.Languages, lang)
	}
	res, err := s.Scan(ctx, opts.ScanRoot)
	if err != nil {
		return nil, 0, err
	}
	return &umlio.Description{Options: res.Options(), Diagram: diagram.DefaultOptions()}, res.Files, nil
}

// Build loads the input and normalizes it into a model.
func Build(ctx context.Context, opts Options) (*umlio.Description, *relations.Model, int, error) {
	source := SourceDescription
	if opts.Description == nil && opts.Path == "" {
		source = SourceScan
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, source)
	start := time.Now()

	d, files, err := Load(ctx, opts)
	if err != nil {
		hooks.OnBuildComplete(ctx, source, 0, time.Since(start), err)
		return nil, nil, 0, err
	}
	m, err := relations.Normalize(d.Options)
	if err != nil {
		hooks.OnBuildComplete(ctx, source, 0, time.Since(start), err)
		return nil, nil, 0, err
	}

	hooks.OnBuildComplete(ctx, source, len(m.Classes()), time.Since(start), nil)
	return d, m, files, nil
}

// Assemble builds the diagram graph of m.
func Assemble(ctx context.Context, m *relations.Model, d diagram.Options) (*graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, string(d.Dimensionality), len(m.Classes()))
	start := time.Now()

	g, err := diagram.NewAssembler().Assemble(m, d)
	hooks.OnAssembleComplete(ctx, string(d.Dimensionality), time.Since(start), err)
	return g, err
}
