// Package pipeline runs the class diagram pipeline shared by the CLI and the
// HTTP API.
//
// # Stages
//
//  1. Build: read a description file (or scan source code), then normalize,
//     discover and classify relationships into a [relations.Model]
//  2. Assemble: turn the model into a labelled, styled [graph.Graph]
//  3. Render: emit DOT, SVG, PNG, PDF or JSON, plus PlantUML text and,
//     when a [plantuml.Renderer] is configured, its rendering
//
// Rendered artifacts are cached by the hash of their exact renderer input, so
// an unchanged diagram is never laid out twice.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "shapes.toml",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlgraph/pkg/cache"
	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/graph"
	umlio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/plantuml"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// Format constants for Graphviz outputs.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// ValidFormats is the set of supported Graphviz output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Input sources reported to pipeline hooks.
const (
	SourceDescription = "description"
	SourceScan        = "scan"
)

// Options contains all configuration for a pipeline run.
type Options struct {
	// Input. Description wins over Path, and Path over ScanRoot.
	Description *umlio.Description `json:"-"`
	Path        string             `json:"path,omitempty"`
	ScanRoot    string             `json:"scan_root,omitempty"`

	// Scan options
	Languages    []string `json:"languages,omitempty"`
	ExportedOnly bool     `json:"exported_only,omitempty"`
	IncludeTests bool     `json:"include_tests,omitempty"`
	NoGitignore  bool     `json:"no_gitignore,omitempty"`

	// Diagram options. Zero values keep the description's settings.
	Dimensionality      string `json:"dimensionality,omitempty"`
	NoExplanatoryColumn bool   `json:"no_explanatory_column,omitempty"`
	RankDir             string `json:"rankdir,omitempty"`

	// Graphviz outputs. Empty means no graph is assembled.
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// PlantUML rendering. A nil Renderer stops at the PlantUML text.
	Renderer       plantuml.Renderer `json:"-"`
	PlantUMLFormat string            `json:"plantuml_format,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Description is the input that was built, generated for scans.
	Description *umlio.Description

	// Model is the normalized relationship model.
	Model *relations.Model

	// Edges are the classified edges in emission order.
	Edges []diagram.StyledEdge

	// Graph is the assembled diagram, nil when no Graphviz format was requested.
	Graph *graph.Graph

	// PlantUML is the serialized inheritance diagram.
	PlantUML string

	// Artifacts contains Graphviz outputs keyed by format.
	Artifacts map[string][]byte

	// Rendered is the PlantUML renderer output, nil without a renderer.
	Rendered []byte

	// Warnings lists options that were rejected in favour of a default.
	Warnings []error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ClassCount   int
	EdgeCount    int
	Files        int // source files read by a scan
	BuildTime    time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which renderings came from the cache.
type CacheInfo struct {
	GraphHit    bool // all Graphviz artifacts were cached
	PlantUMLHit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.Configuration("format", "invalid format %q (must be one of: dot, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, ValidateFormats(formats)
}

// ValidateAndSetDefaults checks the input selection and formats and applies
// defaults. Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Description == nil && o.Path == "" && o.ScanRoot == "" {
		return errors.Validation("input", "a description, description path or scan root is required")
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Renderer != nil {
		f, err := plantuml.ParseFormat(o.PlantUMLFormat)
		if err != nil {
			return err
		}
		o.PlantUMLFormat = string(f)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// diagramOptions applies the overrides in o to the description's settings.
// An unknown dimensionality is returned as a warning.
func (o *Options) diagramOptions(d diagram.Options) (diagram.Options, error) {
	if o.NoExplanatoryColumn {
		d.Labels.ShowExplanatoryColumn = false
	}
	if o.Dimensionality == "" {
		return d, nil
	}
	dim, err := diagram.ParseDimensionality(o.Dimensionality)
	d.Dimensionality = dim
	return d, err
}

// diagramKeyOpts returns cache key options for a Graphviz artifact.
func (o *Options) diagramKeyOpts(format string, d diagram.Options) cache.DiagramKeyOpts {
	k := cache.DiagramKeyOpts{
		Format:                format,
		Dimensionality:        string(d.Dimensionality),
		ShowExplanatoryColumn: d.Labels.ShowExplanatoryColumn,
		RankDir:               o.RankDir,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
