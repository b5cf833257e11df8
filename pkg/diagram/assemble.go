package diagram

import (
	"fmt"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/graph"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// Metadata keys set by the built-in constructors.
const (
	MetaLabel = "label" // Label on nodes
	MetaKind  = "kind"  // Kind on edges
)

// Dimensionality selects the graph constructor.
type Dimensionality string

const (
	TwoD   Dimensionality = "2d"
	ThreeD Dimensionality = "3d"
)

// DefaultDimensionality is used when none is given or the requested one is unknown.
const DefaultDimensionality = TwoD

// ParseDimensionality parses "2d" or "3d" (case-insensitive; "2" and "3" also
// accepted). Unknown values return DefaultDimensionality together with an
// INVALID_OPTION error, so callers may report the problem and carry on.
func ParseDimensionality(s string) (Dimensionality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "2d", "2":
		return TwoD, nil
	case "3d", "3":
		return ThreeD, nil
	}
	return DefaultDimensionality, errors.Configuration("dimensionality", "unsupported value %q (must be '2d' or '3d'), using %s", s, DefaultDimensionality)
}

// Constructor builds a graph from vertices, styled edges and one label per vertex.
type Constructor func(vertices []string, edges []StyledEdge, labels map[string]Label) (*graph.Graph, error)

// Options configures Assemble.
type Options struct {
	Labels         LabelOptions
	Dimensionality Dimensionality
}

// DefaultOptions returns captions shown and a 2-D layout.
func DefaultOptions() Options {
	return Options{Labels: DefaultLabelOptions(), Dimensionality: DefaultDimensionality}
}

// Assembler pairs classes with labels and edges with styles, then delegates
// graph construction to the constructor registered for the requested
// dimensionality.
type Assembler struct {
	Constructors map[Dimensionality]Constructor
}

// NewAssembler returns an Assembler with the built-in 2-D and 3-D constructors.
func NewAssembler() *Assembler {
	return &Assembler{Constructors: map[Dimensionality]Constructor{
		TwoD:   Directed,
		ThreeD: Directed3D,
	}}
}

// Assemble builds the diagram graph of m. An unregistered dimensionality
// falls back to the default constructor without error.
func (a *Assembler) Assemble(m *relations.Model, opts Options) (*graph.Graph, error) {
	build := a.constructor(opts.Dimensionality)
	if build == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "no graph constructor registered for %s", DefaultDimensionality)
	}

	classes := m.Classes()
	labels := make(map[string]Label, len(classes))
	for _, c := range classes {
		labels[c] = RenderLabel(c, m.IsAbstract(c), m.AbstractMethods(c), m.RegularMethods(c), opts.Labels)
	}
	return build(classes, Classify(m), labels)
}

func (a *Assembler) constructor(d Dimensionality) Constructor {
	if c, ok := a.Constructors[d]; ok && c != nil {
		return c
	}
	return a.Constructors[DefaultDimensionality]
}

// Directed builds a 2-D directed graph laid out top-down by Graphviz dot.
func Directed(vertices []string, edges []StyledEdge, labels map[string]Label) (*graph.Graph, error) {
	return construct(graph.Metadata{graph.MetaLayout: "dot", graph.MetaDim: 2}, vertices, edges, labels)
}

// Directed3D builds a directed graph laid out in three dimensions by
// Graphviz neato and projected for drawing.
func Directed3D(vertices []string, edges []StyledEdge, labels map[string]Label) (*graph.Graph, error) {
	return construct(graph.Metadata{graph.MetaLayout: "neato", graph.MetaDim: 3}, vertices, edges, labels)
}

func construct(meta graph.Metadata, vertices []string, edges []StyledEdge, labels map[string]Label) (*graph.Graph, error) {
	g := graph.New(meta)
	for _, v := range vertices {
		node := graph.Node{ID: v, Meta: graph.Metadata{}}
		if l, ok := labels[v]; ok {
			node.Meta[MetaLabel] = l
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("vertex %q: %w", v, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(graph.Edge{From: e.From, To: e.To, Meta: graph.Metadata{MetaKind: e.Kind}}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// LabelOf returns the label stored on n by the built-in constructors.
func LabelOf(n *graph.Node) (Label, bool) {
	l, ok := n.Meta[MetaLabel].(Label)
	return l, ok
}

// KindOf returns the kind stored on e by the built-in constructors.
func KindOf(e graph.Edge) (Kind, bool) {
	k, ok := e.Meta[MetaKind].(Kind)
	return k, ok
}
