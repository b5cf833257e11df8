package diagram

import (
	"testing"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/graph"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

func sampleModel(t *testing.T) *relations.Model {
	return mustModel(t, relations.Options{
		Parents:         []relations.Pair{relations.Directed("Circle", "Shape")},
		Aggregations:    []relations.Pair{relations.Directed("Point", "Circle")},
		AbstractMethods: relations.MethodsMap{{Class: "Shape", Methods: []string{"area"}}},
		RegularMethods:  relations.MethodsMap{{Class: "Circle", Methods: []string{"area", "radius"}}},
		AbstractClasses: []string{"Shape"},
	})
}

func TestAssemble(t *testing.T) {
	g, err := NewAssembler().Assemble(sampleModel(t), DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.Meta().String(graph.MetaLayout) != "dot" {
		t.Errorf("layout = %q, want dot", g.Meta().String(graph.MetaLayout))
	}

	for _, n := range g.Nodes() {
		l, ok := LabelOf(n)
		if !ok {
			t.Fatalf("node %s has no label", n.ID)
		}
		name := l.Rows[0][len(l.Rows[0])-1].Lines[0].Value
		if name != n.ID {
			t.Errorf("node %s paired with label for %s", n.ID, name)
		}
	}

	edges := g.Edges()
	if k, _ := KindOf(edges[0]); k != KindInheritance {
		t.Errorf("edge 0 kind = %v, want inheritance", k)
	}
	if k, _ := KindOf(edges[1]); k != KindAggregation {
		t.Errorf("edge 1 kind = %v, want aggregation", k)
	}
}

func TestAssembleDimensionality(t *testing.T) {
	tests := []struct {
		name   string
		dim    Dimensionality
		layout string
	}{
		{"2d", TwoD, "dot"},
		{"3d", ThreeD, "neato"},
		{"unknown falls back", Dimensionality("4d"), "dot"},
		{"empty falls back", "", "dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Dimensionality = tt.dim
			g, err := NewAssembler().Assemble(sampleModel(t), opts)
			if err != nil {
				t.Fatalf("Assemble() error: %v", err)
			}
			if got := g.Meta().String(graph.MetaLayout); got != tt.layout {
				t.Errorf("layout = %q, want %q", got, tt.layout)
			}
		})
	}
}

func TestAssembleInjectedConstructor(t *testing.T) {
	var gotVertices []string
	var gotEdges []StyledEdge
	var gotLabels map[string]Label

	a := &Assembler{Constructors: map[Dimensionality]Constructor{
		TwoD: func(v []string, e []StyledEdge, l map[string]Label) (*graph.Graph, error) {
			gotVertices, gotEdges, gotLabels = v, e, l
			return graph.New(nil), nil
		},
	}}

	if _, err := a.Assemble(sampleModel(t), Options{Dimensionality: ThreeD}); err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if len(gotVertices) != 3 || len(gotEdges) != 2 || len(gotLabels) != 3 {
		t.Errorf("constructor got %d vertices, %d edges, %d labels", len(gotVertices), len(gotEdges), len(gotLabels))
	}
	if _, ok := gotLabels["Point"]; !ok {
		t.Error("every vertex should have a label")
	}
}

func TestAssembleNoConstructor(t *testing.T) {
	a := &Assembler{}
	_, err := a.Assemble(sampleModel(t), DefaultOptions())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Assemble() error = %v, want UNSUPPORTED", err)
	}
}

func TestParseDimensionality(t *testing.T) {
	tests := []struct {
		in      string
		want    Dimensionality
		wantErr bool
	}{
		{"", TwoD, false},
		{"2d", TwoD, false},
		{"2D", TwoD, false},
		{"3d", ThreeD, false},
		{"3", ThreeD, false},
		{"4d", TwoD, true},
		{"flat", TwoD, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDimensionality(tt.in)
			if got != tt.want {
				t.Errorf("ParseDimensionality(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDimensionality(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("error code = %v, want INVALID_OPTION", errors.GetCode(err))
			}
		})
	}
}
