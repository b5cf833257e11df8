package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/graph"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

type tomlDescription struct {
	ShowExplanatoryColumn *bool    `toml:"show_explanatory_column,omitempty"`
	Dimensionality        string   `toml:"dimensionality,omitempty"`
	Classes               []string `toml:"classes,omitempty"`
	AbstractClasses       []string `toml:"abstract_classes,omitempty"`
	Parents               []string `toml:"parents,omitempty"`
	Associations          []string `toml:"associations,omitempty"`
	Aggregations          []string `toml:"aggregations,omitempty"`
}

// WriteTOML encodes d as a TOML description. Pairs are written in arrow
// notation and the methods tables keep their class order, so [ReadTOML]
// restores the same Options.
func WriteTOML(d *Description, w io.Writer) error {
	doc := tomlDescription{
		Classes:         d.Options.Classes,
		AbstractClasses: d.Options.AbstractClasses,
		Parents:         pairStrings(d.Options.Parents),
		Associations:    pairStrings(d.Options.Associations),
		Aggregations:    pairStrings(d.Options.Aggregations),
	}
	if !d.Diagram.Labels.ShowExplanatoryColumn {
		show := false
		doc.ShowExplanatoryColumn = &show
	}
	if d.Diagram.Dimensionality != "" && d.Diagram.Dimensionality != diagram.DefaultDimensionality {
		doc.Dimensionality = string(d.Diagram.Dimensionality)
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := writeMethodsTable(w, relations.FieldAbstractMethods, d.Options.AbstractMethods); err != nil {
		return err
	}
	return writeMethodsTable(w, relations.FieldRegularMethods, d.Options.RegularMethods)
}

// writeMethodsTable writes one class per encoder call; the encoder sorts
// map keys, which would lose the class order.
func writeMethodsTable(w io.Writer, name string, m relations.MethodsMap) error {
	if len(m) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n[%s]\n", name); err != nil {
		return err
	}
	enc := toml.NewEncoder(w)
	for _, s := range m {
		methods := s.Methods
		if methods == nil {
			methods = []string{}
		}
		if err := enc.Encode(map[string][]string{s.Class: methods}); err != nil {
			return fmt.Errorf("encode %s.%s: %w", name, s.Class, err)
		}
	}
	return nil
}

func pairStrings(pairs []relations.Pair) []string {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}

type graphJSON struct {
	Layout string     `json:"layout"`
	Dim    int        `json:"dim,omitempty"`
	Nodes  []nodeJSON `json:"nodes"`
	Edges  []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type edgeJSON struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Kind      string `json:"kind,omitempty"`
	ArrowHead string `json:"arrowhead,omitempty"`
	Dir       string `json:"dir,omitempty"`
}

// WriteGraphJSON encodes an assembled graph as JSON and writes it to w.
// Labels are written in their plain-text form.
func WriteGraphJSON(g *graph.Graph, w io.Writer) error {
	out := graphJSON{
		Layout: g.Meta().String(graph.MetaLayout),
		Nodes:  make([]nodeJSON, 0, g.NodeCount()),
		Edges:  make([]edgeJSON, 0, g.EdgeCount()),
	}
	if dim, ok := g.Meta()[graph.MetaDim].(int); ok {
		out.Dim = dim
	}

	for _, n := range g.Nodes() {
		nd := nodeJSON{ID: n.ID}
		if l, ok := diagram.LabelOf(n); ok {
			nd.Label = l.PlainText()
		}
		out.Nodes = append(out.Nodes, nd)
	}
	for _, e := range g.Edges() {
		ed := edgeJSON{From: e.From, To: e.To}
		if k, ok := diagram.KindOf(e); ok {
			style := k.Style()
			ed.Kind, ed.ArrowHead, ed.Dir = k.String(), style.ArrowHead, style.Dir
		}
		out.Edges = append(out.Edges, ed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
