// Package graph provides the directed multigraph that diagrams are assembled into.
//
// A [Graph] holds vertices and edges in insertion order. Vertices and edges
// carry a [Metadata] map; the diagram package stores labels and edge styles
// there, and the nodelink renderer reads them back when it emits DOT.
//
// Unlike a DAG, the graph accepts cycles and parallel edges: class diagrams
// may declare cyclic references, and an edge may be drawn once as an
// association and once more as an aggregation.
//
// # Basic Usage
//
//	g := graph.New(graph.Metadata{graph.MetaLayout: "dot"})
//	g.AddNode(graph.Node{ID: "Circle"})
//	g.AddNode(graph.Node{ID: "Shape"})
//	g.AddEdge(graph.Edge{From: "Circle", To: "Shape"})
//
// The zero value is not usable; create graphs with [New].
package graph
