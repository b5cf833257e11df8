// Package pkg provides the core libraries for umlgraph class diagrams.
//
// # Overview
//
// umlgraph turns a description of class relationships (inheritance,
// association, aggregation, abstract and regular methods) into a class
// diagram. The same model is emitted either as a Graphviz graph rendered to
// SVG, PNG or PDF, or as PlantUML text that an external renderer can draw.
// The pkg directory is organized into these areas:
//
//  1. [relations] - Relationship model (decode, validate, discover classes)
//  2. [diagram] - Edge classification, node labels and graph assembly
//  3. [plantuml] - PlantUML serialization and renderers
//  4. [pipeline] - Orchestration (build → assemble → render)
//  5. [cache] - Artifact caching (file, Redis, null)
//
// # Architecture
//
// The typical data flow through umlgraph:
//
//	TOML/JSON description or source tree
//	         ↓
//	    [io] / [introspect] packages (load relationships)
//	         ↓
//	    [relations] package (normalize into a Model)
//	         ↓
//	    [diagram] package (classify edges, assemble graph)
//	         ↓
//	    [render/nodelink] or [plantuml] packages
//	         ↓
//	    DOT/SVG/PNG/PDF/JSON or PlantUML output
//
// # Quick Start
//
// Normalize a set of relationships and render a diagram:
//
//	import (
//	    "github.com/matzehuels/umlgraph/pkg/diagram"
//	    "github.com/matzehuels/umlgraph/pkg/plantuml"
//	    "github.com/matzehuels/umlgraph/pkg/relations"
//	    "github.com/matzehuels/umlgraph/pkg/render/nodelink"
//	)
//
//	// 1. Build the model
//	m, _ := relations.Normalize(relations.Options{
//	    Parents:      []relations.Pair{relations.Directed("Circle", "Shape")},
//	    Associations: []relations.Pair{relations.Undirected("Shape", "Canvas")},
//	})
//
//	// 2. Assemble the graph
//	g, _ := diagram.NewAssembler().Assemble(m, diagram.DefaultOptions())
//
//	// 3. Render to SVG
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(dot, nodelink.Engine(g))
//
//	// Or emit PlantUML text instead
//	text := plantuml.Serialize(m)
//
// # Main Packages
//
// ## Domain Logic
//
// [relations] - Relationship model. Decodes raw pair lists, validates class
// and method names, discovers classes in first-occurrence order and
// optionally augments parent edges through a reference lookup.
//
// [diagram] - Classifies every related class pair into exactly one edge kind
// (inheritance, association or aggregation), renders class node labels and
// assembles 2-D or 3-D graphs.
//
// [introspect] - Discovers classes and relationships from Go and Python
// source trees using tree-sitter grammars.
//
// ## Visualization
//
// [render/nodelink] - Class diagrams rendered through Graphviz.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// [plantuml] - PlantUML text serialization plus local and server renderers.
//
// ## Serialization
//
// [graph] - Generic attributed graph with insertion-ordered nodes and edges.
//
// [io] - TOML/JSON description readers and writers, graph JSON export.
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline (build → assemble → render) used by the CLI
// and the HTTP server. Ensures consistent behavior across both entry points.
//
// [cache] - Cache interface with file, Redis and null implementations plus
// content-addressed key derivation.
//
// [errors] - Structured error codes shared by every package.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
package pkg
