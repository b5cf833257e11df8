// Package diagram turns a relationship model into a styled class-diagram graph.
//
// Three steps run in order:
//
//  1. [Classify] tags every edge with exactly one [Kind] using a fixed rule
//     chain, so a parent pair that is also listed as an association is drawn
//     as an association.
//  2. [RenderLabel] builds the two-column label for each class: captions on
//     the left, the class name and its methods on the right. Abstract names
//     and methods are italic.
//  3. [Assembler.Assemble] hands vertices, styled edges and labels to an
//     injectable [Constructor] that produces the [graph.Graph]. The built-in
//     constructors lay out in two or three dimensions.
//
// The resulting graph is rendered by package nodelink.
//
// [graph.Graph]: github.com/matzehuels/umlgraph/pkg/graph
package diagram
