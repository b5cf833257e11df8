// Package relations builds the relationship model behind every class diagram.
//
// A diagram is described by five relationship inputs: parent edges,
// abstract methods per class, regular methods per class, associations and
// aggregations. [Normalize] validates them and produces an immutable [Model]
// holding the discovered class set and the canonical edge lists. Both the
// graph path (package diagram) and the text path (package plantuml) consume
// the same Model.
//
// # Input Shapes
//
// Typed callers fill an [Options] value directly. Untyped documents (JSON,
// TOML, HTTP bodies) go through [Decode] first, which checks the structural
// shape of every field and rejects anything that is not a pair or a
// class-to-methods mapping:
//
//	opts, err := relations.Decode(raw)     // shape checks
//	model, err := relations.Normalize(opts) // name checks, discovery
//
// Both steps fail with an INVALID_INPUT error whose Field names the
// offending input; nothing is built when validation fails.
//
// # Class Discovery
//
// Classes are never declared on their own. [Discover] collects every edge
// endpoint and methods-map key in first-appearance order: parents, then
// associations, aggregations, abstract-methods keys, regular-methods keys,
// and finally the explicit Classes list.
//
// # Inheritance From Introspection
//
// When the caller only knows class names, a [ReferenceLookup] can supply
// the classes each one delegates to. [DiscoverInheritance] scans every
// ordered pair and declares A → B whenever A refers to B.
package relations
