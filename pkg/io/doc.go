// Package io reads and writes relationship descriptions and exports
// assembled diagram graphs.
//
// # Description Files
//
// A description is a JSON or TOML document holding the relationship inputs
// of a diagram plus two display settings:
//
//	{
//	  "parents": [["Circle", "Shape"], "Square -> Shape"],
//	  "associations": ["Canvas <-> Shape"],
//	  "aggregations": [{"from": "Point", "to": "Circle"}],
//	  "abstract_methods": {"Shape": ["area"]},
//	  "regular_methods": {"Circle": ["radius"], "Square": ["side"]},
//	  "abstract_classes": ["Shape"],
//	  "show_explanatory_column": true,
//	  "dimensionality": "2d"
//	}
//
// The same document as TOML:
//
//	parents = [["Circle", "Shape"], "Square -> Shape"]
//	abstract_classes = ["Shape"]
//
//	[abstract_methods]
//	Shape = ["area"]
//
// Every field is optional. The key order of the methods tables is kept, so
// class discovery and the PlantUML text follow the document.
//
// Use [ReadDescription] to read a file by extension, or [ReadJSON] and
// [ReadTOML] to read from any io.Reader. Shape errors are returned as
// INVALID_INPUT errors naming the field. An unrecognized dimensionality is
// not fatal: it is recorded in [Description.Warnings] and the 2-D default
// is used.
//
// # Export
//
// [WriteTOML] writes a description back out; the scan command uses it to
// save the relationships found in source code. [WriteGraphJSON] writes an
// assembled graph (vertices, plain-text labels and styled edges) for
// external tools.
package io
