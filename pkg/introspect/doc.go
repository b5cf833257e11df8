// Package introspect discovers classes and their relationships in Go and
// Python source code using tree-sitter.
//
// # Overview
//
// [Scanner.Scan] walks a directory and parses every supported file. The
// result lists the classes found and, per class, the methods it declares and
// the classes it forwards to:
//
//   - Go: struct and interface types are classes. Interfaces are abstract
//     and their method set is abstract. Embedded fields are forwarded
//     references. A named field of another class's type is an association;
//     a slice, array or map of another class is an aggregation.
//   - Python: class definitions are classes. Superclasses are forwarded
//     references. Methods decorated with @abstractmethod are abstract, and a
//     class deriving from ABC (or with metaclass=ABCMeta) or declaring an
//     abstract method is abstract.
//
// [Result.Options] turns the scan into relationship options whose Lookup
// reports the forwarded references, so the inheritance edges are derived by
// [relations.DiscoverInheritance] rather than declared.
//
// [relations.DiscoverInheritance]: github.com/matzehuels/umlgraph/pkg/relations.DiscoverInheritance
package introspect
