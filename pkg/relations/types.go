package relations

import (
	"fmt"
	"slices"
)

// Input field names, shared by Decode, validation errors and description files.
const (
	FieldParents         = "parents"
	FieldAbstractMethods = "abstract_methods"
	FieldRegularMethods  = "regular_methods"
	FieldAssociations    = "associations"
	FieldAggregations    = "aggregations"
	FieldAbstractClasses = "abstract_classes"
	FieldClasses         = "classes"
)

// Pair is a relationship between two classes.
//
// For parent edges From is the child and To the parent. For aggregations
// From is the part and To the whole. Undirected pairs are only meaningful
// for associations and aggregations.
type Pair struct {
	From       string `json:"from" toml:"from"`
	To         string `json:"to" toml:"to"`
	Undirected bool   `json:"undirected,omitempty" toml:"undirected,omitempty"`
}

// Directed returns a directed pair from → to.
func Directed(from, to string) Pair { return Pair{From: from, To: to} }

// Undirected returns an undirected pair between a and b.
func Undirected(a, b string) Pair { return Pair{From: a, To: b, Undirected: true} }

// Reverse returns the pair with its endpoints swapped.
func (p Pair) Reverse() Pair { return Pair{From: p.To, To: p.From, Undirected: p.Undirected} }

// Matches reports whether p connects from and to. Directed pairs match one
// orientation only; undirected pairs match both.
func (p Pair) Matches(from, to string) bool {
	if p.From == from && p.To == to {
		return true
	}
	return p.Undirected && p.From == to && p.To == from
}

// String formats the pair using the arrow notation accepted by Decode.
func (p Pair) String() string {
	if p.Undirected {
		return fmt.Sprintf("%s <-> %s", p.From, p.To)
	}
	return fmt.Sprintf("%s -> %s", p.From, p.To)
}

// MethodSet lists the methods declared for one class.
type MethodSet struct {
	Class   string
	Methods []string
}

// MethodsMap maps class names to method lists, keeping insertion order.
type MethodsMap []MethodSet

// Get returns the methods listed for class, or nil.
func (m MethodsMap) Get(class string) []string {
	for _, s := range m {
		if s.Class == class {
			return s.Methods
		}
	}
	return nil
}

// Keys returns the class names in insertion order.
func (m MethodsMap) Keys() []string {
	keys := make([]string, len(m))
	for i, s := range m {
		keys[i] = s.Class
	}
	return keys
}

func (m MethodsMap) clone() MethodsMap {
	out := make(MethodsMap, len(m))
	for i, s := range m {
		out[i] = MethodSet{Class: s.Class, Methods: slices.Clone(s.Methods)}
	}
	return out
}

// ReferenceLookup returns the classes that class delegates or forwards to.
// It stands in for live method-table introspection and must be a pure
// function of its argument.
type ReferenceLookup func(class string) ([]string, error)

// Options is the complete relationship description of a diagram.
// Every field is optional.
type Options struct {
	Parents         []Pair
	AbstractMethods MethodsMap
	RegularMethods  MethodsMap
	Associations    []Pair
	Aggregations    []Pair

	// AbstractClasses marks classes whose names render as abstract.
	AbstractClasses []string

	// Classes names additional classes, typically discovered by
	// introspection, that take part even without edges or methods.
	Classes []string

	// Lookup, when set, derives extra parent edges from delegated references.
	Lookup ReferenceLookup
}
