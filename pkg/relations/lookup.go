package relations

import (
	"slices"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// DiscoverInheritance derives parent edges from delegated references.
//
// Every ordered pair of distinct classes (A, B) is evaluated independently:
// A → B is emitted when lookup(A) contains B. References to classes outside
// the given set are ignored. Cycles are kept as declared.
//
// Edges come out grouped by source in the order of classes, and within a
// source in the order of classes as well, so the result is deterministic
// regardless of the order lookup returns references in.
func DiscoverInheritance(classes []string, lookup ReferenceLookup) ([]Pair, error) {
	if lookup == nil {
		return nil, nil
	}

	refs := make(map[string][]string, len(classes))
	for _, a := range classes {
		r, err := lookup(a)
		if err != nil {
			return nil, &errors.CollaboratorError{
				Collaborator: "reference-lookup",
				Request:      a,
				Cause:        err,
			}
		}
		refs[a] = r
	}

	var pairs []Pair
	for _, a := range classes {
		for _, b := range classes {
			if a != b && slices.Contains(refs[a], b) {
				pairs = append(pairs, Directed(a, b))
			}
		}
	}
	return pairs, nil
}

// StaticLookup returns a ReferenceLookup backed by a fixed table.
// It is the simplest way to feed precomputed introspection results in.
func StaticLookup(table map[string][]string) ReferenceLookup {
	return func(class string) ([]string, error) {
		return table[class], nil
	}
}
