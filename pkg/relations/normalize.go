package relations

import (
	"slices"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// Normalize validates opts and builds the relationship model.
//
// Validation covers class and method names in every input, rejects
// undirected parent edges and classes listed twice in a methods map. When
// opts.Lookup is set, parent edges discovered through it are appended after
// the declared ones, skipping duplicates.
//
// On any failure Normalize returns nil and an error; validation failures
// carry ErrCodeInvalidInput and name the offending field.
func Normalize(opts Options) (*Model, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	parents := append([]Pair(nil), opts.Parents...)
	if opts.Lookup != nil {
		discovered, err := DiscoverInheritance(Discover(opts), opts.Lookup)
		if err != nil {
			return nil, err
		}
		for _, p := range discovered {
			if !slices.Contains(parents, p) {
				parents = append(parents, p)
			}
		}
	}

	augmented := opts
	augmented.Parents = parents

	abstract := make(map[string]bool, len(opts.AbstractClasses))
	for _, c := range opts.AbstractClasses {
		abstract[c] = true
	}

	return &Model{
		classes:         Discover(augmented),
		parents:         parents,
		associations:    append([]Pair(nil), opts.Associations...),
		aggregations:    append([]Pair(nil), opts.Aggregations...),
		abstractMethods: opts.AbstractMethods.clone(),
		regularMethods:  opts.RegularMethods.clone(),
		abstract:        abstract,
	}, nil
}

func validate(opts Options) error {
	for i, p := range opts.Parents {
		if p.Undirected {
			return errors.Validation(FieldParents, "entry %d (%s) must be an ordered pair", i, p)
		}
	}
	for _, f := range []struct {
		name  string
		pairs []Pair
	}{
		{FieldParents, opts.Parents},
		{FieldAssociations, opts.Associations},
		{FieldAggregations, opts.Aggregations},
	} {
		for _, p := range f.pairs {
			if err := errors.ValidateClassName(f.name, p.From); err != nil {
				return err
			}
			if err := errors.ValidateClassName(f.name, p.To); err != nil {
				return err
			}
		}
	}

	for _, f := range []struct {
		name    string
		methods MethodsMap
	}{
		{FieldAbstractMethods, opts.AbstractMethods},
		{FieldRegularMethods, opts.RegularMethods},
	} {
		seen := make(map[string]bool, len(f.methods))
		for _, s := range f.methods {
			if err := errors.ValidateClassName(f.name, s.Class); err != nil {
				return err
			}
			if seen[s.Class] {
				return errors.Validation(f.name, "class %q listed more than once", s.Class)
			}
			seen[s.Class] = true
			for _, name := range s.Methods {
				if err := errors.ValidateMethodName(f.name, s.Class, name); err != nil {
					return err
				}
			}
		}
	}

	for _, f := range []struct {
		name    string
		classes []string
	}{
		{FieldAbstractClasses, opts.AbstractClasses},
		{FieldClasses, opts.Classes},
	} {
		for _, c := range f.classes {
			if err := errors.ValidateClassName(f.name, c); err != nil {
				return err
			}
		}
	}
	return nil
}
