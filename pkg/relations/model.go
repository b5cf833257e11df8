package relations

import "slices"

// Model is the normalized relationship model shared by the graph and text
// outputs. It is immutable: accessors return copies.
type Model struct {
	classes         []string
	parents         []Pair
	associations    []Pair
	aggregations    []Pair
	abstractMethods MethodsMap
	regularMethods  MethodsMap
	abstract        map[string]bool
}

// Classes returns the discovered classes in discovery order.
func (m *Model) Classes() []string { return slices.Clone(m.classes) }

// Parents returns the inheritance edges (child → parent).
func (m *Model) Parents() []Pair { return slices.Clone(m.parents) }

// Associations returns the association edges as declared.
func (m *Model) Associations() []Pair { return slices.Clone(m.associations) }

// Aggregations returns the aggregation edges as declared.
func (m *Model) Aggregations() []Pair { return slices.Clone(m.aggregations) }

// AbstractMethods returns the abstract methods of class, in declaration order.
func (m *Model) AbstractMethods(class string) []string {
	return slices.Clone(m.abstractMethods.Get(class))
}

// RegularMethods returns the regular methods of class, in declaration order.
func (m *Model) RegularMethods(class string) []string {
	return slices.Clone(m.regularMethods.Get(class))
}

// IsAbstract reports whether class was declared abstract.
func (m *Model) IsAbstract(class string) bool { return m.abstract[class] }

// ParentsOf returns the parents of class in the order their edges were declared.
func (m *Model) ParentsOf(class string) []string {
	var out []string
	for _, p := range m.parents {
		if p.From == class {
			out = append(out, p.To)
		}
	}
	return out
}

// HasClass reports whether class is part of the model.
func (m *Model) HasClass(class string) bool {
	return slices.Contains(m.classes, class)
}
