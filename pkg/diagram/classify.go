package diagram

import (
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// Kind is the relationship an edge is drawn as.
type Kind int

const (
	// KindInheritance points from child to parent with an open triangle.
	KindInheritance Kind = iota
	// KindAssociation is a plain line without arrowheads.
	KindAssociation
	// KindDirectedAssociation is a plain line with an open arrowhead.
	KindDirectedAssociation
	// KindAggregation ends in an open diamond at the whole.
	KindAggregation
)

var kindNames = map[Kind]string{
	KindInheritance:         "inheritance",
	KindAssociation:         "association",
	KindDirectedAssociation: "directed-association",
	KindAggregation:         "aggregation",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Style is the Graphviz edge styling for a Kind.
type Style struct {
	ArrowHead string // Graphviz arrowhead shape
	Dir       string // Graphviz dir attribute; empty for the default
}

// Attrs returns the style as Graphviz attribute assignments.
func (s Style) Attrs() []string {
	var attrs []string
	if s.Dir != "" {
		attrs = append(attrs, "dir="+s.Dir)
	}
	if s.ArrowHead != "" {
		attrs = append(attrs, "arrowhead="+s.ArrowHead)
	}
	return attrs
}

var kindStyles = map[Kind]Style{
	KindInheritance:         {ArrowHead: "empty"},
	KindAssociation:         {Dir: "none", ArrowHead: "none"},
	KindDirectedAssociation: {ArrowHead: "vee"},
	KindAggregation:         {ArrowHead: "odiamond"},
}

// Style returns the rendering rule for k.
func (k Kind) Style() Style { return kindStyles[k] }

// StyledEdge is a directed edge tagged with the relationship it is drawn as.
type StyledEdge struct {
	From string
	To   string
	Kind Kind
}

// Classify assigns a Kind to every edge of m.
//
// Inheritance and association edges are merged into one list of ordered
// pairs, parents first, keeping the first occurrence of each pair. Each pair
// then takes the first matching rule:
//
//  1. declared as a directed association in the same orientation: directed association
//  2. declared as an undirected association in either orientation: association
//  3. otherwise: inheritance
//
// Aggregation edges are appended afterwards as declared. They are not
// merged with the other lists, so a pair given both as a parent and as an
// aggregation is drawn twice.
func Classify(m *relations.Model) []StyledEdge {
	assocs := m.Associations()

	var edges []StyledEdge
	seen := make(map[[2]string]bool)
	add := func(from, to string) {
		key := [2]string{from, to}
		if seen[key] {
			return
		}
		seen[key] = true
		edges = append(edges, StyledEdge{From: from, To: to, Kind: classifyPair(from, to, assocs)})
	}

	for _, p := range m.Parents() {
		add(p.From, p.To)
	}
	for _, p := range assocs {
		add(p.From, p.To)
	}

	for _, p := range m.Aggregations() {
		edges = append(edges, StyledEdge{From: p.From, To: p.To, Kind: KindAggregation})
	}
	return edges
}

func classifyPair(from, to string, assocs []relations.Pair) Kind {
	for _, a := range assocs {
		if !a.Undirected && a.From == from && a.To == to {
			return KindDirectedAssociation
		}
	}
	for _, a := range assocs {
		if a.Undirected && a.Matches(from, to) {
			return KindAssociation
		}
	}
	return KindInheritance
}
