package plantuml

import (
	"strings"
	"testing"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

func TestFromOptionsParents(t *testing.T) {
	text, err := FromOptions(relations.Options{
		Parents:        []relations.Pair{relations.Directed("D", "C"), relations.Directed("D", "A")},
		RegularMethods: relations.MethodsMap{{Class: "D", Methods: []string{"x"}}},
	})
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}

	want := strings.Join([]string{
		"@startuml",
		"class D {",
		" x",
		"}",
		"D --> C",
		"D --> A",
		"",
		"class C {",
		"}",
		"",
		"class A {",
		"}",
		"@enduml",
	}, "\n")
	if text != want {
		t.Errorf("FromOptions() =\n%s\nwant\n%s", text, want)
	}

	if n := strings.Count(text, "class D {"); n != 1 {
		t.Errorf("found %d blocks for D, want 1", n)
	}
	first := strings.Index(text, "D --> C")
	second := strings.Index(text, "D --> A")
	if first < 0 || second < 0 || first > second {
		t.Errorf("parent lines missing or out of order:\n%s", text)
	}
}

func TestFromOptionsAbstract(t *testing.T) {
	text, err := FromOptions(relations.Options{
		AbstractMethods: relations.MethodsMap{{Class: "A", Methods: []string{"a1"}}},
		AbstractClasses: []string{"A"},
	})
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}

	want := "@startuml\nabstract class A {\n {abstract} a1\n}\n@enduml"
	if text != want {
		t.Errorf("FromOptions() = %q, want %q", text, want)
	}
}

func TestFromOptionsMethodOrder(t *testing.T) {
	text, err := FromOptions(relations.Options{
		AbstractMethods: relations.MethodsMap{{Class: "S", Methods: []string{"area", "perimeter"}}},
		RegularMethods:  relations.MethodsMap{{Class: "S", Methods: []string{"name"}}},
	})
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}

	want := "class S {\n {abstract} area\n {abstract} perimeter\n name\n}"
	if !strings.Contains(text, want) {
		t.Errorf("FromOptions() = %q, want block %q", text, want)
	}
	if strings.HasPrefix(text, "@startuml\nabstract") {
		t.Error("class without abstract declaration should not be marked abstract")
	}
}

func TestFromOptionsSkipsAssociations(t *testing.T) {
	text, err := FromOptions(relations.Options{
		Associations: []relations.Pair{relations.Directed("A", "B")},
		Aggregations: []relations.Pair{relations.Undirected("B", "C")},
	})
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}

	for _, class := range []string{"A", "B", "C"} {
		if !strings.Contains(text, "class "+class+" {") {
			t.Errorf("missing block for %s", class)
		}
	}
	if strings.Contains(text, "-->") || strings.Contains(text, "o--") || strings.Contains(text, " -- ") {
		t.Errorf("associations and aggregations should not be rendered:\n%s", text)
	}
}

func TestFromOptionsEmpty(t *testing.T) {
	text, err := FromOptions(relations.Options{})
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}
	if text != "@startuml\n@enduml" {
		t.Errorf("FromOptions() = %q", text)
	}
}

func TestFromOptionsDeterministic(t *testing.T) {
	opts := relations.Options{
		Parents:         []relations.Pair{relations.Directed("B", "A"), relations.Directed("C", "B")},
		Associations:    []relations.Pair{relations.Undirected("C", "E")},
		AbstractMethods: relations.MethodsMap{{Class: "A", Methods: []string{"run"}}},
		RegularMethods:  relations.MethodsMap{{Class: "F", Methods: []string{"x"}}, {Class: "B", Methods: []string{"y"}}},
		AbstractClasses: []string{"A"},
	}

	first, err := FromOptions(opts)
	if err != nil {
		t.Fatalf("FromOptions() error: %v", err)
	}
	for range 10 {
		again, _ := FromOptions(opts)
		if again != first {
			t.Fatalf("output changed between runs:\n%s\nvs\n%s", first, again)
		}
	}

	order := []string{"class B {", "abstract class A {", "class C {", "class E {", "class F {"}
	last := -1
	for _, header := range order {
		i := strings.Index(first, header)
		if i <= last {
			t.Fatalf("block %q out of discovery order:\n%s", header, first)
		}
		last = i
	}
}

func TestFromOptionsValidation(t *testing.T) {
	text, err := FromOptions(relations.Options{
		Parents: []relations.Pair{relations.Undirected("A", "B")},
	})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("FromOptions() error = %v, want INVALID_INPUT", err)
	}
	if text != "" {
		t.Errorf("FromOptions() produced output on error: %q", text)
	}
}
