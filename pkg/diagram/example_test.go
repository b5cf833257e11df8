package diagram_test

import (
	"fmt"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

func ExampleClassify() {
	m, _ := relations.Normalize(relations.Options{
		Parents:      []relations.Pair{relations.Directed("Car", "Vehicle"), relations.Directed("Driver", "Car")},
		Associations: []relations.Pair{relations.Directed("Driver", "Car")},
		Aggregations: []relations.Pair{relations.Directed("Wheel", "Car")},
	})

	for _, e := range diagram.Classify(m) {
		fmt.Printf("%s -> %s: %s\n", e.From, e.To, e.Kind)
	}
	// Output:
	// Car -> Vehicle: inheritance
	// Driver -> Car: directed-association
	// Wheel -> Car: aggregation
}

func ExampleRenderLabel() {
	l := diagram.RenderLabel("Shape", true, []string{"area"}, []string{"describe"}, diagram.LabelOptions{})
	fmt.Println(l.PlainText())
	// Output:
	// /Shape/
	// ---
	// /area/
	// describe
}
