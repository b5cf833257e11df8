package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/umlgraph/pkg/diagram"
	"github.com/matzehuels/umlgraph/pkg/relations"
	"github.com/matzehuels/umlgraph/pkg/render/nodelink"
)

func ExampleToDOT() {
	m, _ := relations.Normalize(relations.Options{
		Parents:      []relations.Pair{relations.Directed("Car", "Vehicle")},
		Aggregations: []relations.Pair{relations.Directed("Wheel", "Car")},
	})
	g, _ := diagram.NewAssembler().Assemble(m, diagram.DefaultOptions())

	for _, line := range strings.Split(nodelink.ToDOT(g, nodelink.Options{}), "\n") {
		if strings.Contains(line, " -> ") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "Car" -> "Vehicle" [arrowhead=empty];
	// "Wheel" -> "Car" [arrowhead=odiamond];
}
