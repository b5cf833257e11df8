package plantuml

import (
	"strings"

	"github.com/matzehuels/umlgraph/pkg/relations"
)

const (
	startMarker = "@startuml"
	endMarker   = "@enduml"
)

// Serialize renders m as PlantUML text.
//
// Classes are written in m's discovery order. Each block holds the class
// header, abstract methods prefixed with "{abstract}", regular methods, and
// then one "C --> P" line per parent in declaration order. Blocks are
// separated by a blank line. The output carries no trailing newline.
func Serialize(m *relations.Model) string {
	blocks := make([]string, 0, len(m.Classes()))
	for _, c := range m.Classes() {
		blocks = append(blocks, classBlock(m, c))
	}

	body := strings.TrimSpace(strings.Join(blocks, "\n\n"))
	if body == "" {
		return startMarker + "\n" + endMarker
	}
	return startMarker + "\n" + body + "\n" + endMarker
}

// FromOptions normalizes opts and serializes the result. Validation
// failures are returned without any text.
func FromOptions(opts relations.Options) (string, error) {
	m, err := relations.Normalize(opts)
	if err != nil {
		return "", err
	}
	return Serialize(m), nil
}

func classBlock(m *relations.Model, c string) string {
	var b strings.Builder
	if m.IsAbstract(c) {
		b.WriteString("abstract ")
	}
	b.WriteString("class ")
	b.WriteString(c)
	b.WriteString(" {\n")
	for _, name := range m.AbstractMethods(c) {
		b.WriteString(" {abstract} ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	for _, name := range m.RegularMethods(c) {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteByte('\n')
	}
	b.WriteString("}")
	for _, p := range m.ParentsOf(c) {
		b.WriteString("\n")
		b.WriteString(c)
		b.WriteString(" --> ")
		b.WriteString(p)
	}
	return b.String()
}
