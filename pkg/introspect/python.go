package introspect

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// abstractBases mark a Python class as abstract when listed as a superclass.
var abstractBases = map[string]bool{"ABC": true, "Protocol": true}

func (x *extractor) pythonClass(n *tree_sitter.Node) {
	name := x.text(n.ChildByFieldName("name"))
	if name == "" {
		return
	}
	c := x.class(name)
	c.declared = true

	for _, arg := range namedChildren(n.ChildByFieldName("superclasses")) {
		switch arg.Kind() {
		case "identifier", "attribute":
			base := lastSegment(x.text(arg))
			if abstractBases[base] {
				c.Abstract = true
			}
			c.References = appendUnique(c.References, base)
		case "keyword_argument":
			key := x.text(arg.ChildByFieldName("name"))
			value := lastSegment(x.text(arg.ChildByFieldName("value")))
			if key == "metaclass" && value == "ABCMeta" {
				c.Abstract = true
			}
		}
	}

	for _, stmt := range namedChildren(n.ChildByFieldName("body")) {
		switch stmt.Kind() {
		case "function_definition":
			c.Methods = appendUnique(c.Methods, x.text(stmt.ChildByFieldName("name")))
		case "decorated_definition":
			def := stmt.ChildByFieldName("definition")
			if def == nil || def.Kind() != "function_definition" {
				continue
			}
			method := x.text(def.ChildByFieldName("name"))
			if x.pythonIsAbstract(stmt) {
				c.Abstract = true
				c.AbstractMethods = appendUnique(c.AbstractMethods, method)
			} else {
				c.Methods = appendUnique(c.Methods, method)
			}
		}
	}
}

func (x *extractor) pythonIsAbstract(decorated *tree_sitter.Node) bool {
	for _, d := range namedChildren(decorated) {
		if d.Kind() != "decorator" {
			continue
		}
		expr := strings.TrimSpace(strings.TrimPrefix(x.text(d), "@"))
		if i := strings.IndexByte(expr, '('); i >= 0 {
			expr = expr[:i]
		}
		if strings.HasSuffix(lastSegment(expr), "abstractmethod") {
			return true
		}
	}
	return false
}

func lastSegment(dotted string) string {
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}
