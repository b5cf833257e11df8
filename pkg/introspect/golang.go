package introspect

import (
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// predeclared Go types are never classes.
var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true,
}

func (x *extractor) goDefinition(n *tree_sitter.Node) {
	switch n.Kind() {
	case "type_spec":
		x.goTypeSpec(n)
	case "method_declaration":
		x.goMethod(n)
	}
}

func (x *extractor) goTypeSpec(n *tree_sitter.Node) {
	name := x.text(n.ChildByFieldName("name"))
	typ := n.ChildByFieldName("type")
	if name == "" || typ == nil {
		return
	}

	switch typ.Kind() {
	case "struct_type":
		c := x.class(name)
		c.declared = true
		x.goStructFields(c, typ)
	case "interface_type":
		c := x.class(name)
		c.declared = true
		c.Abstract = true
		x.goInterfaceElems(c, typ)
	}
}

func (x *extractor) goStructFields(c *Class, st *tree_sitter.Node) {
	for _, list := range namedChildren(st) {
		if list.Kind() != "field_declaration_list" {
			continue
		}
		for _, f := range namedChildren(list) {
			if f.Kind() != "field_declaration" {
				continue
			}
			typ := f.ChildByFieldName("type")
			if f.ChildByFieldName("name") == nil {
				c.References = appendUnique(c.References, x.goTypeName(typ))
				continue
			}
			if elem, ok := x.goElementType(typ); ok {
				c.Contains = appendUnique(c.Contains, elem)
			} else {
				c.Has = appendUnique(c.Has, x.goTypeName(typ))
			}
		}
	}
}

func (x *extractor) goInterfaceElems(c *Class, it *tree_sitter.Node) {
	for _, e := range namedChildren(it) {
		switch e.Kind() {
		case "method_elem", "method_spec":
			c.AbstractMethods = appendUnique(c.AbstractMethods, x.text(e.ChildByFieldName("name")))
		case "type_elem":
			for _, t := range namedChildren(e) {
				c.References = appendUnique(c.References, x.goTypeName(t))
			}
		case "type_identifier", "qualified_type":
			c.References = appendUnique(c.References, x.goTypeName(e))
		}
	}
}

func (x *extractor) goMethod(n *tree_sitter.Node) {
	name := x.text(n.ChildByFieldName("name"))
	recv := n.ChildByFieldName("receiver")
	if name == "" || recv == nil {
		return
	}
	for _, param := range namedChildren(recv) {
		if param.Kind() != "parameter_declaration" {
			continue
		}
		if typ := x.goTypeName(param.ChildByFieldName("type")); typ != "" {
			c := x.class(typ)
			c.Methods = appendUnique(c.Methods, name)
		}
		return
	}
}

// goTypeName returns the base type name of n with pointers, package
// qualifiers and type arguments removed; "" for unnamed types.
func (x *extractor) goTypeName(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case "type_identifier":
		if name := x.text(n); !predeclared[name] {
			return name
		}
	case "qualified_type":
		return x.text(n.ChildByFieldName("name"))
	case "pointer_type", "parenthesized_type":
		if children := namedChildren(n); len(children) > 0 {
			return x.goTypeName(children[0])
		}
	case "generic_type":
		return x.goTypeName(n.ChildByFieldName("type"))
	}
	return ""
}

// goElementType returns the element type name of slice, array and map
// (value) types.
func (x *extractor) goElementType(n *tree_sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "slice_type", "array_type", "implicit_length_array_type":
		return x.goTypeName(n.ChildByFieldName("element")), true
	case "map_type":
		return x.goTypeName(n.ChildByFieldName("value")), true
	case "pointer_type":
		if children := namedChildren(n); len(children) > 0 {
			return x.goElementType(children[0])
		}
	}
	return "", false
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
