package introspect

import "slices"

// Class is a class found in source code.
type Class struct {
	Name     string
	Language Language
	File     string // first file the class was seen in

	Abstract        bool
	AbstractMethods []string
	Methods         []string

	// References are the classes this class forwards to: embedded types in
	// Go, superclasses in Python.
	References []string

	// Fields maps to associations (Has) and aggregations (Contains).
	Has      []string
	Contains []string

	declared bool // seen as a type or class definition, not only via methods
}

func (c *Class) merge(o *Class) {
	c.declared = c.declared || o.declared
	c.Abstract = c.Abstract || o.Abstract
	if c.File == "" {
		c.File = o.File
	}
	c.AbstractMethods = appendUnique(c.AbstractMethods, o.AbstractMethods...)
	c.Methods = appendUnique(c.Methods, o.Methods...)
	c.References = appendUnique(c.References, o.References...)
	c.Has = appendUnique(c.Has, o.Has...)
	c.Contains = appendUnique(c.Contains, o.Contains...)
}

func appendUnique(dst []string, items ...string) []string {
	for _, s := range items {
		if s != "" && !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
