package introspect

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/matzehuels/umlgraph/pkg/errors"
	"github.com/matzehuels/umlgraph/pkg/relations"
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
}

// Scanner walks source trees.
type Scanner struct {
	// Languages restricts the scan; empty means all.
	Languages []Language

	// ExportedOnly drops unexported Go types and methods.
	ExportedOnly bool

	// IncludeTests also reads Go _test.go and Python test_*.py files.
	IncludeTests bool

	// NoGitignore reads files even when the root .gitignore excludes them.
	NoGitignore bool
}

// Result is the outcome of a scan.
type Result struct {
	classes []*Class
	index   map[string]*Class
	Files   int
}

// Scan parses every supported file below root, in lexical order. A single
// file may also be given.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scan %s", root)
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	defer p.Close()

	r := &Result{index: make(map[string]*Class)}
	if !info.IsDir() {
		if err := s.scanFile(ctx, p, r, root); err != nil {
			return nil, err
		}
		return r, nil
	}

	ignored, err := s.ignoreMatcher(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if rel, relErr := filepath.Rel(root, path); relErr == nil && rel != "." && ignored(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		return s.scanFile(ctx, p, r, path)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ignoreMatcher compiles root/.gitignore. A missing file matches nothing.
func (s *Scanner) ignoreMatcher(root string) (func(string) bool, error) {
	none := func(string) bool { return false }
	if s.NoGitignore {
		return none, nil
	}
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return none, nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return gi.MatchesPath, nil
}

func (s *Scanner) scanFile(ctx context.Context, p *Parser, r *Result, path string) error {
	lang, ok := LanguageForPath(path)
	if !ok || !s.wants(lang) || (!s.IncludeTests && isTestFile(path, lang)) {
		return nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	classes, err := p.ParseFile(ctx, path, src, lang)
	if err != nil {
		return err
	}
	r.Files++
	for _, c := range classes {
		if s.ExportedOnly && lang == Go {
			if !isExported(c.Name) {
				continue
			}
			c.Methods = slices.DeleteFunc(c.Methods, func(m string) bool { return !isExported(m) })
			c.AbstractMethods = slices.DeleteFunc(c.AbstractMethods, func(m string) bool { return !isExported(m) })
		}
		r.add(c)
	}
	return nil
}

func (s *Scanner) wants(l Language) bool {
	return len(s.Languages) == 0 || slices.Contains(s.Languages, l)
}

func isTestFile(path string, lang Language) bool {
	base := filepath.Base(path)
	switch lang {
	case Go:
		return strings.HasSuffix(base, "_test.go")
	case Python:
		return strings.HasPrefix(base, "test_") || strings.HasSuffix(base, "_test.py")
	}
	return false
}

func (r *Result) add(c *Class) {
	if existing, ok := r.index[c.Name]; ok {
		existing.merge(c)
		return
	}
	r.index[c.Name] = c
	r.classes = append(r.classes, c)
}

// Classes returns the declared classes in discovery order. Types seen only
// as method receivers are kept when they have methods.
func (r *Result) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		if c.declared || len(c.Methods) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Class returns the named class.
func (r *Result) Class(name string) (*Class, bool) {
	c, ok := r.index[name]
	return c, ok
}

// Lookup reports the forwarded references of class. It satisfies
// [relations.ReferenceLookup]; unknown classes have no references.
func (r *Result) Lookup(class string) ([]string, error) {
	c, ok := r.index[class]
	if !ok {
		return nil, nil
	}
	return slices.Clone(c.References), nil
}

// Options converts the scan to relationship options. Inheritance is left
// to Lookup; field relationships become associations (owner to field type)
// and aggregations (element type to owner) when both ends are classes.
func (r *Result) Options() relations.Options {
	classes := r.Classes()
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c.Name] = true
	}

	var opts relations.Options
	for _, c := range classes {
		opts.Classes = append(opts.Classes, c.Name)
		if c.Abstract {
			opts.AbstractClasses = append(opts.AbstractClasses, c.Name)
		}
		if len(c.AbstractMethods) > 0 {
			opts.AbstractMethods = append(opts.AbstractMethods, relations.MethodSet{Class: c.Name, Methods: slices.Clone(c.AbstractMethods)})
		}
		if len(c.Methods) > 0 {
			opts.RegularMethods = append(opts.RegularMethods, relations.MethodSet{Class: c.Name, Methods: slices.Clone(c.Methods)})
		}
		for _, t := range c.Has {
			if known[t] && t != c.Name {
				opts.Associations = append(opts.Associations, relations.Directed(c.Name, t))
			}
		}
		for _, t := range c.Contains {
			if known[t] && t != c.Name {
				opts.Aggregations = append(opts.Aggregations, relations.Directed(t, c.Name))
			}
		}
	}
	opts.Lookup = r.Lookup
	return opts
}
