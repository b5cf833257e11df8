package introspect

import (
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/matzehuels/umlgraph/pkg/errors"
)

// Parser extracts classes from single source files. A Parser holds
// tree-sitter C memory and must be closed. It is not safe for concurrent use.
type Parser struct {
	parsers map[Language]*tree_sitter.Parser
	queries map[Language]*tree_sitter.Query
	cursor  *tree_sitter.QueryCursor
}

// NewParser creates a parser for every supported language.
func NewParser() (*Parser, error) {
	p := &Parser{
		parsers: make(map[Language]*tree_sitter.Parser, len(Languages)),
		queries: make(map[Language]*tree_sitter.Query, len(Languages)),
		cursor:  tree_sitter.NewQueryCursor(),
	}
	for _, l := range Languages {
		lang := grammar(l)
		tp := tree_sitter.NewParser()
		if err := tp.SetLanguage(lang); err != nil {
			tp.Close()
			p.Close()
			return nil, fmt.Errorf("load %s grammar: %w", l, err)
		}
		q, qerr := tree_sitter.NewQuery(lang, queries[l])
		if qerr != nil {
			tp.Close()
			p.Close()
			return nil, fmt.Errorf("compile %s query: %s", l, qerr.Message)
		}
		p.parsers[l] = tp
		p.queries[l] = q
	}
	return p, nil
}

// Close releases the tree-sitter resources.
func (p *Parser) Close() error {
	for _, q := range p.queries {
		q.Close()
	}
	for _, tp := range p.parsers {
		tp.Close()
	}
	if p.cursor != nil {
		p.cursor.Close()
	}
	return nil
}

// ParseFile returns the classes declared in src, in source order. path is
// recorded on each class and used in error messages only.
func (p *Parser) ParseFile(ctx context.Context, path string, src []byte, lang Language) ([]*Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tp, ok := p.parsers[lang]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported language %q", lang)
	}

	tree := tp.Parse(src, nil)
	if tree == nil {
		return nil, errors.New(errors.ErrCodeInternal, "parse %s: no syntax tree", path)
	}
	defer tree.Close()

	x := &extractor{src: src, file: path, lang: lang, index: make(map[string]*Class)}
	q := p.queries[lang]
	names := q.CaptureNames()

	matches := p.cursor.Matches(q, tree.RootNode(), src)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for _, c := range m.Captures {
			if names[c.Index] != "def" {
				continue
			}
			node := c.Node
			switch lang {
			case Go:
				x.goDefinition(&node)
			case Python:
				x.pythonClass(&node)
			}
		}
	}
	return x.classes, nil
}

// extractor accumulates the classes of one file.
type extractor struct {
	src     []byte
	file    string
	lang    Language
	classes []*Class
	index   map[string]*Class
}

func (x *extractor) class(name string) *Class {
	if c, ok := x.index[name]; ok {
		return c
	}
	c := &Class{Name: name, Language: x.lang, File: x.file}
	x.index[name] = c
	x.classes = append(x.classes, c)
	return c
}

func (x *extractor) text(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(x.src)
}

func namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*tree_sitter.Node, 0, n.NamedChildCount())
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}
