package diagram

import (
	"html"
	"strings"
)

// Caption texts of the explanatory column.
const (
	CaptionClass   = "Class"
	CaptionMethods = "Methods"
)

// LabelOptions configures class labels.
type LabelOptions struct {
	// ShowExplanatoryColumn adds the "Class" / "Methods" caption column.
	ShowExplanatoryColumn bool
}

// DefaultLabelOptions returns the defaults: captions shown.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{ShowExplanatoryColumn: true}
}

// Text is a run of label text.
type Text struct {
	Value  string
	Italic bool
}

// Cell is one table cell; multiple lines stack vertically.
type Cell struct {
	Lines   []Text
	Caption bool // part of the explanatory column
}

// Label is the table drawn inside a class node. Rows[0] holds the class name;
// Rows[1], when present, holds the methods and is separated by a divider.
type Label struct {
	Rows [][]Cell
}

// Divided reports whether the label has a methods row below a divider.
func (l Label) Divided() bool { return len(l.Rows) > 1 }

// RenderLabel builds the label of one class.
//
// The class name is italic when abstract. Abstract methods come first,
// italic, followed by the regular methods. A class without methods shows
// only its name, with neither divider nor captions.
func RenderLabel(class string, abstract bool, abstractMethods, regularMethods []string, opts LabelOptions) Label {
	name := Cell{Lines: []Text{{Value: class, Italic: abstract}}}
	if len(abstractMethods) == 0 && len(regularMethods) == 0 {
		return Label{Rows: [][]Cell{{name}}}
	}

	methods := Cell{Lines: make([]Text, 0, len(abstractMethods)+len(regularMethods))}
	for _, m := range abstractMethods {
		methods.Lines = append(methods.Lines, Text{Value: m, Italic: true})
	}
	for _, m := range regularMethods {
		methods.Lines = append(methods.Lines, Text{Value: m})
	}

	if !opts.ShowExplanatoryColumn {
		return Label{Rows: [][]Cell{{name}, {methods}}}
	}
	return Label{Rows: [][]Cell{
		{caption(CaptionClass), name},
		{caption(CaptionMethods), methods},
	}}
}

func caption(s string) Cell {
	return Cell{Lines: []Text{{Value: s}}, Caption: true}
}

// HTML renders the label as a Graphviz HTML-like table.
func (l Label) HTML() string {
	var b strings.Builder
	b.WriteString(`<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="4">`)
	for i, row := range l.Rows {
		if i > 0 {
			b.WriteString("<HR/>")
		}
		b.WriteString("<TR>")
		for _, c := range row {
			writeCell(&b, c)
		}
		b.WriteString("</TR>")
	}
	b.WriteString("</TABLE>")
	return b.String()
}

func writeCell(b *strings.Builder, c Cell) {
	if c.Caption {
		b.WriteString(`<TD ALIGN="LEFT"><FONT COLOR="gray40">`)
	} else {
		b.WriteString(`<TD ALIGN="LEFT" BALIGN="LEFT">`)
	}
	for i, t := range c.Lines {
		if i > 0 {
			b.WriteString("<BR/>")
		}
		s := html.EscapeString(t.Value)
		if t.Italic {
			s = "<I>" + s + "</I>"
		}
		b.WriteString(s)
	}
	if c.Caption {
		b.WriteString("</FONT>")
	}
	b.WriteString("</TD>")
}

// PlainText renders the label for terminals and JSON exports: cells joined
// by " | ", lines by newlines, abstract entries wrapped in slashes.
func (l Label) PlainText() string {
	rows := make([]string, len(l.Rows))
	for i, row := range l.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			lines := make([]string, len(c.Lines))
			for k, t := range c.Lines {
				lines[k] = t.Value
				if t.Italic {
					lines[k] = "/" + t.Value + "/"
				}
			}
			cells[j] = strings.Join(lines, "\n")
		}
		rows[i] = strings.Join(cells, " | ")
	}
	return strings.Join(rows, "\n---\n")
}
