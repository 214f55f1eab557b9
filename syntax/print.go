package syntax

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Print serializes a binding tree to Rust source code.
func Print(f *File) string {
	p := &printer{}
	p.printItems(f.Items)
	return p.sb.String()
}

// PrintItem serializes a single item at the given indentation depth.
func PrintItem(item Item, depth int) string {
	p := &printer{indent: depth}
	p.printItem(item)
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.writeIndent()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString(indentUnit)
	}
}

// raw writes multi-line code, re-indenting each line at the current depth.
func (p *printer) raw(code string) {
	for _, ln := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		if strings.TrimSpace(ln) == "" {
			p.sb.WriteByte('\n')
			continue
		}
		p.writeIndent()
		p.sb.WriteString(strings.TrimLeft(ln, " \t"))
		p.sb.WriteByte('\n')
	}
}

func (p *printer) printItems(items []Item) {
	for i, item := range items {
		if i > 0 {
			p.sb.WriteByte('\n')
		}
		p.printItem(item)
	}
}

func (p *printer) printAttrs(attrs []*Attribute) {
	for _, a := range attrs {
		p.line("%s", a.String())
	}
}

func vis(v string) string {
	if v == "" {
		return ""
	}
	return v + " "
}

func (p *printer) printItem(item Item) {
	switch it := item.(type) {
	case *Module:
		p.printAttrs(it.Attrs)
		if it.External {
			p.line("%smod %s;", vis(it.Vis), it.Name)
			return
		}
		p.line("%smod %s {", vis(it.Vis), it.Name)
		p.indent++
		p.printItems(it.Items)
		p.indent--
		p.line("}")
	case *Function:
		p.printAttrs(it.Attrs)
		p.line("%s%s {", vis(it.Vis), Signature(it))
		p.indent++
		if strings.TrimSpace(it.Body) == "" {
			p.line("unimplemented!()")
		} else {
			p.raw(it.Body)
		}
		p.indent--
		p.line("}")
	case *Struct:
		p.printAttrs(it.Attrs)
		if len(it.Fields) == 0 {
			p.line("%sstruct %s {}", vis(it.Vis), it.Name)
			return
		}
		p.line("%sstruct %s {", vis(it.Vis), it.Name)
		p.indent++
		for _, f := range it.Fields {
			p.line("%s%s: %s,", vis(f.Vis), f.Name, f.Type)
		}
		p.indent--
		p.line("}")
	case *Raw:
		p.raw(it.Code)
	}
}

// Signature renders "fn name(a: A, b: B) -> R" for f.
func Signature(f *Function) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(f.Name)
	b.WriteByte('(')
	b.WriteString(Params(f.Params))
	b.WriteByte(')')
	if !IsUnit(f.Output) {
		b.WriteString(" -> ")
		b.WriteString(f.Output.String())
	}
	return b.String()
}

// Params renders a comma separated parameter list.
func Params(params []Param) string {
	parts := make([]string, len(params))
	for i, prm := range params {
		parts[i] = prm.Name + ": " + prm.Type.String()
	}
	return strings.Join(parts, ", ")
}
