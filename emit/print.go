package emit

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Print serializes f to Rust source. Structures, traits and impls are
// followed by a blank line; the result ends with exactly one newline.
func Print(f *File) string {
	p := &printer{}
	for _, d := range f.Decls {
		p.printDecl(d)
	}
	return strings.TrimRight(p.sb.String(), "\n") + "\n"
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

func (p *printer) blank() {
	p.sb.WriteByte('\n')
}

func (p *printer) writeIndent() {
	for range p.indent {
		p.sb.WriteString(indentUnit)
	}
}

func (p *printer) attrs(attrs []string) {
	for _, a := range attrs {
		p.line("#[%s]", a)
	}
}

func vis(v string) string {
	if v == "" {
		return ""
	}
	return v + " "
}

func (p *printer) printDecl(d Decl) {
	switch dt := d.(type) {
	case Use:
		p.line("use %s;", dt.Path)
	case Comment:
		p.line("// %s", dt.Text)
	case BlankLine:
		p.blank()
	case RawDecl:
		p.sb.WriteString(strings.TrimRight(dt.Code, "\n"))
		p.blank()
	case Struct:
		p.attrs(dt.Attrs)
		if len(dt.Fields) == 0 {
			p.line("%sstruct %s {}", vis(dt.Vis), dt.Name)
		} else {
			p.line("%sstruct %s {", vis(dt.Vis), dt.Name)
			p.indent++
			for _, f := range dt.Fields {
				p.line("%s%s: %s,", vis(f.Vis), f.Name, f.Type)
			}
			p.indent--
			p.line("}")
		}
		p.blank()
	case Trait:
		p.attrs(dt.Attrs)
		p.block(fmt.Sprintf("%strait %s", vis(dt.Vis), dt.Name), dt.Methods)
		p.blank()
	case Impl:
		p.attrs(dt.Attrs)
		head := "impl " + dt.For
		if dt.Trait != "" {
			head = "impl " + dt.Trait + " for " + dt.For
		}
		p.block(head, dt.Methods)
		p.blank()
	}
}

func (p *printer) block(head string, methods []Method) {
	if len(methods) == 0 {
		p.line("%s {}", head)
		return
	}
	p.line("%s {", head)
	p.indent++
	for i, m := range methods {
		if i > 0 && m.Body != nil {
			p.blank()
		}
		p.printMethod(m)
	}
	p.indent--
	p.line("}")
}

// Signature renders the method head without body or terminator.
func Signature(m Method) string {
	var b strings.Builder
	if m.Async {
		b.WriteString("async ")
	}
	b.WriteString("fn ")
	b.WriteString(m.Name)
	if m.Generics != "" {
		b.WriteString("<" + m.Generics + ">")
	}
	parts := make([]string, 0, len(m.Params)+1)
	if m.Receiver != "" {
		parts = append(parts, m.Receiver)
	}
	for _, prm := range m.Params {
		parts = append(parts, prm.Name+": "+prm.Type)
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	if m.Return != "" {
		b.WriteString(" -> ")
		b.WriteString(m.Return)
	}
	return b.String()
}

func (p *printer) printMethod(m Method) {
	sig := Signature(m)
	if m.Body == nil {
		p.line("%s;", sig)
		return
	}
	p.line("%s {", sig)
	p.indent++
	p.stmts(m.Body)
	p.indent--
	p.line("}")
}

func (p *printer) stmts(stmts []Stmt) {
	for _, s := range stmts {
		p.printStmt(s)
	}
}

func (p *printer) printStmt(s Stmt) {
	switch st := s.(type) {
	case Let:
		if st.Type != "" {
			p.line("let %s: %s = %s;", st.Name, st.Type, st.Value)
		} else {
			p.line("let %s = %s;", st.Name, st.Value)
		}
	case Expr:
		if st.Semi {
			p.line("%s;", st.Code)
		} else {
			p.line("%s", st.Code)
		}
	case Match:
		p.line("match %s {", st.Scrutinee)
		p.indent++
		for _, arm := range st.Arms {
			if arm.Value != "" {
				p.line("%s => %s,", arm.Pattern, arm.Value)
				continue
			}
			p.line("%s => {", arm.Pattern)
			p.indent++
			p.stmts(arm.Body)
			p.indent--
			p.line("}")
		}
		p.indent--
		p.line("}")
	case Comment:
		p.line("// %s", st.Text)
	case BlankLine:
		p.blank()
	}
}
