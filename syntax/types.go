package syntax

import "strings"

// Type is a Rust type expression.
type Type interface {
	String() string
	typeNode()
}

// PathType represents: [::]seg::seg<args>
type PathType struct {
	Global   bool
	Segments []Segment
}

// Segment is one path segment with optional generic arguments.
type Segment struct {
	Name string
	Args []Type
}

// RefType represents: &['a] [mut] Elem
type RefType struct {
	Lifetime string
	Mut      bool
	Elem     Type
}

// SliceType represents: [Elem]
type SliceType struct {
	Elem Type
}

// ArrayType represents: [Elem; Len]
type ArrayType struct {
	Elem Type
	Len  string
}

// TupleType represents: (A, B). The empty tuple is unit.
type TupleType struct {
	Elems []Type
}

// LifetimeType is a lifetime used as a generic argument: 'a
type LifetimeType struct {
	Name string
}

// RawType holds type text that could not be parsed.
type RawType struct {
	Text string
}

func (*PathType) typeNode()     {}
func (*RefType) typeNode()      {}
func (*SliceType) typeNode()    {}
func (*ArrayType) typeNode()    {}
func (*TupleType) typeNode()    {}
func (*LifetimeType) typeNode() {}
func (*RawType) typeNode()      {}

// Path builds a non-global path type from plain segment names.
func Path(names ...string) *PathType {
	p := &PathType{Segments: make([]Segment, len(names))}
	for i, n := range names {
		p.Segments[i] = Segment{Name: n}
	}
	return p
}

// Generic builds a single-segment path type with generic arguments: Name<args>
func Generic(name string, args ...Type) *PathType {
	return &PathType{Segments: []Segment{{Name: name, Args: args}}}
}

// Ident returns the name of a single-segment path without generic arguments.
func (p *PathType) Ident() (string, bool) {
	if p.Global || len(p.Segments) != 1 || len(p.Segments[0].Args) != 0 {
		return "", false
	}
	return p.Segments[0].Name, true
}

// Last returns the final segment of the path.
func (p *PathType) Last() *Segment {
	if len(p.Segments) == 0 {
		return nil
	}
	return &p.Segments[len(p.Segments)-1]
}

func (p *PathType) String() string {
	var b strings.Builder
	if p.Global {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.Name)
		if len(seg.Args) > 0 {
			b.WriteByte('<')
			b.WriteString(joinTypes(seg.Args))
			b.WriteByte('>')
		}
	}
	return b.String()
}

func (r *RefType) String() string {
	var b strings.Builder
	b.WriteByte('&')
	if r.Lifetime != "" {
		b.WriteByte('\'')
		b.WriteString(r.Lifetime)
		b.WriteByte(' ')
	}
	if r.Mut {
		b.WriteString("mut ")
	}
	b.WriteString(r.Elem.String())
	return b.String()
}

func (s *SliceType) String() string {
	return "[" + s.Elem.String() + "]"
}

func (a *ArrayType) String() string {
	return "[" + a.Elem.String() + "; " + a.Len + "]"
}

func (t *TupleType) String() string {
	if len(t.Elems) == 1 {
		return "(" + t.Elems[0].String() + ",)"
	}
	return "(" + joinTypes(t.Elems) + ")"
}

func (l *LifetimeType) String() string {
	return "'" + l.Name
}

func (r *RawType) String() string {
	return r.Text
}

func joinTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// IsUnit reports whether t is nil or the empty tuple.
func IsUnit(t Type) bool {
	if t == nil {
		return true
	}
	tt, ok := t.(*TupleType)
	return ok && len(tt.Elems) == 0
}

// ContainsBorrow reports whether t holds a reference or lifetime anywhere.
func ContainsBorrow(t Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *RefType, *LifetimeType:
		return true
	case *PathType:
		for _, seg := range v.Segments {
			for _, a := range seg.Args {
				if ContainsBorrow(a) {
					return true
				}
			}
		}
		return false
	case *SliceType:
		return ContainsBorrow(v.Elem)
	case *ArrayType:
		return ContainsBorrow(v.Elem)
	case *TupleType:
		for _, e := range v.Elems {
			if ContainsBorrow(e) {
				return true
			}
		}
		return false
	case *RawType:
		return strings.ContainsAny(v.Text, "&'")
	}
	return false
}
