package transform

import (
	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/syntax"
	"github.com/wippyai/provider-gen/visitor"
)

// StructResolver finds structures declared in the binding tree.
type StructResolver interface {
	Resolve(name string, scope []string) (visitor.StructEntry, bool)
}

// Field is one rewritten parameter, a field of an invocation record.
type Field struct {
	Name     string
	Type     syntax.Type // owned type
	Original syntax.Type
	Shape    Shape
}

// Rewrite converts parameter p of a function declared in module scope to
// an owned field:
//
//	&str          -> String
//	W<&str>       -> W<String>
//	&[T]          -> Vec<T>
//	W<&[T]>       -> W<Vec<T>>
//	&T, W<&T>     -> T, W<T>
//
// Local structures named by T are fully qualified.
//
// Owned types pass through with relative paths made absolute. Any other
// borrow is an unsupported-shape error.
func Rewrite(scope []string, p syntax.Param, structs StructResolver) (Field, error) {
	shape, err := Classify(p.Type)
	if err != nil {
		shapeErr := errors.UnsupportedShape(scope, p.Name, p.Type.String())
		shapeErr.Cause = err
		return Field{}, shapeErr
	}

	r := resolver{scope: scope, structs: structs}
	f := Field{Name: p.Name, Original: p.Type, Shape: shape}
	switch shape {
	case ShapeOwned:
		f.Type = r.absolute(p.Type)
	case ShapeBorrowedScalar, ShapeBorrowedAggregate:
		f.Type = r.own(p.Type.(*syntax.RefType))
	case ShapeWrappedScalar, ShapeWrappedAggregate:
		w := p.Type.(*syntax.PathType)
		out := r.absolute(w).(*syntax.PathType)
		last := out.Last()
		last.Args = []syntax.Type{r.own(w.Last().Args[0].(*syntax.RefType))}
		f.Type = out
	}
	return f, nil
}

type resolver struct {
	scope   []string
	structs StructResolver
}

// own returns the owned counterpart of a supported reference.
func (r resolver) own(ref *syntax.RefType) syntax.Type {
	switch e := ref.Elem.(type) {
	case *syntax.SliceType:
		if p, ok := e.Elem.(*syntax.PathType); ok {
			return syntax.Generic("Vec", r.qualify(p))
		}
		return syntax.Generic("Vec", r.absolute(e.Elem))
	case *syntax.PathType:
		if isStr(e) {
			return syntax.Path("String")
		}
		return r.qualify(e)
	default:
		return r.absolute(e)
	}
}

// qualify resolves a bare structure name against the struct table from the
// current scope. Unknown names are assumed external and kept as written.
func (r resolver) qualify(p *syntax.PathType) syntax.Type {
	name, ok := p.Ident()
	if !ok {
		return r.absolute(p)
	}
	if r.structs != nil {
		if e, found := r.structs.Resolve(name, r.scope); found {
			return syntax.Path(append(e.Module[:len(e.Module):len(e.Module)], e.Name)...)
		}
	}
	return p
}

// absolute copies t, rewriting self:: and super:: paths relative to the
// scope into paths from the tree root.
func (r resolver) absolute(t syntax.Type) syntax.Type {
	return Absolute(t, r.scope)
}

// Absolute copies t, rewriting paths that start with self:: or super:: as
// seen from module scope into paths from the tree root. Other nodes are
// copied unchanged.
func Absolute(t syntax.Type, scope []string) syntax.Type {
	switch v := t.(type) {
	case *syntax.PathType:
		out := &syntax.PathType{Global: v.Global}
		for _, seg := range v.Segments {
			ns := syntax.Segment{Name: seg.Name}
			for _, a := range seg.Args {
				ns.Args = append(ns.Args, Absolute(a, scope))
			}
			out.Segments = append(out.Segments, ns)
		}
		if !v.Global {
			out.Segments = rootRelative(out.Segments, scope)
		}
		return out
	case *syntax.RefType:
		return &syntax.RefType{Lifetime: v.Lifetime, Mut: v.Mut, Elem: Absolute(v.Elem, scope)}
	case *syntax.SliceType:
		return &syntax.SliceType{Elem: Absolute(v.Elem, scope)}
	case *syntax.ArrayType:
		return &syntax.ArrayType{Elem: Absolute(v.Elem, scope), Len: v.Len}
	case *syntax.TupleType:
		out := &syntax.TupleType{}
		for _, e := range v.Elems {
			out.Elems = append(out.Elems, Absolute(e, scope))
		}
		return out
	}
	return t
}

func rootRelative(segs []syntax.Segment, scope []string) []syntax.Segment {
	base := scope
	i := 0
	switch {
	case len(segs) > 1 && segs[0].Name == "self":
		i = 1
	case len(segs) > 1 && segs[0].Name == "super":
		for i < len(segs)-1 && segs[i].Name == "super" {
			if len(base) == 0 {
				return segs
			}
			base = base[:len(base)-1]
			i++
		}
	default:
		return segs
	}
	out := make([]syntax.Segment, 0, len(base)+len(segs)-i)
	for _, m := range base {
		out = append(out, syntax.Segment{Name: m})
	}
	return append(out, segs[i:]...)
}
