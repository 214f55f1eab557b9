package transform

import (
	"fmt"

	"github.com/wippyai/provider-gen/syntax"
)

// Shape is the borrowing shape of a parameter type. The set is closed:
// every type either has one of these shapes or is rejected.
type Shape int

const (
	// ShapeOwned holds no borrow: u32, String, Vec<T>, BrokerMessage.
	ShapeOwned Shape = iota
	// ShapeBorrowedScalar is &str.
	ShapeBorrowedScalar
	// ShapeWrappedScalar is W<&str>, e.g. Option<&str>.
	ShapeWrappedScalar
	// ShapeBorrowedAggregate is &[T] or &T for an owned T.
	ShapeBorrowedAggregate
	// ShapeWrappedAggregate is W<&[T]> or W<&T>, e.g. Option<&[u8]>.
	ShapeWrappedAggregate
)

func (s Shape) String() string {
	switch s {
	case ShapeOwned:
		return "owned"
	case ShapeBorrowedScalar:
		return "borrowed-scalar"
	case ShapeWrappedScalar:
		return "wrapped-borrowed-scalar"
	case ShapeBorrowedAggregate:
		return "borrowed-aggregate"
	case ShapeWrappedAggregate:
		return "wrapped-borrowed-aggregate"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Classify returns the shape of t, or an error describing why a borrowing
// type falls outside the supported shapes.
func Classify(t syntax.Type) (Shape, error) {
	if !syntax.ContainsBorrow(t) {
		return ShapeOwned, nil
	}
	switch v := t.(type) {
	case *syntax.RefType:
		return classifyRef(v, false)
	case *syntax.PathType:
		arg, ok := wrappedRef(v)
		if !ok {
			return 0, fmt.Errorf("borrow nested in %s", v)
		}
		return classifyRef(arg, true)
	case *syntax.RawType:
		return 0, fmt.Errorf("unparsed type with borrow")
	case *syntax.LifetimeType:
		return 0, fmt.Errorf("bare lifetime")
	default:
		return 0, fmt.Errorf("borrow inside %T", t)
	}
}

func classifyRef(r *syntax.RefType, wrapped bool) (Shape, error) {
	if r.Mut {
		return 0, fmt.Errorf("mutable borrow")
	}
	if syntax.ContainsBorrow(r.Elem) {
		return 0, fmt.Errorf("nested borrow")
	}
	if isStr(r.Elem) {
		if wrapped {
			return ShapeWrappedScalar, nil
		}
		return ShapeBorrowedScalar, nil
	}
	if wrapped {
		return ShapeWrappedAggregate, nil
	}
	return ShapeBorrowedAggregate, nil
}

// wrappedRef matches W<&T>: a path whose only generic arguments are a
// single reference on the last segment.
func wrappedRef(p *syntax.PathType) (*syntax.RefType, bool) {
	if len(p.Segments) == 0 {
		return nil, false
	}
	for _, seg := range p.Segments[:len(p.Segments)-1] {
		if len(seg.Args) != 0 {
			return nil, false
		}
	}
	last := p.Last()
	if len(last.Args) != 1 {
		return nil, false
	}
	r, ok := last.Args[0].(*syntax.RefType)
	return r, ok
}

func isStr(t syntax.Type) bool {
	p, ok := t.(*syntax.PathType)
	if !ok {
		return false
	}
	name, ok := p.Ident()
	return ok && name == "str"
}
