package witload

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/internal/naming"
	"github.com/wippyai/provider-gen/syntax"
)

// Mode selects how a WIT type is passed.
type Mode int

const (
	// Owned renders values the callee owns: String, Vec<T>, Record.
	Owned Mode = iota
	// Borrowed renders import parameters: &str, &[T], &Record.
	Borrowed
)

// scope is the module an item is rendered in.
type scope struct {
	path  []string
	iface *wit.Interface
}

// LowerTypeString parses WIT type text such as "list<u8>" and renders it
// as a Rust type at the crate root.
func LowerTypeString(s string, mode Mode) (syntax.Type, error) {
	t, err := wit.ParseType(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			WitType(s).
			Cause(err).
			Detail("parse WIT type").
			Build()
	}
	return RustType(t, mode)
}

// RustType renders t as a Rust type at the crate root.
func RustType(t wit.Type, mode Mode) (syntax.Type, error) {
	return rustType(scope{}, t, mode)
}

func primitive(t wit.Type) (string, bool) {
	switch t.(type) {
	case wit.Bool:
		return "bool", true
	case wit.U8:
		return "u8", true
	case wit.S8:
		return "i8", true
	case wit.U16:
		return "u16", true
	case wit.S16:
		return "i16", true
	case wit.U32:
		return "u32", true
	case wit.S32:
		return "i32", true
	case wit.U64:
		return "u64", true
	case wit.S64:
		return "i64", true
	case wit.F32:
		return "f32", true
	case wit.F64:
		return "f64", true
	case wit.Char:
		return "char", true
	}
	return "", false
}

func rustType(sc scope, t wit.Type, mode Mode) (syntax.Type, error) {
	if t == nil {
		return &syntax.TupleType{}, nil
	}
	if name, ok := primitive(t); ok {
		return syntax.Path(name), nil
	}
	switch v := t.(type) {
	case wit.String:
		if mode == Borrowed {
			return &syntax.RefType{Elem: syntax.Path("str")}, nil
		}
		return syntax.Path("String"), nil
	case *wit.TypeDef:
		if v.Name != nil {
			v = aliasTarget(v)
			ref := typeRef(sc, v)
			if mode == Borrowed && passByRef(v) {
				return &syntax.RefType{Elem: ref}, nil
			}
			return ref, nil
		}
		return anonymousType(sc, v.Kind, mode)
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Path(sc.path...).
		WitType(TypeString(t)).
		Detail("no Rust rendering for %T", t).
		Build()
}

// aliasTarget follows named aliases (types brought in with use) to the
// declaring type.
func aliasTarget(td *wit.TypeDef) *wit.TypeDef {
	for {
		next, ok := td.Kind.(*wit.TypeDef)
		if !ok || next.Name == nil {
			return td
		}
		td = next
	}
}

// passByRef reports whether imports take a named type by reference.
func passByRef(td *wit.TypeDef) bool {
	switch td.Kind.(type) {
	case *wit.Record, *wit.Variant:
		return true
	}
	return false
}

func anonymousType(sc scope, kind wit.TypeDefKind, mode Mode) (syntax.Type, error) {
	switch k := kind.(type) {
	case *wit.List:
		elem, err := rustType(sc, k.Type, Owned)
		if err != nil {
			return nil, err
		}
		if mode == Borrowed {
			return &syntax.RefType{Elem: &syntax.SliceType{Elem: elem}}, nil
		}
		return syntax.Generic("Vec", elem), nil

	case *wit.Option:
		inner, err := rustType(sc, k.Type, mode)
		if err != nil {
			return nil, err
		}
		return syntax.Generic("Option", inner), nil

	case *wit.Result:
		ok, err := rustType(sc, k.OK, Owned)
		if err != nil {
			return nil, err
		}
		e, err := rustType(sc, k.Err, Owned)
		if err != nil {
			return nil, err
		}
		return syntax.Generic("Result", ok, e), nil

	case *wit.Tuple:
		tuple := &syntax.TupleType{}
		for _, et := range k.Types {
			elem, err := rustType(sc, et, Owned)
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
		}
		return tuple, nil

	case *wit.Own:
		return rustType(sc, k.Type, Owned)

	case *wit.Borrow:
		inner, err := rustType(sc, k.Type, Owned)
		if err != nil {
			return nil, err
		}
		return &syntax.RefType{Elem: inner}, nil

	case wit.Type:
		return rustType(sc, k, mode)
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindUnsupported).
		Path(sc.path...).
		Detail("no Rust rendering for %T", kind).
		Build()
}

// typeRef names a declared type relative to the current module.
func typeRef(sc scope, td *wit.TypeDef) *syntax.PathType {
	name := TypeName(*td.Name)
	var owner []string
	switch o := td.Owner.(type) {
	case *wit.Interface:
		if o == sc.iface {
			return syntax.Path(name)
		}
		if o.Name == nil || o.Package == nil {
			return syntax.Path(name)
		}
		owner = []string{ModuleName(o.Package.Name.Namespace), ModuleName(o.Package.Name.Package), ModuleName(*o.Name)}
	}
	segs := make([]string, 0, len(sc.path)+len(owner)+1)
	for range sc.path {
		segs = append(segs, "super")
	}
	segs = append(segs, owner...)
	segs = append(segs, name)
	return syntax.Path(segs...)
}

// lowerTypeDef renders a named type declaration. Anonymous types yield nil.
func lowerTypeDef(sc scope, td *wit.TypeDef) (syntax.Item, error) {
	if td.Name == nil {
		return nil, nil
	}
	name := TypeName(*td.Name)
	switch k := td.Kind.(type) {
	case *wit.Record:
		st := &syntax.Struct{
			Attrs: []*syntax.Attribute{{Path: "derive", List: true, Args: []string{"Clone"}}},
			Vis:   "pub",
			Name:  name,
		}
		for _, f := range k.Fields {
			ft, err := rustType(sc, f.Type, Owned)
			if err != nil {
				return nil, err
			}
			st.Fields = append(st.Fields, syntax.Field{Vis: "pub", Name: FunctionName(f.Name), Type: ft})
		}
		return st, nil

	case *wit.Enum:
		var b strings.Builder
		b.WriteString("#[repr(u8)]\n#[derive(Clone, Copy, Debug, Eq, PartialEq)]\n")
		fmt.Fprintf(&b, "pub enum %s {\n", name)
		for _, c := range k.Cases {
			fmt.Fprintf(&b, "    %s,\n", naming.UpperCamel(c.Name))
		}
		b.WriteString("}")
		return &syntax.Raw{Code: b.String()}, nil

	case *wit.Flags:
		repr := "u8"
		switch n := len(k.Flags); {
		case n > 32:
			repr = "u64"
		case n > 16:
			repr = "u32"
		case n > 8:
			repr = "u16"
		}
		var b strings.Builder
		b.WriteString("wit_bindgen::bitflags::bitflags! {\n")
		b.WriteString("    #[derive(PartialEq, Eq, PartialOrd, Ord, Hash, Debug, Clone, Copy)]\n")
		fmt.Fprintf(&b, "    pub struct %s: %s {\n", name, repr)
		for i, f := range k.Flags {
			fmt.Fprintf(&b, "        const %s = 1 << %d;\n", strings.ToUpper(naming.Snake(f.Name)), i)
		}
		b.WriteString("    }\n}")
		return &syntax.Raw{Code: b.String()}, nil

	case *wit.Variant:
		var b strings.Builder
		b.WriteString("#[derive(Clone)]\n")
		fmt.Fprintf(&b, "pub enum %s {\n", name)
		for _, c := range k.Cases {
			if c.Type == nil {
				fmt.Fprintf(&b, "    %s,\n", naming.UpperCamel(c.Name))
				continue
			}
			ct, err := rustType(sc, c.Type, Owned)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&b, "    %s(%s),\n", naming.UpperCamel(c.Name), ct)
		}
		b.WriteString("}")
		return &syntax.Raw{Code: b.String()}, nil

	case *wit.Resource:
		return &syntax.Raw{Code: fmt.Sprintf("#[derive(Debug)]\n#[repr(transparent)]\npub struct %s {\n    handle: wit_bindgen::rt::Resource<%s>,\n}", name, name)}, nil
	}

	// aliases and named lists, options, results, tuples
	target, err := anonymousType(sc, td.Kind, Owned)
	if err != nil {
		return nil, err
	}
	return &syntax.Raw{Code: fmt.Sprintf("pub type %s = %s;", name, target)}, nil
}

// lowerFunction renders a freestanding function. Exported functions take
// owned parameters.
func lowerFunction(sc scope, f *wit.Function, export bool) (*syntax.Function, error) {
	mode := Borrowed
	if export {
		mode = Owned
	}
	fn := &syntax.Function{Vis: "pub", Name: FunctionName(f.Name)}
	for _, p := range f.Params {
		pt, err := rustType(sc, p.Type, mode)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, syntax.Param{Name: FunctionName(p.Name), Type: pt})
	}
	out, err := lowerResults(sc, f.Results)
	if err != nil {
		return nil, err
	}
	fn.Output = out
	return fn, nil
}

// lowerResults renders a function's results: none is unit, one is its
// type, several become a tuple in declaration order.
func lowerResults(sc scope, results []wit.Param) (syntax.Type, error) {
	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return rustType(sc, results[0].Type, Owned)
	}
	tuple := &syntax.TupleType{}
	for _, r := range results {
		rt, err := rustType(sc, r.Type, Owned)
		if err != nil {
			return nil, err
		}
		tuple.Elems = append(tuple.Elems, rt)
	}
	return tuple, nil
}

// TypeString renders t in WIT syntax for diagnostics.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case nil:
		return "_"
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(k.Type) + ">"
		case *wit.Option:
			return "option<" + TypeString(k.Type) + ">"
		case *wit.Result:
			return "result<" + TypeString(k.OK) + ", " + TypeString(k.Err) + ">"
		case *wit.Tuple:
			parts := make([]string, len(k.Types))
			for i, et := range k.Types {
				parts[i] = TypeString(et)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		case *wit.Own:
			return "own<" + TypeString(k.Type) + ">"
		case *wit.Borrow:
			return "borrow<" + TypeString(k.Type) + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
