package transform

import (
	"strings"

	"github.com/wippyai/provider-gen/internal/naming"
	"github.com/wippyai/provider-gen/syntax"
)

// WireMethodPrefix starts every wire method name.
const WireMethodPrefix = "Message."

// WireName returns the wire method name of function fn: "Message.<Fn>".
func WireName(fn string) string {
	return WireMethodPrefix + naming.UpperCamel(fn)
}

// RecordName returns the invocation record name for fn in interface iface
// of package pkg: "<Pkg><Iface><Fn>Invocation".
func RecordName(pkg, iface, fn string) string {
	return naming.UpperCamel(pkg) + naming.UpperCamel(iface) + naming.UpperCamel(fn) + "Invocation"
}

// TraitName returns the trait name generated for interface iface.
func TraitName(iface string) string {
	return naming.UpperCamel(iface)
}

// LatticeMethod is one collected function prepared for dispatch.
type LatticeMethod struct {
	WireName   string
	RecordName string
	FuncName   string
	Interface  string
	TraitName  string
	Module     []string // namespace, package, interface
	Fields     []Field
	Args       []string // parameter names in declaration order
	Return     syntax.Type
	Source     *syntax.Function
}

// ReturnsResult reports whether the method returns a Result whose error
// must be mapped for dispatch.
func (m *LatticeMethod) ReturnsResult() bool {
	p, ok := m.Return.(*syntax.PathType)
	if !ok || len(p.Segments) == 0 {
		return false
	}
	last := p.Last()
	return last.Name == "Result" && len(last.Args) == 2
}

// Params renders the owned parameter list, e.g. "name: String, n: u32".
func (m *LatticeMethod) Params() string {
	parts := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return strings.Join(parts, ", ")
}

// Path returns the declaring module path joined with the function name.
func (m *LatticeMethod) Path() string {
	return strings.Join(append(m.Module[:len(m.Module):len(m.Module)], m.FuncName), "::")
}

// NewLatticeMethod rewrites fn, declared in module of interface iface in
// package pkg.
func NewLatticeMethod(pkg, iface string, module []string, fn *syntax.Function, structs StructResolver) (*LatticeMethod, error) {
	m := &LatticeMethod{
		WireName:   WireName(fn.Name),
		RecordName: RecordName(pkg, iface, fn.Name),
		FuncName:   fn.Name,
		Interface:  iface,
		TraitName:  TraitName(iface),
		Module:     append([]string(nil), module...),
		Source:     fn,
	}
	scope := m.Module
	for _, p := range fn.Params {
		f, err := Rewrite(scope, p, structs)
		if err != nil {
			return nil, err
		}
		m.Fields = append(m.Fields, f)
		m.Args = append(m.Args, p.Name)
	}
	if !syntax.IsUnit(fn.Output) {
		m.Return = Absolute(fn.Output, scope)
	}
	return m, nil
}
