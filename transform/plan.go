package transform

import (
	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/visitor"
)

// Plan is every lattice method of one generation in discovery order.
type Plan struct {
	Namespace string
	Package   string
	Target    string // type the traits are implemented for
	Methods   []*LatticeMethod
}

// reservedTraits are names brought into scope by the generated imports.
var reservedTraits = map[string]string{
	"Serialize":   "use ::serde::{Serialize, Deserialize}",
	"Deserialize": "use ::serde::{Serialize, Deserialize}",
}

// Interfaces returns interface names in discovery order.
func (p *Plan) Interfaces() []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range p.Methods {
		if !seen[m.Interface] {
			seen[m.Interface] = true
			names = append(names, m.Interface)
		}
	}
	return names
}

// MethodsOf returns the methods of iface in discovery order.
func (p *Plan) MethodsOf(iface string) []*LatticeMethod {
	var ms []*LatticeMethod
	for _, m := range p.Methods {
		if m.Interface == iface {
			ms = append(ms, m)
		}
	}
	return ms
}

// WireNames returns every wire method name in discovery order.
func (p *Plan) WireNames() []string {
	names := make([]string, len(p.Methods))
	for i, m := range p.Methods {
		names[i] = m.WireName
	}
	return names
}

// Build rewrites every collected import function for traits implemented on
// target. It fails on the first unsupported parameter shape, and when
// generated names collide.
func Build(res *visitor.Result, target string) (*Plan, error) {
	plan := &Plan{Namespace: res.Namespace, Package: res.Package, Target: target}
	for _, imp := range res.Imports {
		m, err := NewLatticeMethod(res.Package, imp.Interface, imp.Module, imp.Func, res.Structs)
		if err != nil {
			return nil, err
		}
		plan.Methods = append(plan.Methods, m)
	}
	if conflicts := plan.Conflicts(); len(conflicts) > 0 {
		return nil, errors.NewConflictError(conflicts)
	}
	return plan, nil
}

// Conflicts reports generated names claimed by more than one function:
// wire method names across the whole dispatch routine, invocation record
// names, and trait names across interfaces. Trait names also may not shadow
// an imported name or the target type.
func (p *Plan) Conflicts() []errors.Conflict {
	var conflicts []errors.Conflict
	wire := map[string]*LatticeMethod{}
	record := map[string]*LatticeMethod{}
	for _, m := range p.Methods {
		if first, ok := wire[m.WireName]; ok {
			conflicts = append(conflicts, errors.Conflict{
				Interface: m.Interface, What: "wire method", Name: m.WireName,
				First: first.Path(), Second: m.Path(),
			})
		} else {
			wire[m.WireName] = m
		}
		if first, ok := record[m.RecordName]; ok {
			conflicts = append(conflicts, errors.Conflict{
				Interface: m.Interface, What: "invocation record", Name: m.RecordName,
				First: first.Path(), Second: m.Path(),
			})
		} else {
			record[m.RecordName] = m
		}
	}

	traits := map[string]string{}
	for _, iface := range p.Interfaces() {
		name := TraitName(iface)
		if use, ok := reservedTraits[name]; ok {
			conflicts = append(conflicts, errors.Conflict{
				Interface: iface, What: "trait", Name: name,
				First: use, Second: iface,
			})
			continue
		}
		if p.Target != "" && name == p.Target {
			conflicts = append(conflicts, errors.Conflict{
				Interface: iface, What: "trait", Name: name,
				First: "target type " + p.Target, Second: iface,
			})
			continue
		}
		if first, ok := traits[name]; ok {
			conflicts = append(conflicts, errors.Conflict{
				Interface: iface, What: "trait", Name: name,
				First: first, Second: iface,
			})
			continue
		}
		traits[name] = iface
	}
	return conflicts
}
