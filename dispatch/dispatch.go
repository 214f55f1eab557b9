// Package dispatch generates the provider glue for a transformed binding
// tree: lifecycle hooks, invocation records, one merged message dispatch
// routine per target, and a trait plus forwarding impl per interface.
package dispatch

import (
	"fmt"
	"strings"

	"github.com/wippyai/provider-gen/emit"
	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/syntax"
	"github.com/wippyai/provider-gen/transform"
)

// DefaultSDK is the crate path of the provider SDK.
const DefaultSDK = "::wasmcloud_provider_sdk"

// Config selects the target type and SDK crate path.
type Config struct {
	Target string // type implementing the provider
	SDK    string // defaults to DefaultSDK
}

func (c Config) sdk(path string) string {
	base := c.SDK
	if base == "" {
		base = DefaultSDK
	}
	return base + "::" + path
}

// Generate assembles the output file: serde and async_trait imports, the
// binding tree, lifecycle hooks, invocation records, the dispatch routine,
// and interface traits. Records, arms, and trait methods follow the plan's
// discovery order.
func Generate(cfg Config, tree *syntax.File, plan *transform.Plan) (*emit.File, error) {
	if !isIdent(cfg.Target) {
		return nil, errors.InvalidInput(errors.PhaseGenerate,
			fmt.Sprintf("target type %q is not an identifier", cfg.Target))
	}

	f := &emit.File{}
	f.Decls = append(f.Decls,
		emit.Use{Path: "::serde::{Serialize, Deserialize}"},
		emit.Use{Path: "::async_trait::async_trait"},
		emit.BlankLine{},
		emit.Comment{Text: "START => Codegen performed by the binding generator"},
		emit.RawDecl{Code: syntax.Print(tree)},
		emit.Comment{Text: "END => Codegen performed by the binding generator"},
		emit.BlankLine{},
	)
	f.Decls = append(f.Decls, Lifecycle(cfg)...)

	if len(plan.Methods) > 0 {
		f.Decls = append(f.Decls, emit.Comment{Text: "START => Invocation records for lattice methods"})
		for _, m := range plan.Methods {
			f.Decls = append(f.Decls, Record(m))
		}
		f.Decls = append(f.Decls, emit.Comment{Text: "END => Invocation records for lattice methods"}, emit.BlankLine{})
	}

	f.Decls = append(f.Decls, Dispatch(cfg, plan.Methods))

	for _, iface := range plan.Interfaces() {
		methods := plan.MethodsOf(iface)
		f.Decls = append(f.Decls, Trait(cfg, iface, methods), Forward(cfg, iface, methods))
	}
	return f, nil
}

// Lifecycle forwards the provider handler hooks to the target's
// underscore-prefixed methods and marks the target as a provider.
func Lifecycle(cfg Config) []emit.Decl {
	return []emit.Decl{
		emit.Impl{
			Attrs: []string{"async_trait"},
			Trait: cfg.sdk("ProviderHandler"),
			For:   cfg.Target,
			Methods: []emit.Method{
				{
					Async: true, Name: "put_link", Receiver: "&self",
					Params: []emit.Param{{Name: "ld", Type: "&" + cfg.sdk("core::LinkDefinition")}},
					Return: "bool",
					Body:   []emit.Stmt{emit.Expr{Code: "self._put_link(ld).await"}},
				},
				{
					Async: true, Name: "delete_link", Receiver: "&self",
					Params: []emit.Param{{Name: "actor_id", Type: "&str"}},
					Body:   []emit.Stmt{emit.Expr{Code: "self._delete_link(actor_id).await"}},
				},
				{
					Async: true, Name: "shutdown", Receiver: "&self",
					Body: []emit.Stmt{emit.Expr{Code: "self._shutdown().await"}},
				},
			},
		},
		emit.Impl{Trait: cfg.sdk("Provider"), For: cfg.Target},
	}
}

// Record declares the invocation record of m.
func Record(m *transform.LatticeMethod) emit.Struct {
	st := emit.Struct{
		Attrs: []string{"derive(Debug, ::serde::Serialize, ::serde::Deserialize)"},
		Name:  m.RecordName,
	}
	for _, fld := range m.Fields {
		st.Fields = append(st.Fields, emit.Field{Name: fld.Name, Type: fld.Type.String()})
	}
	return st
}

// Dispatch builds the single message dispatch routine for the target with
// one arm per method and a fallback for unknown method names.
func Dispatch(cfg Config, methods []*transform.LatticeMethod) emit.Impl {
	match := emit.Match{Scrutinee: "method.as_str()"}
	for _, m := range methods {
		match.Arms = append(match.Arms, emit.Arm{
			Pattern: fmt.Sprintf("%q", m.WireName),
			Body:    arm(cfg, m),
		})
	}
	match.Arms = append(match.Arms, emit.Arm{
		Pattern: "_",
		Value: fmt.Sprintf("Err(%s(format!(\"Invalid method name {method}\")).into())",
			cfg.sdk("error::InvocationError::Malformed")),
	})

	return emit.Impl{
		Attrs: []string{"async_trait"},
		Trait: cfg.sdk("MessageDispatch"),
		For:   cfg.Target,
		Methods: []emit.Method{{
			Async:    true,
			Name:     "dispatch",
			Generics: "'a",
			Receiver: "&'a self",
			Params: []emit.Param{
				{Name: "ctx", Type: cfg.sdk("Context")},
				{Name: "method", Type: "String"},
				{Name: "body", Type: "std::borrow::Cow<'a, [u8]>"},
			},
			Return: fmt.Sprintf("Result<Vec<u8>, %s>", cfg.sdk("error::ProviderInvocationError")),
			Body:   []emit.Stmt{match},
		}},
	}
}

func arm(cfg Config, m *transform.LatticeMethod) []emit.Stmt {
	input := "input"
	if len(m.Args) == 0 {
		input = "_input"
	}
	args := []string{"ctx"}
	for _, a := range m.Args {
		args = append(args, "input."+a)
	}
	call := fmt.Sprintf("self.%s(%s).await", m.FuncName, strings.Join(args, ", "))
	if m.ReturnsResult() {
		call += fmt.Sprintf(".map_err(|e| %s(e.to_string()))?",
			cfg.sdk("error::ProviderInvocationError::Provider"))
	}
	return []emit.Stmt{
		emit.Let{Name: input, Type: m.RecordName, Value: cfg.sdk("deserialize(&body)?")},
		emit.Let{Name: "result", Value: call},
		emit.Expr{Code: fmt.Sprintf("Ok(%s(&result)?)", cfg.sdk("serialize"))},
	}
}

// signature is the trait method shape shared by Trait and Forward.
func signature(cfg Config, m *transform.LatticeMethod) emit.Method {
	sig := emit.Method{
		Async:    true,
		Name:     m.FuncName,
		Receiver: "&self",
		Params:   []emit.Param{{Name: "ctx", Type: cfg.sdk("Context")}},
	}
	for _, fld := range m.Fields {
		sig.Params = append(sig.Params, emit.Param{Name: fld.Name, Type: fld.Type.String()})
	}
	if m.Return != nil {
		sig.Return = m.Return.String()
	}
	return sig
}

// Trait declares the interface trait for iface.
func Trait(cfg Config, iface string, methods []*transform.LatticeMethod) emit.Trait {
	t := emit.Trait{Attrs: []string{"async_trait"}, Vis: "pub", Name: transform.TraitName(iface)}
	for _, m := range methods {
		t.Methods = append(t.Methods, signature(cfg, m))
	}
	return t
}

// Forward implements the interface trait on the target by calling the
// identically named method.
func Forward(cfg Config, iface string, methods []*transform.LatticeMethod) emit.Impl {
	impl := emit.Impl{Attrs: []string{"async_trait"}, Trait: transform.TraitName(iface), For: cfg.Target}
	for _, m := range methods {
		sig := signature(cfg, m)
		args := append([]string{"ctx"}, m.Args...)
		sig.Body = []emit.Stmt{emit.Expr{Code: fmt.Sprintf("self.%s(%s).await", m.FuncName, strings.Join(args, ", "))}}
		impl.Methods = append(impl.Methods, sig)
	}
	return impl
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
