// Package syntax models the Rust binding tree a binding generator emits for a
// set of WIT interfaces.
//
// The tree is a nesting of modules (namespace, package, interface, plus the
// reserved "exports" module) holding free functions, structures and opaque
// raw items. Parameter and field types are parsed into a small type
// expression model so that borrowing shapes can be recognized and rewritten:
//
//	t, err := syntax.ParseType("Option<&[u8]>")
//	// t.String() == "Option<&[u8]>"
//
// Print serializes a tree back to Rust source; Visitor and Walk provide the
// default recursive traversal used by mutating passes.
package syntax
