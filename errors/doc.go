// Package errors provides structured error types for the provider generator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: module path, Rust/WIT type text, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTransform, errors.KindUnsupportedShape).
//		Path("wasmcloud", "messaging", "consumer").
//		RustType("&mut str").
//		Detail("mutable borrows cannot be owned").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingNamespace()
//	err := errors.InvalidInput(errors.PhaseInput, "expected <Type>, <bindgen args>")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
