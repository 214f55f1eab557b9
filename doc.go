// Package providergen generates wasmCloud capability provider glue from a
// binding tree.
//
// A binding generator (WIT resolve JSON or a YAML tree document) produces a
// module tree laid out as namespace / package / interface. The generator
// classifies that tree, collects the functions of every imported interface,
// rewrites their borrowed parameters into owned fields, and emits Rust
// source that:
//
//   - re-emits the binding tree with serde derives added to every structure
//   - forwards the provider lifecycle hooks to the target type
//   - declares one invocation record per lattice method
//   - routes "Message.<Fn>" wire names through a single dispatch routine
//   - declares a trait per interface, implemented on the target by forwarding
//
// # Packages
//
//	providergen/        Generate, GenerateFile, Analyze and Options
//	├── invocation/     "<Target>, <binding args>" parsing
//	├── treefile/       YAML binding tree documents
//	├── witload/        WIT resolve JSON lowered to a binding tree
//	├── syntax/         binding tree model, type parser, printer
//	├── visitor/        module classification and declaration collection
//	├── transform/      parameter shape classification and rewriting
//	├── dispatch/       records, dispatch routine, traits
//	├── emit/           Rust output model and printer
//	└── errors/         structured error types
//
// # Quick Start
//
//	out, err := providergen.Generate(ctx, `MyProvider, "wit/provider.json"`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Generation is deterministic: the same invocation and binding tree always
// produce identical bytes. Any failure aborts with no partial output.
package providergen
