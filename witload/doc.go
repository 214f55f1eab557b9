// Package witload builds binding trees from WIT packages.
//
// The input is the JSON resolve document produced by
// `wasm-tools component wit --json`. A world is selected and laid out the
// way the Rust binding generator lays out its output:
//
//	<namespace>::<package>::<interface>            imported interfaces
//	exports::<namespace>::<package>::<interface>   exported interfaces
//
// Imported functions take borrowed parameters (&str, &[T], &Record);
// exported functions and all results use owned types.
package witload
