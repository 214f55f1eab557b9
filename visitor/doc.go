// Package visitor classifies the modules of a binding tree and collects the
// declarations dispatch generation needs, in one traversal.
//
// Roles are positional. The first module at depth 0 other than "exports"
// is the namespace; the first module directly beneath it is the package;
// modules directly beneath the package are interfaces whose functions are
// collected as imports. Everything under "exports" is the exported side and
// is never collected.
//
// Every structure found anywhere is recorded with its module path and has
// serde's Serialize and Deserialize added to its existing derive group.
package visitor
