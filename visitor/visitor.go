package visitor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/syntax"
)

// ExportsModule is the reserved module name holding exported interfaces.
const ExportsModule = "exports"

// Role is the positional role of a module.
type Role int

const (
	RoleOther       Role = iota
	RoleNamespace        // depth 0, first non-exports module
	RolePackage          // depth 1, directly beneath the namespace
	RoleInterface        // depth 2, directly beneath the package, not exported
	RoleExports          // the reserved exports module itself
	RoleExportsRoot      // depth 1, directly beneath exports
	RoleExported         // any other module beneath exports
)

func (r Role) String() string {
	switch r {
	case RoleNamespace:
		return "namespace"
	case RolePackage:
		return "package"
	case RoleInterface:
		return "interface"
	case RoleExports:
		return "exports"
	case RoleExportsRoot:
		return "exports-root"
	case RoleExported:
		return "exported"
	}
	return "other"
}

// ModuleInfo describes one visited module.
type ModuleInfo struct {
	Path   []string // enclosing modules, not including the module itself
	Name   string
	Role   Role
	Module *syntax.Module
}

// Depth is the number of enclosing modules.
func (m ModuleInfo) Depth() int { return len(m.Path) }

// FullPath returns the module path including the module itself.
func (m ModuleInfo) FullPath() []string {
	return append(m.Path[:len(m.Path):len(m.Path)], m.Name)
}

// ImportFunction is a function collected from a non-exported interface.
type ImportFunction struct {
	Interface string
	Module    []string // namespace, package, interface
	Func      *syntax.Function
}

// Result is the outcome of one traversal.
type Result struct {
	Namespace    string
	Package      string
	ExportsRoots []*syntax.Module
	Modules      []ModuleInfo
	Structs      *StructTable
	Imports      []ImportFunction
	Augmented    int // structures that received serde derives
}

// ExportsRoot returns the exported namespace module matching the
// namespace, or the first exports root when none matches.
func (r *Result) ExportsRoot() *syntax.Module {
	for _, m := range r.ExportsRoots {
		if m.Name == r.Namespace {
			return m
		}
	}
	if len(r.ExportsRoots) > 0 {
		return r.ExportsRoots[0]
	}
	return nil
}

// Interfaces returns the names of interfaces with collected functions, in
// discovery order.
func (r *Result) Interfaces() []string {
	var names []string
	seen := map[string]bool{}
	for _, fn := range r.Imports {
		if !seen[fn.Interface] {
			seen[fn.Interface] = true
			names = append(names, fn.Interface)
		}
	}
	return names
}

// ImportsOf returns the functions collected for iface in discovery order.
func (r *Result) ImportsOf(iface string) []ImportFunction {
	var fns []ImportFunction
	for _, fn := range r.Imports {
		if fn.Interface == iface {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Options configures a traversal.
type Options struct {
	// Namespace pins the namespace instead of taking the first discovered.
	Namespace string
	// Package pins the package instead of taking the first discovered.
	Package string
	// Logger receives the traversal trace at debug level. Defaults to
	// Logger().
	Logger *zap.Logger
}

// Visit classifies f, collects its structures and import functions, and
// adds serde derives to every structure in place. It fails when no
// namespace or package is found, including when a pinned name matches no
// module.
func Visit(f *syntax.File, opts Options) (*Result, error) {
	c := &collector{
		log: opts.Logger,
		res: &Result{
			Namespace: opts.Namespace,
			Package:   opts.Package,
			Structs:   NewStructTable(),
		},
		pinnedNS:  opts.Namespace != "",
		pinnedPkg: opts.Package != "",
	}
	if c.log == nil {
		c.log = Logger()
	}
	syntax.WalkFile(c, f)

	if c.res.Namespace == "" || !c.found(RoleNamespace) {
		err := errors.MissingNamespace()
		if c.pinnedNS {
			err.Value = c.res.Namespace
			err.Detail = fmt.Sprintf("namespace module %q not found in binding output", c.res.Namespace)
		}
		return nil, err
	}
	if c.res.Package == "" || !c.found(RolePackage) {
		err := errors.MissingPackage(c.res.Namespace)
		if c.pinnedPkg {
			err.Value = c.res.Package
			err.Detail = fmt.Sprintf("package module %q not found under namespace %q", c.res.Package, c.res.Namespace)
		}
		return nil, err
	}
	for _, name := range c.res.Structs.Ambiguous() {
		var paths []string
		for _, e := range c.res.Structs.Candidates(name) {
			paths = append(paths, e.QualifiedPath())
		}
		c.log.Debug("ambiguous structure name",
			zap.String("name", name),
			zap.Strings("candidates", paths))
	}
	c.log.Debug("traversal complete",
		zap.String("namespace", c.res.Namespace),
		zap.String("package", c.res.Package),
		zap.Int("structs", c.res.Structs.Len()),
		zap.Int("imports", len(c.res.Imports)),
		zap.Int("exports_roots", len(c.res.ExportsRoots)))
	return c.res, nil
}

// collector implements syntax.Visitor, keeping the ancestor stack balanced
// across module entry and exit.
type collector struct {
	log       *zap.Logger
	res       *Result
	parents   []string
	pinnedNS  bool
	pinnedPkg bool
}

// found reports whether some visited module was given role.
func (c *collector) found(role Role) bool {
	for _, m := range c.res.Modules {
		if m.Role == role {
			return true
		}
	}
	return false
}

func (c *collector) depth() int { return len(c.parents) }

func (c *collector) exported() bool {
	for _, p := range c.parents {
		if p == ExportsModule {
			return true
		}
	}
	return false
}

func (c *collector) parent() string {
	if len(c.parents) == 0 {
		return ""
	}
	return c.parents[len(c.parents)-1]
}

func (c *collector) trace() string {
	return strings.Repeat("=", c.depth()) + ">"
}

func (c *collector) VisitModule(m *syntax.Module) {
	c.log.Debug(c.trace()+" module",
		zap.Int("level", c.depth()),
		zap.String("module", m.Name))

	role := c.classify(m)
	c.res.Modules = append(c.res.Modules, ModuleInfo{
		Path:   append([]string(nil), c.parents...),
		Name:   m.Name,
		Role:   role,
		Module: m,
	})
	if role == RoleExportsRoot {
		c.res.ExportsRoots = append(c.res.ExportsRoots, m)
	}

	if m.External || len(m.Items) == 0 {
		c.log.Debug("empty module", zap.String("module", m.Name))
		return
	}
	c.parents = append(c.parents, m.Name)
	syntax.WalkModule(c, m)
	c.parents = c.parents[:len(c.parents)-1]
	c.log.Debug(c.trace()+" leave module", zap.String("module", m.Name))
}

// classify assigns m its role, recording the namespace and package on
// first discovery.
func (c *collector) classify(m *syntax.Module) Role {
	exported := c.exported()
	switch c.depth() {
	case 0:
		if m.Name == ExportsModule {
			return RoleExports
		}
		if c.res.Namespace == "" && !c.pinnedNS {
			c.res.Namespace = m.Name
			c.log.Debug("namespace discovered", zap.String("namespace", m.Name))
		}
		if m.Name == c.res.Namespace {
			return RoleNamespace
		}
	case 1:
		if c.parent() == ExportsModule {
			return RoleExportsRoot
		}
		if !exported && c.parent() == c.res.Namespace && c.res.Namespace != "" {
			if c.res.Package == "" && !c.pinnedPkg {
				c.res.Package = m.Name
				c.log.Debug("package discovered", zap.String("package", m.Name))
			}
			if m.Name == c.res.Package {
				return RolePackage
			}
		}
	case 2:
		if !exported && c.isPackagePath(c.parents) {
			return RoleInterface
		}
	}
	if exported {
		return RoleExported
	}
	return RoleOther
}

// isPackagePath reports whether path is exactly namespace::package.
func (c *collector) isPackagePath(path []string) bool {
	return len(path) == 2 && c.res.Namespace != "" && c.res.Package != "" &&
		path[0] == c.res.Namespace && path[1] == c.res.Package
}

func (c *collector) VisitItem(item syntax.Item) {
	switch it := item.(type) {
	case *syntax.Function:
		c.visitFunction(it)
	case *syntax.Struct:
		c.visitStruct(it)
	default:
		syntax.Walk(c, item)
	}
}

func (c *collector) visitFunction(fn *syntax.Function) {
	c.log.Debug(c.trace()+" visiting fn",
		zap.Int("level", c.depth()),
		zap.String("module", c.parent()),
		zap.String("fn", fn.Name))

	if c.depth() != 3 || c.exported() || !c.isPackagePath(c.parents[:2]) {
		return
	}
	c.res.Imports = append(c.res.Imports, ImportFunction{
		Interface: c.parent(),
		Module:    append([]string(nil), c.parents...),
		Func:      fn,
	})
}

func (c *collector) visitStruct(s *syntax.Struct) {
	c.log.Debug(c.trace()+" visiting struct",
		zap.Int("level", c.depth()),
		zap.String("module", c.parent()),
		zap.String("struct", s.Name))

	if added := AugmentSerde(s); len(added) > 0 {
		c.res.Augmented++
		c.log.Debug("appended serde derives",
			zap.String("struct", s.Name),
			zap.Strings("derives", added))
	}
	c.res.Structs.Add(c.parents, s)
}
