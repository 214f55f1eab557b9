package witload

import (
	"fmt"
	"io"
	"os"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/internal/naming"
	"github.com/wippyai/provider-gen/syntax"
)

// ExportsModule is the module holding exported interfaces.
const ExportsModule = "exports"

// LoadFile decodes the resolve JSON at path and builds the tree for world.
// An empty world selects the only world in the document.
func LoadFile(path, world string) (*syntax.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("open WIT document %s", path), err)
	}
	defer f.Close()
	return Decode(f, world)
}

// Decode reads resolve JSON from r and builds the tree for world.
func Decode(r io.Reader, world string) (*syntax.File, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Load("decode WIT resolve JSON", err)
	}
	return Build(res, world)
}

// Build lays out the selected world of res as a binding tree.
func Build(res *wit.Resolve, world string) (*syntax.File, error) {
	w, err := SelectWorld(res, world)
	if err != nil {
		return nil, err
	}
	return BuildWorld(w)
}

// SelectWorld finds the world named name, or the only world when name is
// empty.
func SelectWorld(res *wit.Resolve, name string) (*wit.World, error) {
	if name == "" {
		switch len(res.Worlds) {
		case 0:
			return nil, errors.NotFound(errors.PhaseLoad, "world", "")
		case 1:
			return res.Worlds[0], nil
		default:
			names := make([]string, len(res.Worlds))
			for i, w := range res.Worlds {
				names[i] = w.Name
			}
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
				Value(names).
				Detail("document defines %d worlds; select one with world: \"...\"", len(res.Worlds)).
				Build()
		}
	}
	for _, w := range res.Worlds {
		if w.Name == name {
			return w, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseLoad, "world", name)
}

// BuildWorld lays out w's imports and exports as nested modules.
func BuildWorld(w *wit.World) (*syntax.File, error) {
	b := newTreeBuilder()
	for key, item := range w.Imports.All() {
		if err := b.addWorldItem(w, key, item, false); err != nil {
			return nil, err
		}
	}
	for key, item := range w.Exports.All() {
		if err := b.addWorldItem(w, key, item, true); err != nil {
			return nil, err
		}
	}
	return b.file(), nil
}

// treeBuilder accumulates modules by path, keeping first-insertion order.
type treeBuilder struct {
	root    *syntax.Module
	modules map[string]*syntax.Module
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{root: &syntax.Module{}, modules: map[string]*syntax.Module{}}
}

func (b *treeBuilder) file() *syntax.File {
	return &syntax.File{Items: b.root.Items}
}

// module returns the module at path, creating missing ancestors.
func (b *treeBuilder) module(path []string) *syntax.Module {
	m := b.root
	key := ""
	for _, name := range path {
		key += "/" + name
		child, ok := b.modules[key]
		if !ok {
			child = &syntax.Module{Vis: "pub", Name: name}
			b.modules[key] = child
			m.Items = append(m.Items, child)
		}
		m = child
	}
	return m
}

func (b *treeBuilder) addWorldItem(w *wit.World, key string, item wit.WorldItem, export bool) error {
	switch it := item.(type) {
	case *wit.InterfaceRef:
		if it.Interface == nil {
			return errors.InvalidData(errors.PhaseLoad, []string{key}, "world item references no interface")
		}
		path, err := interfacePath(w, key, it.Interface)
		if err != nil {
			return err
		}
		if export {
			path = append([]string{ExportsModule}, path...)
		}
		return b.addInterface(path, it.Interface, export)

	case *wit.TypeDef:
		item, err := lowerTypeDef(scope{}, it)
		if err != nil {
			return err
		}
		if item != nil {
			b.root.Items = append(b.root.Items, item)
		}

	case *wit.Function:
		if !isFreestanding(it) {
			return nil
		}
		fn, err := lowerFunction(scope{}, it, export)
		if err != nil {
			return err
		}
		b.root.Items = append(b.root.Items, fn)
	}
	return nil
}

// interfacePath is [namespace, package, interface] in module-name form.
func interfacePath(w *wit.World, key string, iface *wit.Interface) ([]string, error) {
	pkg := iface.Package
	if pkg == nil {
		pkg = w.Package
	}
	if pkg == nil {
		return nil, errors.InvalidData(errors.PhaseLoad, []string{key}, "interface has no package")
	}
	name := key
	if iface.Name != nil {
		name = *iface.Name
	}
	return []string{
		ModuleName(pkg.Name.Namespace),
		ModuleName(pkg.Name.Package),
		ModuleName(name),
	}, nil
}

func (b *treeBuilder) addInterface(path []string, iface *wit.Interface, export bool) error {
	m := b.module(path)
	sc := scope{path: path, iface: iface}
	for _, td := range iface.TypeDefs.All() {
		item, err := lowerTypeDef(sc, td)
		if err != nil {
			return err
		}
		if item != nil {
			m.Items = append(m.Items, item)
		}
	}
	for _, f := range iface.Functions.All() {
		if !isFreestanding(f) {
			continue
		}
		fn, err := lowerFunction(sc, f, export)
		if err != nil {
			return err
		}
		m.Items = append(m.Items, fn)
	}
	return nil
}

func isFreestanding(f *wit.Function) bool {
	_, ok := f.Kind.(*wit.Freestanding)
	return ok
}

// ModuleName converts a WIT identifier to a Rust module name.
func ModuleName(s string) string {
	return naming.EscapeKeyword(naming.Snake(s))
}

// FunctionName converts a WIT function name to a Rust function name.
func FunctionName(s string) string {
	return naming.EscapeKeyword(naming.Snake(s))
}

// TypeName converts a WIT type name to a Rust type name.
func TypeName(s string) string {
	return naming.UpperCamel(s)
}
