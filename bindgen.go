package providergen

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/invocation"
	"github.com/wippyai/provider-gen/syntax"
	"github.com/wippyai/provider-gen/treefile"
	"github.com/wippyai/provider-gen/witload"
)

// BindingGenerator produces the binding tree for the bindgen arguments of
// an invocation.
type BindingGenerator interface {
	Generate(ctx context.Context, args invocation.Args) (*syntax.File, error)
}

// BindingGeneratorFunc adapts a function to BindingGenerator.
type BindingGeneratorFunc func(ctx context.Context, args invocation.Args) (*syntax.File, error)

func (f BindingGeneratorFunc) Generate(ctx context.Context, args invocation.Args) (*syntax.File, error) {
	return f(ctx, args)
}

// TreeGenerator reads YAML or JSON binding tree documents.
type TreeGenerator struct {
	BaseDir string
}

func (g TreeGenerator) Generate(ctx context.Context, args invocation.Args) (*syntax.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := args.Source()
	if src == "" {
		return nil, errors.InvalidInput(errors.PhaseBindgen, "binding arguments name no tree document")
	}
	return treefile.Load(resolve(g.BaseDir, src))
}

// WITGenerator reads WIT resolve JSON and lowers the selected world.
type WITGenerator struct {
	BaseDir string
}

func (g WITGenerator) Generate(ctx context.Context, args invocation.Args) (*syntax.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args.Path == "" {
		return nil, errors.InvalidInput(errors.PhaseBindgen, "binding arguments name no WIT document")
	}
	return witload.LoadFile(resolve(g.BaseDir, args.Path), args.World)
}

// AutoGenerator picks the tree loader for tree: arguments and .yaml/.yml
// paths, and the WIT loader otherwise.
type AutoGenerator struct {
	BaseDir string
}

func (g AutoGenerator) Generate(ctx context.Context, args invocation.Args) (*syntax.File, error) {
	if IsTreeSource(args) {
		return TreeGenerator(g).Generate(ctx, args)
	}
	return WITGenerator(g).Generate(ctx, args)
}

// IsTreeSource reports whether args name a binding tree document.
func IsTreeSource(args invocation.Args) bool {
	if args.Tree != "" {
		return true
	}
	switch strings.ToLower(filepath.Ext(args.Path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func resolve(base, path string) string {
	if base == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

const compileErrorMacro = "compile_error!"

// checkTree reports an upstream failure when the binding generator produced
// nothing or left a compile error in the tree.
func checkTree(f *syntax.File) error {
	if f == nil || len(f.Items) == 0 {
		return errors.Upstream("binding generator produced an empty tree", nil)
	}
	var failure string
	syntax.Inspect(f, func(_ []string, item syntax.Item) bool {
		if failure != "" {
			return false
		}
		if raw, ok := item.(*syntax.Raw); ok && strings.Contains(raw.Code, compileErrorMacro) {
			failure = compileErrorMessage(raw.Code)
			return false
		}
		return true
	})
	if failure != "" {
		return errors.Upstream(failure, nil)
	}
	return nil
}

// compileErrorMessage extracts the string literal of a compile_error! call,
// falling back to the whole item text.
func compileErrorMessage(code string) string {
	rest := code[strings.Index(code, compileErrorMacro)+len(compileErrorMacro):]
	start := strings.IndexByte(rest, '"')
	if start < 0 {
		return strings.TrimSpace(code)
	}
	end := strings.LastIndexByte(rest, '"')
	if end <= start {
		return strings.TrimSpace(code)
	}
	return rest[start+1 : end]
}
