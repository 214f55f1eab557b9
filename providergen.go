package providergen

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/provider-gen/dispatch"
	"github.com/wippyai/provider-gen/emit"
	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/invocation"
	"github.com/wippyai/provider-gen/syntax"
	"github.com/wippyai/provider-gen/transform"
	"github.com/wippyai/provider-gen/visitor"
)

// Options configures a generation.
type Options struct {
	Target    string           // overrides the invocation's target type
	SDK       string           // provider SDK crate path, default dispatch.DefaultSDK
	Namespace string           // pins the namespace instead of the first discovered
	Package   string           // pins the package instead of the first discovered
	BaseDir   string           // resolves relative binding document paths
	Generator BindingGenerator // defaults to AutoGenerator rooted at BaseDir
	Logger    *zap.Logger      // defaults to Logger()
}

// Option mutates Options.
type Option func(*Options)

func WithTarget(name string) Option {
	return func(o *Options) { o.Target = name }
}

func WithSDK(path string) Option {
	return func(o *Options) { o.SDK = path }
}

func WithNamespace(ns string) Option {
	return func(o *Options) { o.Namespace = ns }
}

func WithPackage(pkg string) Option {
	return func(o *Options) { o.Package = pkg }
}

func WithBaseDir(dir string) Option {
	return func(o *Options) { o.BaseDir = dir }
}

// WithGenerator replaces the binding generator.
func WithGenerator(g BindingGenerator) Option {
	return func(o *Options) { o.Generator = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.SDK == "" {
		o.SDK = dispatch.DefaultSDK
	}
	if o.Generator == nil {
		o.Generator = AutoGenerator{BaseDir: o.BaseDir}
	}
	if o.Logger == nil {
		o.Logger = Logger()
	}
	return o
}

// Analysis is the classification and transformation of one invocation.
type Analysis struct {
	Invocation *invocation.Invocation
	Tree       *syntax.File
	Result     *visitor.Result
	Plan       *transform.Plan
}

// Analyze runs every pass up to dispatch generation. The binding tree is
// augmented in place.
func Analyze(ctx context.Context, input string, opts ...Option) (*Analysis, error) {
	o := buildOptions(opts)
	return analyze(ctx, input, o)
}

func analyze(ctx context.Context, input string, o Options) (*Analysis, error) {
	log := o.Logger
	inv, err := invocation.Parse(input)
	if err != nil {
		return nil, err
	}
	if o.Target != "" {
		inv.Target = o.Target
	}
	log.Debug("invocation parsed",
		zap.String("target", inv.Target),
		zap.String("source", inv.Args.Source()),
		zap.String("world", inv.Args.World))

	tree, err := o.Generator.Generate(ctx, inv.Args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, upstream(err)
	}
	if err := checkTree(tree); err != nil {
		return nil, err
	}

	res, err := visitor.Visit(tree, visitor.Options{
		Namespace: o.Namespace,
		Package:   o.Package,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := transform.Build(res, inv.Target)
	if err != nil {
		return nil, err
	}
	log.Debug("lattice methods planned",
		zap.Int("methods", len(plan.Methods)),
		zap.Strings("wire_names", plan.WireNames()))

	return &Analysis{Invocation: inv, Tree: tree, Result: res, Plan: plan}, nil
}

// upstream wraps a binding generator failure, keeping errors that already
// carry the bindgen phase.
func upstream(err error) error {
	var ge *errors.Error
	if stderrors.As(err, &ge) && ge.Phase == errors.PhaseBindgen {
		return err
	}
	return errors.Upstream("binding generator failed", err)
}

// Generate expands invocation text of the form "<Target>, <binding args>"
// into Rust source. On error the returned source is empty.
func Generate(ctx context.Context, input string, opts ...Option) (string, error) {
	o := buildOptions(opts)
	a, err := analyze(ctx, input, o)
	if err != nil {
		return "", err
	}
	f, err := dispatch.Generate(dispatch.Config{Target: a.Invocation.Target, SDK: o.SDK}, a.Tree, a.Plan)
	if err != nil {
		return "", err
	}
	out := emit.Print(f)
	o.Logger.Debug("generation complete",
		zap.String("target", a.Invocation.Target),
		zap.Int("bytes", len(out)))
	return out, nil
}

// GenerateFile reads invocation text from path and generates from it.
// Relative binding document paths resolve against the file's directory
// unless WithBaseDir is given.
func GenerateFile(ctx context.Context, path string, opts ...Option) (string, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New(errors.PhaseInput, errors.KindInvalidInput).
			Cause(err).
			Detail("read invocation %s", path).
			Build()
	}
	opts = append([]Option{WithBaseDir(filepath.Dir(path))}, opts...)
	return Generate(ctx, string(input), opts...)
}
