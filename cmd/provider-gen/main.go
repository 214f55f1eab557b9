// Command provider-gen expands a provider invocation into Rust glue code.
//
//	provider-gen generate 'MyProvider, "wit/provider.json"' -o src/provider.rs
//	provider-gen inspect  'MyProvider, { tree: "bindings.yaml" }'
//	provider-gen browse   --input provider.inv
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/term"

	providergen "github.com/wippyai/provider-gen"
	"github.com/wippyai/provider-gen/dispatch"
	"github.com/wippyai/provider-gen/visitor"
)

var version = "dev"

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	common := []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Read invocation text from a file (- for stdin)",
		},
		&cli.StringFlag{
			Name:    "namespace",
			Usage:   "Pin the namespace instead of the first discovered",
			Sources: cli.EnvVars("PROVIDERGEN_NAMESPACE"),
		},
		&cli.StringFlag{
			Name:    "package",
			Usage:   "Pin the package instead of the first discovered",
			Sources: cli.EnvVars("PROVIDERGEN_PACKAGE"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Trace traversal and generation to stderr",
			Sources: cli.EnvVars("PROVIDERGEN_DEBUG"),
		},
	}

	return &cli.Command{
		Name:    "provider-gen",
		Usage:   "Generate wasmCloud capability provider glue from a binding tree",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Print the generated Rust source",
				ArgsUsage: "'<Target>, <binding args>'",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "sdk",
						Usage:   "Provider SDK crate path",
						Value:   dispatch.DefaultSDK,
						Sources: cli.EnvVars("PROVIDERGEN_SDK"),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
				}, common...),
				Action: generateAction,
			},
			{
				Name:      "inspect",
				Usage:     "Report module roles, structures and lattice methods",
				ArgsUsage: "'<Target>, <binding args>'",
				Flags:     common,
				Action:    inspectAction,
			},
			{
				Name:      "browse",
				Usage:     "Browse lattice methods interactively",
				ArgsUsage: "'<Target>, <binding args>'",
				Flags:     common,
				Action:    browseAction,
			},
		},
	}
}

// readInvocation returns the invocation text and the directory relative
// binding paths resolve against.
func readInvocation(cmd *cli.Command) (string, string, error) {
	switch path := cmd.String("input"); {
	case path == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("read invocation: %w", err)
		}
		return string(data), filepath.Dir(path), nil
	}
	if cmd.NArg() < 1 {
		return "", "", fmt.Errorf("usage: provider-gen %s '<Target>, <binding args>'", cmd.Name)
	}
	return strings.Join(cmd.Args().Slice(), " "), "", nil
}

func options(cmd *cli.Command, baseDir string) ([]providergen.Option, error) {
	opts := []providergen.Option{
		providergen.WithBaseDir(baseDir),
		providergen.WithNamespace(cmd.String("namespace")),
		providergen.WithPackage(cmd.String("package")),
	}
	if cmd.Bool("debug") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
		providergen.SetLogger(l)
		opts = append(opts, providergen.WithLogger(l))
	}
	return opts, nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	input, base, err := readInvocation(cmd)
	if err != nil {
		return err
	}
	opts, err := options(cmd, base)
	if err != nil {
		return err
	}
	opts = append(opts, providergen.WithSDK(cmd.String("sdk")))
	out, err := providergen.Generate(ctx, input, opts...)
	if err != nil {
		return err
	}
	if path := cmd.String("output"); path != "" {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

func inspectAction(ctx context.Context, cmd *cli.Command) error {
	input, base, err := readInvocation(cmd)
	if err != nil {
		return err
	}
	opts, err := options(cmd, base)
	if err != nil {
		return err
	}
	a, err := providergen.Analyze(ctx, input, opts...)
	if err != nil {
		return err
	}
	color := term.IsTerminal(int(os.Stdout.Fd()))
	_, err = fmt.Fprint(os.Stdout, report(a, color))
	return err
}

func browseAction(ctx context.Context, cmd *cli.Command) error {
	input, base, err := readInvocation(cmd)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("browse needs a terminal; use inspect instead")
	}
	opts, err := options(cmd, base)
	if err != nil {
		return err
	}
	a, err := providergen.Analyze(ctx, input, opts...)
	if err != nil {
		return err
	}
	return runBrowser(a)
}

// report renders an analysis as text, styled when color is set.
func report(a *providergen.Analysis, color bool) string {
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	res := a.Result
	fmt.Fprintf(&b, "%s %s\n", paint(titleStyle, "Target"), a.Invocation.Target)
	fmt.Fprintf(&b, "namespace: %s\npackage:   %s\n", res.Namespace, res.Package)
	if root := res.ExportsRoot(); root != nil {
		fmt.Fprintf(&b, "exports:   %s\n", root.Name)
	}

	b.WriteString("\n" + paint(titleStyle, "Modules") + "\n")
	for _, m := range res.Modules {
		if m.Role == visitor.RoleOther {
			continue
		}
		fmt.Fprintf(&b, "  %-40s %s\n", strings.Join(m.FullPath(), "::"), paint(typeStyle, m.Role.String()))
	}

	if res.Structs.Len() > 0 {
		b.WriteString("\n" + paint(titleStyle, "Structures") + "\n")
		for _, e := range res.Structs.Entries() {
			fmt.Fprintf(&b, "  %s\n", e.QualifiedPath())
		}
	}
	if res.Augmented > 0 {
		fmt.Fprintf(&b, "  (%d augmented with serde derives)\n", res.Augmented)
	}
	if names := res.Structs.Ambiguous(); len(names) > 0 {
		b.WriteString("\n" + paint(titleStyle, "Ambiguous structure names") + "\n")
		for _, name := range names {
			var paths []string
			for _, e := range res.Structs.Candidates(name) {
				paths = append(paths, e.QualifiedPath())
			}
			fmt.Fprintf(&b, "  %s: %s\n", paint(typeStyle, name), strings.Join(paths, ", "))
		}
	}

	b.WriteString("\n" + paint(titleStyle, "Lattice methods") + "\n")
	if len(a.Plan.Methods) == 0 {
		b.WriteString("  none\n")
	}
	for _, m := range a.Plan.Methods {
		fmt.Fprintf(&b, "  %s  %s\n", paint(funcStyle, m.WireName), m.Path())
		fmt.Fprintf(&b, "      record %s { %s }\n", m.RecordName, m.Params())
		if m.Return != nil {
			fmt.Fprintf(&b, "      returns %s\n", paint(typeStyle, m.Return.String()))
		}
	}
	return b.String()
}
