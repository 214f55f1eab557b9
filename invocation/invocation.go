// Package invocation parses the generator's invocation text:
//
//	<TargetType>, <binding generator arguments>
//
// The binding arguments are either a string literal naming the binding
// source, or a brace group of key: value fields.
//
// A lone string literal is always a document path. wit-bindgen reads the
// same form as a world name; here the world is chosen with
// { path: "...", world: "..." } and may be omitted when the document
// defines a single world.
package invocation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/provider-gen/errors"
)

// ExpectedShape describes valid invocation text for diagnostics.
const ExpectedShape = `expected "<TargetType>, <binding args>", e.g. MyProvider, "wit/provider.json" or MyProvider, { path: "wit", world: "provider" }`

// Invocation is parsed invocation text.
type Invocation struct {
	Target string
	Args   Args
}

// Args are the binding generator arguments.
type Args struct {
	Raw     string   // argument text as written after the first comma
	Path    string   // binding source path
	World   string   // world to select from a WIT package
	Tree    string   // binding tree document path
	Options []Option // remaining fields, in order
}

// Option is a brace-group field not interpreted by the generator.
type Option struct {
	Key   string
	Value string
}

// Source returns the document the binding generator should read.
func (a Args) Source() string {
	if a.Tree != "" {
		return a.Tree
	}
	return a.Path
}

// Parse parses invocation text. Fewer than three top-level tokens, or a
// first pair other than "<identifier> ,", is an input error.
func Parse(src string) (*Invocation, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, errors.New(errors.PhaseInput, errors.KindInvalidInput).
			Cause(err).
			Detail("tokenize invocation: %s", ExpectedShape).
			Build()
	}
	if len(toks) < 3 {
		return nil, errors.InvalidInput(errors.PhaseInput,
			fmt.Sprintf("invalid token length %d: %s", len(toks), ExpectedShape))
	}
	if toks[0].Kind != Ident || !toks[1].IsPunct(",") {
		return nil, errors.InvalidInput(errors.PhaseInput,
			fmt.Sprintf("missing or invalid target type %q: %s", toks[0].Text, ExpectedShape))
	}

	inv := &Invocation{Target: toks[0].Text}
	rest := toks[2:]
	if last := rest[len(rest)-1]; last.IsPunct(",") {
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 {
		return nil, errors.InvalidInput(errors.PhaseInput, "missing binding arguments: "+ExpectedShape)
	}
	inv.Args.Raw = strings.TrimSpace(src[rest[0].Pos:rest[len(rest)-1].End])

	if len(rest) == 1 {
		switch t := rest[0]; {
		case t.Kind == Literal && isString(t.Text):
			path, err := unquote(t.Text)
			if err != nil {
				return nil, err
			}
			inv.Args.Path = path
		case t.Kind == Group && t.Delim == '{':
			if err := parseFields(src, t.Children, &inv.Args); err != nil {
				return nil, err
			}
		}
	}
	return inv, nil
}

func isString(text string) bool {
	return strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "`")
}

func unquote(text string) (string, error) {
	s, err := strconv.Unquote(text)
	if err != nil {
		return "", errors.New(errors.PhaseInput, errors.KindInvalidInput).
			Cause(err).
			Detail("invalid string literal %s", text).
			Build()
	}
	return s, nil
}

// parseFields reads "key: value" pairs separated by commas.
func parseFields(src string, toks []Token, args *Args) error {
	for len(toks) > 0 {
		end := 0
		for end < len(toks) && !toks[end].IsPunct(",") {
			end++
		}
		field := toks[:end]
		if end < len(toks) {
			toks = toks[end+1:]
		} else {
			toks = nil
		}

		if len(field) < 3 || field[0].Kind != Ident || !field[1].IsPunct(":") {
			return errors.InvalidInput(errors.PhaseInput,
				fmt.Sprintf("binding argument field must be key: value, got %q", fieldText(src, field)))
		}
		key := field[0].Text
		valueToks := field[2:]
		value := strings.TrimSpace(src[valueToks[0].Pos:valueToks[len(valueToks)-1].End])

		switch key {
		case "path", "world", "tree":
			if len(valueToks) != 1 || valueToks[0].Kind != Literal || !isString(valueToks[0].Text) {
				return errors.InvalidInput(errors.PhaseInput,
					fmt.Sprintf("binding argument %s must be a string literal, got %s", key, value))
			}
			s, err := unquote(value)
			if err != nil {
				return err
			}
			switch key {
			case "path":
				args.Path = s
			case "world":
				args.World = s
			case "tree":
				args.Tree = s
			}
		default:
			args.Options = append(args.Options, Option{Key: key, Value: value})
		}
	}
	return nil
}

func fieldText(src string, field []Token) string {
	if len(field) == 0 {
		return ""
	}
	return src[field[0].Pos:field[len(field)-1].End]
}
