// Package treefile loads binding trees from YAML (or JSON) documents.
//
// A document lists items; each item is exactly one of mod, fn, struct or raw:
//
//	items:
//	  - mod: wasmcloud
//	    items:
//	      - mod: example
//	        items:
//	          - mod: greeter
//	            items:
//	              - fn: greet
//	                params:
//	                  - { name: name, type: "&str" }
//	                returns: Result<String, String>
//
// Visibility defaults to pub.
package treefile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/syntax"
)

// Document is the top-level tree document.
type Document struct {
	Items []Item `yaml:"items"`
}

// Item is one declaration. Exactly one of Mod, Fn, Struct, Raw is set.
type Item struct {
	Mod    string `yaml:"mod,omitempty"`
	Fn     string `yaml:"fn,omitempty"`
	Struct string `yaml:"struct,omitempty"`
	Raw    string `yaml:"raw,omitempty"`

	Vis      *string  `yaml:"vis,omitempty"`
	Attrs    []string `yaml:"attrs,omitempty"`
	External bool     `yaml:"external,omitempty"`
	Items    []Item   `yaml:"items,omitempty"`
	Params   []Param  `yaml:"params,omitempty"`
	Returns  string   `yaml:"returns,omitempty"`
	Body     string   `yaml:"body,omitempty"`
	Fields   []Field  `yaml:"fields,omitempty"`
}

// Param is a function parameter.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Field is a struct field.
type Field struct {
	Name string  `yaml:"name"`
	Type string  `yaml:"type"`
	Vis  *string `yaml:"vis,omitempty"`
}

// Load reads and converts the document at path.
func Load(path string) (*syntax.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("read tree document %s", path), err)
	}
	return Parse(data)
}

// Parse decodes a document and converts it to a binding tree.
func Parse(data []byte) (*syntax.File, error) {
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc.File()
}

// Decode reads a document, rejecting unknown fields.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return &doc, nil
		}
		return nil, errors.Load("decode tree document", err)
	}
	return &doc, nil
}

// File converts the document to a binding tree.
func (d *Document) File() (*syntax.File, error) {
	items, err := convertItems(nil, d.Items)
	if err != nil {
		return nil, err
	}
	return &syntax.File{Items: items}, nil
}

func convertItems(path []string, specs []Item) ([]syntax.Item, error) {
	items := make([]syntax.Item, 0, len(specs))
	for i := range specs {
		item, err := convertItem(path, &specs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func visibility(v *string) string {
	if v == nil {
		return "pub"
	}
	return *v
}

func (it *Item) kind() (string, error) {
	var kinds []string
	for k, v := range map[string]string{"mod": it.Mod, "fn": it.Fn, "struct": it.Struct, "raw": it.Raw} {
		if v != "" {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("item must set exactly one of mod, fn, struct, raw (found %d)", len(kinds))
	}
	return kinds[0], nil
}

func convertItem(path []string, it *Item) (syntax.Item, error) {
	kind, err := it.kind()
	if err != nil {
		return nil, errors.InvalidData(errors.PhaseLoad, path, err.Error())
	}
	attrs, err := convertAttrs(path, it.Attrs)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "mod":
		sub := append(path[:len(path):len(path)], it.Mod)
		children, err := convertItems(sub, it.Items)
		if err != nil {
			return nil, err
		}
		return &syntax.Module{
			Attrs:    attrs,
			Vis:      visibility(it.Vis),
			Name:     it.Mod,
			Items:    children,
			External: it.External,
		}, nil

	case "fn":
		fn := &syntax.Function{
			Attrs: attrs,
			Vis:   visibility(it.Vis),
			Name:  it.Fn,
			Body:  it.Body,
		}
		for _, p := range it.Params {
			if p.Name == "" || p.Type == "" {
				return nil, errors.InvalidData(errors.PhaseLoad, append(path, it.Fn),
					"parameter needs name and type")
			}
			fn.Params = append(fn.Params, syntax.Param{Name: p.Name, Type: syntax.ParseTypeOrRaw(p.Type)})
		}
		if it.Returns != "" {
			fn.Output = syntax.ParseTypeOrRaw(it.Returns)
		}
		return fn, nil

	case "struct":
		st := &syntax.Struct{Attrs: attrs, Vis: visibility(it.Vis), Name: it.Struct}
		for _, f := range it.Fields {
			if f.Name == "" || f.Type == "" {
				return nil, errors.InvalidData(errors.PhaseLoad, append(path, it.Struct),
					"field needs name and type")
			}
			st.Fields = append(st.Fields, syntax.Field{
				Vis:  visibility(f.Vis),
				Name: f.Name,
				Type: syntax.ParseTypeOrRaw(f.Type),
			})
		}
		return st, nil

	default:
		return &syntax.Raw{Code: it.Raw}, nil
	}
}

func convertAttrs(path []string, src []string) ([]*syntax.Attribute, error) {
	var attrs []*syntax.Attribute
	for _, s := range src {
		a, err := syntax.ParseAttribute(s)
		if err != nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Path(path...).
				Cause(err).
				Detail("attribute %q", s).
				Build()
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}
