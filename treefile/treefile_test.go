package treefile

import (
	"errors"
	"strings"
	"testing"

	gerrors "github.com/wippyai/provider-gen/errors"
	"github.com/wippyai/provider-gen/syntax"
)

func TestLoad(t *testing.T) {
	f, err := Load("testdata/greeter.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(f.Items) != 2 {
		t.Fatalf("expected 2 top-level items, got %d", len(f.Items))
	}

	var fns []string
	var structs []*syntax.Struct
	syntax.Inspect(f, func(parents []string, item syntax.Item) bool {
		switch it := item.(type) {
		case *syntax.Function:
			fns = append(fns, strings.Join(parents, "::")+"::"+it.Name+" "+syntax.Signature(it))
		case *syntax.Struct:
			structs = append(structs, it)
		}
		return true
	})

	want := []string{
		"wasmcloud::example::greeter::greet fn greet(name: &str) -> Result<String, String>",
		"exports::wasmcloud::example::greeter::greet fn greet(name: String) -> Result<String, String>",
	}
	if strings.Join(fns, "\n") != strings.Join(want, "\n") {
		t.Errorf("functions:\n%s\nwant:\n%s", strings.Join(fns, "\n"), strings.Join(want, "\n"))
	}

	if len(structs) != 1 {
		t.Fatalf("expected one struct, got %d", len(structs))
	}
	st := structs[0]
	if st.Vis != "pub" || len(st.Fields) != 2 || st.Fields[1].Type.String() != "bool" {
		t.Errorf("unexpected struct %+v", st)
	}
	if d := syntax.FindAttribute(st.Attrs, "derive"); d == nil || len(d.Args) != 2 {
		t.Errorf("derive attribute not converted: %+v", st.Attrs)
	}
}

func TestParse_JSON(t *testing.T) {
	f, err := Parse([]byte(`{"items":[{"mod":"a","vis":"","items":[{"raw":"const X: u8 = 1;"}]}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	m := f.Items[0].(*syntax.Module)
	if m.Vis != "" || m.Name != "a" {
		t.Errorf("unexpected module %+v", m)
	}
	if r, ok := m.Items[0].(*syntax.Raw); !ok || r.Code != "const X: u8 = 1;" {
		t.Errorf("unexpected raw item %+v", m.Items[0])
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(f.Items) != 0 {
		t.Errorf("expected empty tree")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind gerrors.Kind
	}{
		{"unknown field", "items:\n  - mod: a\n    colour: red\n", gerrors.KindInvalidData},
		{"two kinds", "items:\n  - mod: a\n    fn: b\n", gerrors.KindInvalidData},
		{"no kind", "items:\n  - vis: pub\n", gerrors.KindInvalidData},
		{"param without type", "items:\n  - fn: f\n    params:\n      - name: x\n", gerrors.KindInvalidData},
		{"bad attribute", "items:\n  - struct: S\n    attrs: ['derive(Debug']\n", gerrors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			var ge *gerrors.Error
			if !errors.As(err, &ge) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if ge.Phase != gerrors.PhaseLoad || ge.Kind != tt.kind {
				t.Errorf("got %s/%s, want load/%s: %v", ge.Phase, ge.Kind, tt.kind, err)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.yaml"); err == nil {
		t.Fatal("expected error")
	}
}
