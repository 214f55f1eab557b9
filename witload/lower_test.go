package witload

import (
	"strings"
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/provider-gen/syntax"
)

func strp(s string) *string { return &s }

func list(t wit.Type) *wit.TypeDef   { return &wit.TypeDef{Kind: &wit.List{Type: t}} }
func option(t wit.Type) *wit.TypeDef { return &wit.TypeDef{Kind: &wit.Option{Type: t}} }
func result(ok, err wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.Result{OK: ok, Err: err}}
}

func greetingRecord() *wit.TypeDef {
	return &wit.TypeDef{
		Name: strp("greeting"),
		Kind: &wit.Record{Fields: []wit.Field{
			{Name: "text", Type: wit.String{}},
			{Name: "loud-voice", Type: wit.Bool{}},
			{Name: "type", Type: list(wit.U8{})},
		}},
	}
}

func TestRustType(t *testing.T) {
	rec := greetingRecord()
	tests := []struct {
		name string
		typ  wit.Type
		mode Mode
		want string
	}{
		{"u32", wit.U32{}, Borrowed, "u32"},
		{"s64", wit.S64{}, Owned, "i64"},
		{"string borrowed", wit.String{}, Borrowed, "&str"},
		{"string owned", wit.String{}, Owned, "String"},
		{"bytes borrowed", list(wit.U8{}), Borrowed, "&[u8]"},
		{"bytes owned", list(wit.U8{}), Owned, "Vec<u8>"},
		{"list of strings borrowed", list(wit.String{}), Borrowed, "&[String]"},
		{"option string borrowed", option(wit.String{}), Borrowed, "Option<&str>"},
		{"option bytes borrowed", option(list(wit.U8{})), Borrowed, "Option<&[u8]>"},
		{"result", result(wit.String{}, wit.String{}), Borrowed, "Result<String, String>"},
		{"result unit", result(nil, wit.String{}), Owned, "Result<(), String>"},
		{"tuple", &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.String{}}}}, Borrowed, "(u8, String)"},
		{"record borrowed", rec, Borrowed, "&Greeting"},
		{"record owned", rec, Owned, "Greeting"},
		{"option record borrowed", option(rec), Borrowed, "Option<&Greeting>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RustType(tt.typ, tt.mode)
			if err != nil {
				t.Fatalf("RustType failed: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("RustType() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestTypeRef_OtherInterface(t *testing.T) {
	pkg := &wit.Package{Name: wit.Ident{Namespace: "wasmcloud", Package: "example"}}
	types := &wit.Interface{Name: strp("shared-types"), Package: pkg}
	greeter := &wit.Interface{Name: strp("greeter"), Package: pkg}
	rec := greetingRecord()
	rec.Owner = types

	sc := scope{path: []string{"wasmcloud", "example", "greeter"}, iface: greeter}
	got, err := rustType(sc, rec, Borrowed)
	if err != nil {
		t.Fatalf("rustType failed: %v", err)
	}
	if want := "&super::super::super::wasmcloud::example::shared_types::Greeting"; got.String() != want {
		t.Errorf("got %q, want %q", got, want)
	}

	sc.iface = types
	got, _ = rustType(sc, rec, Owned)
	if got.String() != "Greeting" {
		t.Errorf("own interface reference should be bare, got %q", got)
	}
}

func TestRustType_Alias(t *testing.T) {
	pkg := &wit.Package{Name: wit.Ident{Namespace: "wasmcloud", Package: "example"}}
	types := &wit.Interface{Name: strp("types"), Package: pkg}
	greeter := &wit.Interface{Name: strp("greeter"), Package: pkg}
	rec := greetingRecord()
	rec.Owner = types
	alias := &wit.TypeDef{Name: strp("greeting"), Kind: rec, Owner: greeter}

	sc := scope{path: []string{"wasmcloud", "example", "greeter"}, iface: greeter}
	got, err := rustType(sc, alias, Borrowed)
	if err != nil {
		t.Fatalf("rustType failed: %v", err)
	}
	if want := "&super::super::super::wasmcloud::example::types::Greeting"; got.String() != want {
		t.Errorf("got %q, want %q", got, want)
	}

	item, err := lowerTypeDef(sc, alias)
	if err != nil {
		t.Fatalf("lowerTypeDef failed: %v", err)
	}
	raw, ok := item.(*syntax.Raw)
	if !ok {
		t.Fatalf("expected raw alias, got %T", item)
	}
	if want := "pub type Greeting = super::super::super::wasmcloud::example::types::Greeting;"; raw.Code != want {
		t.Errorf("alias = %q, want %q", raw.Code, want)
	}
}

func TestLowerResults(t *testing.T) {
	tests := []struct {
		name    string
		results []wit.Param
		want    string
	}{
		{"none", nil, "fn f()"},
		{"single", []wit.Param{{Type: wit.U32{}}}, "fn f() -> u32"},
		{"named", []wit.Param{{Name: "a", Type: wit.String{}}, {Name: "b", Type: list(wit.U8{})}}, "fn f() -> (String, Vec<u8>)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := lowerFunction(scope{}, &wit.Function{Name: "f", Kind: &wit.Freestanding{}, Results: tt.results}, false)
			if err != nil {
				t.Fatal(err)
			}
			if got := syntax.Signature(fn); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLowerTypeDef(t *testing.T) {
	t.Run("record", func(t *testing.T) {
		item, err := lowerTypeDef(scope{}, greetingRecord())
		if err != nil {
			t.Fatal(err)
		}
		want := "#[derive(Clone)]\npub struct Greeting {\n    pub text: String,\n    pub loud_voice: bool,\n    pub type_: Vec<u8>,\n}\n"
		if got := syntax.PrintItem(item, 0); got != want {
			t.Errorf("got:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("enum", func(t *testing.T) {
		td := &wit.TypeDef{Name: strp("log-level"), Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "debug"}, {Name: "info"}}}}
		item, err := lowerTypeDef(scope{}, td)
		if err != nil {
			t.Fatal(err)
		}
		code := item.(*syntax.Raw).Code
		for _, s := range []string{"pub enum LogLevel {", "    Debug,", "    Info,"} {
			if !strings.Contains(code, s) {
				t.Errorf("enum missing %q:\n%s", s, code)
			}
		}
	})

	t.Run("flags", func(t *testing.T) {
		td := &wit.TypeDef{Name: strp("perms"), Kind: &wit.Flags{Flags: []wit.Flag{{Name: "read"}, {Name: "write"}}}}
		item, _ := lowerTypeDef(scope{}, td)
		code := item.(*syntax.Raw).Code
		if !strings.Contains(code, "pub struct Perms: u8 {") || !strings.Contains(code, "const WRITE = 1 << 1;") {
			t.Errorf("unexpected flags rendering:\n%s", code)
		}
	})

	t.Run("variant", func(t *testing.T) {
		td := &wit.TypeDef{Name: strp("error"), Kind: &wit.Variant{Cases: []wit.Case{{Name: "timeout"}, {Name: "other", Type: wit.String{}}}}}
		item, _ := lowerTypeDef(scope{}, td)
		code := item.(*syntax.Raw).Code
		if !strings.Contains(code, "    Timeout,\n") || !strings.Contains(code, "    Other(String),\n") {
			t.Errorf("unexpected variant rendering:\n%s", code)
		}
	})

	t.Run("alias", func(t *testing.T) {
		td := &wit.TypeDef{Name: strp("payload"), Kind: &wit.List{Type: wit.U8{}}}
		item, _ := lowerTypeDef(scope{}, td)
		if code := item.(*syntax.Raw).Code; code != "pub type Payload = Vec<u8>;" {
			t.Errorf("got %q", code)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		item, err := lowerTypeDef(scope{}, list(wit.U8{}))
		if err != nil || item != nil {
			t.Errorf("anonymous types should be skipped, got %v, %v", item, err)
		}
	})
}

func TestLowerFunction(t *testing.T) {
	f := &wit.Function{
		Name: "send-message",
		Kind: &wit.Freestanding{},
		Params: []wit.Param{
			{Name: "subject", Type: wit.String{}},
			{Name: "body", Type: option(list(wit.U8{}))},
			{Name: "msg", Type: greetingRecord()},
			{Name: "timeout-ms", Type: wit.U32{}},
		},
		Results: []wit.Param{{Type: result(nil, wit.String{})}},
	}

	imp, err := lowerFunction(scope{}, f, false)
	if err != nil {
		t.Fatal(err)
	}
	want := "fn send_message(subject: &str, body: Option<&[u8]>, msg: &Greeting, timeout_ms: u32) -> Result<(), String>"
	if got := syntax.Signature(imp); got != want {
		t.Errorf("import signature:\n got %s\nwant %s", got, want)
	}

	exp, err := lowerFunction(scope{}, f, true)
	if err != nil {
		t.Fatal(err)
	}
	want = "fn send_message(subject: String, body: Option<Vec<u8>>, msg: Greeting, timeout_ms: u32) -> Result<(), String>"
	if got := syntax.Signature(exp); got != want {
		t.Errorf("export signature:\n got %s\nwant %s", got, want)
	}
}

func TestLowerTypeString(t *testing.T) {
	got, err := LowerTypeString("string", Borrowed)
	if err != nil {
		t.Fatalf("LowerTypeString failed: %v", err)
	}
	if got.String() != "&str" {
		t.Errorf("got %q", got)
	}
	if _, err := LowerTypeString("invalid-type-xyz", Owned); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  wit.Type
		want string
	}{
		{wit.U32{}, "u32"},
		{list(wit.String{}), "list<string>"},
		{option(greetingRecord()), "option<greeting>"},
		{result(nil, wit.String{}), "result<_, string>"},
	}
	for _, tt := range tests {
		if got := TypeString(tt.typ); got != tt.want {
			t.Errorf("TypeString() = %q, want %q", got, tt.want)
		}
	}
}
