package emit

import (
	"strings"
	"testing"
)

func TestPrint_File(t *testing.T) {
	f := &File{Decls: []Decl{
		Use{Path: "::serde::{Serialize, Deserialize}"},
		BlankLine{},
		Comment{Text: "generated"},
		RawDecl{Code: "mod a {\n    fn f() {}\n}\n\n"},
		Struct{
			Attrs:  []string{"derive(Debug)"},
			Name:   "Greet",
			Fields: []Field{{Name: "name", Type: "String"}},
		},
		Struct{Name: "Empty"},
		Impl{Trait: "Provider", For: "GreeterProvider"},
	}}
	want := `use ::serde::{Serialize, Deserialize};

// generated
mod a {
    fn f() {}
}
#[derive(Debug)]
struct Greet {
    name: String,
}

struct Empty {}

impl Provider for GreeterProvider {}
`
	if got := Print(f); got != want {
		t.Errorf("Print mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestPrint_TraitAndImpl(t *testing.T) {
	decl := Method{Async: true, Name: "greet", Receiver: "&self", Params: []Param{{Name: "name", Type: "String"}}, Return: "String"}
	impl := decl
	impl.Body = []Stmt{Expr{Code: "self.greet(name).await"}}

	got := Print(&File{Decls: []Decl{
		Trait{Attrs: []string{"async_trait"}, Vis: "pub", Name: "Greeter", Methods: []Method{decl, decl}},
		Impl{Trait: "Greeter", For: "P", Methods: []Method{impl, impl}},
	}})
	want := `#[async_trait]
pub trait Greeter {
    async fn greet(&self, name: String) -> String;
    async fn greet(&self, name: String) -> String;
}

impl Greeter for P {
    async fn greet(&self, name: String) -> String {
        self.greet(name).await
    }

    async fn greet(&self, name: String) -> String {
        self.greet(name).await
    }
}
`
	if got != want {
		t.Errorf("Print mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestPrint_Match(t *testing.T) {
	m := Method{
		Name:     "dispatch",
		Generics: "'a",
		Receiver: "&'a self",
		Params:   []Param{{Name: "method", Type: "String"}},
		Return:   "Result<Vec<u8>, E>",
		Body: []Stmt{
			Match{
				Scrutinee: "method.as_str()",
				Arms: []Arm{
					{Pattern: `"Message.Greet"`, Body: []Stmt{
						Let{Name: "input", Type: "GreetInvocation", Value: "decode(&body)?"},
						Let{Name: "result", Value: "self.greet(input.name).await"},
						Expr{Code: "Ok(encode(&result)?)"},
					}},
					{Pattern: "_", Value: "Err(E::Malformed)"},
				},
			},
		},
	}
	got := Print(&File{Decls: []Decl{Impl{For: "P", Methods: []Method{m}}}})
	for _, want := range []string{
		"fn dispatch<'a>(&'a self, method: String) -> Result<Vec<u8>, E> {",
		"        match method.as_str() {",
		"            \"Message.Greet\" => {",
		"                let input: GreetInvocation = decode(&body)?;",
		"                let result = self.greet(input.name).await;",
		"                Ok(encode(&result)?)",
		"            }",
		"            _ => Err(E::Malformed),",
	} {
		if !strings.Contains(got, want+"\n") {
			t.Errorf("output missing line %q:\n%s", want, got)
		}
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		m    Method
		want string
	}{
		{Method{Name: "shutdown", Receiver: "&self", Async: true}, "async fn shutdown(&self)"},
		{Method{Name: "f", Params: []Param{{Name: "a", Type: "u32"}}, Return: "bool"}, "fn f(a: u32) -> bool"},
	}
	for _, tt := range tests {
		if got := Signature(tt.m); got != tt.want {
			t.Errorf("Signature() = %q, want %q", got, tt.want)
		}
	}
}
