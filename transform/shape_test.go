package transform

import (
	"testing"

	"github.com/wippyai/provider-gen/syntax"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		typ  string
		want Shape
	}{
		{"u32", ShapeOwned},
		{"String", ShapeOwned},
		{"Vec<u8>", ShapeOwned},
		{"Option<String>", ShapeOwned},
		{"wit_bindgen::rt::string::String", ShapeOwned},
		{"(u32, String)", ShapeOwned},
		{"&str", ShapeBorrowedScalar},
		{"&'a str", ShapeBorrowedScalar},
		{"Option<&str>", ShapeWrappedScalar},
		{"Vec<&str>", ShapeWrappedScalar},
		{"&[u8]", ShapeBorrowedAggregate},
		{"&[String]", ShapeBorrowedAggregate},
		{"&BrokerMessage", ShapeBorrowedAggregate},
		{"&types::BrokerMessage", ShapeBorrowedAggregate},
		{"&(u32, u32)", ShapeBorrowedAggregate},
		{"Option<&[u8]>", ShapeWrappedAggregate},
		{"Option<&BrokerMessage>", ShapeWrappedAggregate},
		{"std::option::Option<&[u8]>", ShapeWrappedAggregate},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := Classify(syntax.MustParseType(tt.typ))
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.typ, got, tt.want)
			}
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	for _, typ := range []string{
		"&mut str",
		"&mut [u8]",
		"&&str",
		"&[&str]",
		"&Option<&str>",
		"Option<Option<&str>>",
		"Result<&str, String>",
		"Option<&mut BrokerMessage>",
		"HashMap<&str, u32>",
		"Cow<'a, str>",
		"(u32, &str)",
		"[&str; 2]",
		"outer<&str>::Inner<u8>",
	} {
		t.Run(typ, func(t *testing.T) {
			if shape, err := Classify(syntax.MustParseType(typ)); err == nil {
				t.Errorf("Classify(%s) = %s, want error", typ, shape)
			}
		})
	}

	if _, err := Classify(&syntax.RawType{Text: "impl Fn(&str)"}); err == nil {
		t.Error("raw borrowed type should be rejected")
	}
	if shape, err := Classify(&syntax.RawType{Text: "dyn Any"}); err != nil || shape != ShapeOwned {
		t.Errorf("raw owned type should pass, got %s, %v", shape, err)
	}
}
