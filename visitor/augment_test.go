package visitor

import (
	"reflect"
	"testing"

	"github.com/wippyai/provider-gen/syntax"
)

func TestAugmentSerde(t *testing.T) {
	tests := []struct {
		name  string
		attrs []string
		want  []string // args of each derive group after augmentation
		added int
	}{
		{
			name:  "existing group",
			attrs: []string{"derive(Clone, Debug)"},
			want:  []string{"Clone, Debug, serde::Serialize, serde::Deserialize"},
			added: 2,
		},
		{
			name:  "no derive group",
			attrs: []string{"repr(C)"},
			want:  nil,
		},
		{
			name:  "already global path",
			attrs: []string{"derive(Clone, ::serde::Serialize)"},
			want:  []string{"Clone, ::serde::Serialize, serde::Deserialize"},
			added: 1,
		},
		{
			name:  "bare names in second group",
			attrs: []string{"derive(Clone)", "derive(Serialize, Deserialize)"},
			want:  []string{"Clone", "Serialize, Deserialize"},
		},
		{
			name:  "first group only",
			attrs: []string{"doc = \"x\"", "derive(Clone)", "derive(Debug)"},
			want:  []string{"Clone, serde::Serialize, serde::Deserialize", "Debug"},
			added: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &syntax.Struct{Name: "S"}
			for _, src := range tt.attrs {
				a, err := syntax.ParseAttribute(src)
				if err != nil {
					t.Fatal(err)
				}
				s.Attrs = append(s.Attrs, a)
			}
			if got := AugmentSerde(s); len(got) != tt.added {
				t.Errorf("added %v, want %d", got, tt.added)
			}
			if got := deriveGroups(s); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("derive groups = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAugmentSerde_Idempotent(t *testing.T) {
	s := derived("S", "Clone")
	AugmentSerde(s)
	if added := AugmentSerde(s); len(added) != 0 {
		t.Errorf("second augmentation added %v", added)
	}
	want := []string{"Clone, serde::Serialize, serde::Deserialize"}
	if got := deriveGroups(s); !reflect.DeepEqual(got, want) {
		t.Errorf("derive groups = %q", got)
	}
}

func deriveGroups(s *syntax.Struct) []string {
	var groups []string
	for _, a := range s.Attrs {
		if a.Path != "derive" {
			continue
		}
		line := ""
		for i, arg := range a.Args {
			if i > 0 {
				line += ", "
			}
			line += arg
		}
		groups = append(groups, line)
	}
	return groups
}
