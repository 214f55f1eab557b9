package visitor

import (
	"reflect"
	"testing"
)

func TestStructTable(t *testing.T) {
	tbl := NewStructTable()
	tbl.Add([]string{"wasmcloud", "messaging", "types"}, derived("Message"))
	tbl.Add([]string{"wasmcloud", "messaging", "consumer"}, derived("Message"))
	tbl.Add([]string{"wasmcloud", "messaging", "consumer"}, derived("Config"))
	tbl.Add([]string{"exports", "wasmcloud", "messaging", "handler"}, derived("Message"))

	if tbl.Len() != 4 {
		t.Fatalf("Len() = %d", tbl.Len())
	}

	t.Run("candidates in discovery order", func(t *testing.T) {
		var got []string
		for _, e := range tbl.Candidates("Message") {
			got = append(got, e.QualifiedPath())
		}
		want := []string{
			"wasmcloud::messaging::types::Message",
			"wasmcloud::messaging::consumer::Message",
			"exports::wasmcloud::messaging::handler::Message",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Candidates(Message) = %v", got)
		}
		if len(tbl.Candidates("Missing")) != 0 {
			t.Error("missing name should have no candidates")
		}
	})

	t.Run("resolve by scope", func(t *testing.T) {
		tests := []struct {
			scope []string
			want  string
		}{
			{[]string{"wasmcloud", "messaging", "types"}, "wasmcloud::messaging::types::Message"},
			{[]string{"wasmcloud", "messaging", "consumer"}, "wasmcloud::messaging::consumer::Message"},
			{[]string{"wasmcloud", "messaging", "producer"}, "wasmcloud::messaging::consumer::Message"},
			{[]string{"exports", "wasmcloud"}, "exports::wasmcloud::messaging::handler::Message"},
			{nil, "exports::wasmcloud::messaging::handler::Message"},
		}
		for _, tt := range tests {
			e, ok := tbl.Resolve("Message", tt.scope)
			if !ok || e.QualifiedPath() != tt.want {
				t.Errorf("Resolve(Message, %v) = %s, want %s", tt.scope, e.QualifiedPath(), tt.want)
			}
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		if got := tbl.Ambiguous(); !reflect.DeepEqual(got, []string{"Message"}) {
			t.Errorf("Ambiguous() = %v", got)
		}
	})
}
