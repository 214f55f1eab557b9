package visitor

import (
	"strings"

	"github.com/wippyai/provider-gen/syntax"
)

// StructEntry is one discovered structure.
type StructEntry struct {
	Name   string
	Module []string // enclosing module path
	Struct *syntax.Struct
}

// QualifiedPath returns the module path joined with the type name, e.g.
// "wasmcloud::messaging::types::BrokerMessage".
func (e StructEntry) QualifiedPath() string {
	return strings.Join(append(e.Module[:len(e.Module):len(e.Module)], e.Name), "::")
}

// StructTable records every structure with its module path. Entries with
// the same bare name are all kept; lookups decide between them.
type StructTable struct {
	entries []StructEntry
	byName  map[string][]int
}

// NewStructTable returns an empty table.
func NewStructTable() *StructTable {
	return &StructTable{byName: map[string][]int{}}
}

// Add records s declared in module.
func (t *StructTable) Add(module []string, s *syntax.Struct) {
	t.byName[s.Name] = append(t.byName[s.Name], len(t.entries))
	t.entries = append(t.entries, StructEntry{
		Name:   s.Name,
		Module: append([]string(nil), module...),
		Struct: s,
	})
}

// Len returns the number of recorded structures.
func (t *StructTable) Len() int { return len(t.entries) }

// Entries returns all structures in discovery order.
func (t *StructTable) Entries() []StructEntry { return t.entries }

// Candidates returns every structure named name in discovery order.
func (t *StructTable) Candidates(name string) []StructEntry {
	idx := t.byName[name]
	out := make([]StructEntry, len(idx))
	for i, j := range idx {
		out[i] = t.entries[j]
	}
	return out
}

// Resolve returns the structure named name as seen from module scope: the
// candidate sharing the longest module-path prefix with scope wins, later
// discoveries win ties.
func (t *StructTable) Resolve(name string, scope []string) (StructEntry, bool) {
	best, bestLen := -1, -1
	for _, i := range t.byName[name] {
		if n := commonPrefix(t.entries[i].Module, scope); n >= bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return StructEntry{}, false
	}
	return t.entries[best], true
}

// Ambiguous returns bare names declared in more than one module, in
// discovery order.
func (t *StructTable) Ambiguous() []string {
	var names []string
	seen := map[string]bool{}
	for _, e := range t.entries {
		if len(t.byName[e.Name]) > 1 && !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
