package visitor

import (
	"strings"

	"github.com/wippyai/provider-gen/syntax"
)

// Serde derive paths added to collected structures.
const (
	SerializePath   = "serde::Serialize"
	DeserializePath = "serde::Deserialize"
)

// AugmentSerde adds serde::Serialize and serde::Deserialize to the first
// derive group of s. References already present in any derive group are not
// added again. A structure without a derive group is left alone. It reports
// the paths that were appended.
func AugmentSerde(s *syntax.Struct) []string {
	var group *syntax.Attribute
	for _, a := range s.Attrs {
		if !a.Inner && a.List && a.Path == "derive" {
			group = a
			break
		}
	}
	if group == nil {
		return nil
	}

	var added []string
	for _, want := range []string{SerializePath, DeserializePath} {
		if hasDerive(s.Attrs, want) {
			continue
		}
		group.Args = append(group.Args, want)
		added = append(added, want)
	}
	return added
}

func hasDerive(attrs []*syntax.Attribute, path string) bool {
	bare := path[strings.LastIndex(path, "::")+2:]
	for _, a := range attrs {
		if a.Inner || !a.List || a.Path != "derive" {
			continue
		}
		for _, arg := range a.Args {
			arg = strings.TrimPrefix(syntax.NormalizePath(arg), "::")
			if arg == path || arg == bare {
				return true
			}
		}
	}
	return false
}
