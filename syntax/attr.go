package syntax

import (
	"fmt"
	"strings"

	"github.com/wippyai/provider-gen/errors"
)

// Attribute represents #[path], #[path(args)] or #[path = value].
type Attribute struct {
	Inner bool
	Path  string
	List  bool     // parenthesized argument list present
	Args  []string // top-level comma separated arguments of a list
	Value string   // right-hand side of a name-value attribute
}

// FindAttribute returns the first outer attribute of attrs with the given path.
func FindAttribute(attrs []*Attribute, path string) *Attribute {
	for _, a := range attrs {
		if !a.Inner && a.Path == path {
			return a
		}
	}
	return nil
}

func (a *Attribute) String() string {
	var b strings.Builder
	b.WriteByte('#')
	if a.Inner {
		b.WriteByte('!')
	}
	b.WriteByte('[')
	b.WriteString(a.Path)
	switch {
	case a.List:
		b.WriteByte('(')
		b.WriteString(strings.Join(a.Args, ", "))
		b.WriteByte(')')
	case a.Value != "":
		b.WriteString(" = ")
		b.WriteString(a.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// ParseAttribute parses attribute text. The surrounding #[...] is optional:
// "derive(Debug, Clone)" and "#[derive(Debug, Clone)]" are equivalent.
func ParseAttribute(src string) (*Attribute, error) {
	s := strings.TrimSpace(src)
	a := &Attribute{}
	if strings.HasPrefix(s, "#") {
		s = strings.TrimSpace(s[1:])
		if strings.HasPrefix(s, "!") {
			a.Inner = true
			s = strings.TrimSpace(s[1:])
		}
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return nil, errors.ParseFailed(fmt.Sprintf("attribute %q", src), fmt.Errorf("missing brackets"))
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	end := 0
	for end < len(s) && (isPathRune(s[end]) || s[end] == ':') {
		end++
	}
	a.Path = NormalizePath(s[:end])
	if a.Path == "" {
		return nil, errors.ParseFailed(fmt.Sprintf("attribute %q", src), fmt.Errorf("missing attribute path"))
	}
	rest := strings.TrimSpace(s[end:])

	switch {
	case rest == "":
	case strings.HasPrefix(rest, "("):
		if !strings.HasSuffix(rest, ")") {
			return nil, errors.ParseFailed(fmt.Sprintf("attribute %q", src), fmt.Errorf("unbalanced parentheses"))
		}
		a.List = true
		a.Args = splitTopLevel(rest[1 : len(rest)-1])
	case strings.HasPrefix(rest, "="):
		a.Value = strings.TrimSpace(rest[1:])
	default:
		return nil, errors.ParseFailed(fmt.Sprintf("attribute %q", src), fmt.Errorf("unexpected %q", rest))
	}
	return a, nil
}

func isPathRune(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// NormalizePath removes token spacing from path text: "serde :: Serialize"
// becomes "serde::Serialize".
func NormalizePath(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, " ::", "::")
	return strings.ReplaceAll(s, ":: ", "::")
}

// splitTopLevel splits s on commas that are not nested in brackets or
// string literals. Empty arguments are dropped.
func splitTopLevel(s string) []string {
	args := []string{}
	depth := 0
	inStr := false
	escaped := false
	start := 0
	flush := func(end int) {
		arg := strings.TrimSpace(s[start:end])
		if !strings.Contains(arg, `"`) {
			arg = NormalizePath(arg)
		}
		if arg != "" {
			args = append(args, arg)
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return args
}
