// Package naming converts WIT and Rust identifiers between casing conventions.
package naming

import (
	"strings"
	"unicode"
)

// Words splits an identifier into words. Separators are any non-alphanumeric
// runes; a lower-to-upper transition starts a word, and so does the last
// upper-case rune of an acronym that is followed by a lower-case rune
// ("HTTPServer" is "HTTP", "Server").
func Words(s string) []string {
	var words []string
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, seg := range segments {
		runes := []rune(seg)
		start := 0
		for i := 1; i < len(runes); i++ {
			prev, cur := runes[i-1], runes[i]
			split := unicode.IsLower(prev) && unicode.IsUpper(cur)
			if !split && unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				split = true
			}
			if split {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

// UpperCamel converts s to upper camel case: "request_multi" -> "RequestMulti".
func UpperCamel(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		for i, r := range w {
			if i == 0 {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
		}
	}
	return b.String()
}

// Snake converts s to snake case: "request-multi" -> "request_multi".
func Snake(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true, "const": true,
	"continue": true, "crate": true, "dyn": true, "else": true, "enum": true,
	"extern": true, "false": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "match": true,
	"mod": true, "move": true, "mut": true, "pub": true, "ref": true,
	"return": true, "self": true, "Self": true, "static": true, "struct": true,
	"super": true, "trait": true, "true": true, "type": true, "unsafe": true,
	"use": true, "where": true, "while": true, "abstract": true, "become": true,
	"box": true, "do": true, "final": true, "macro": true, "override": true,
	"priv": true, "typeof": true, "unsized": true, "virtual": true, "yield": true,
	"try": true, "gen": true,
}

// IsKeyword reports whether s is a reserved Rust keyword.
func IsKeyword(s string) bool {
	return rustKeywords[s]
}

// EscapeKeyword appends an underscore to Rust keywords so they can be used
// as identifiers.
func EscapeKeyword(s string) string {
	if rustKeywords[s] {
		return s + "_"
	}
	return s
}
