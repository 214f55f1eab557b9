package invocation

import (
	"fmt"
	"strings"
	"text/scanner"
)

// TokenKind classifies a token tree node.
type TokenKind int

const (
	Ident TokenKind = iota
	Punct
	Literal
	Group
)

func (k TokenKind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Punct:
		return "punct"
	case Literal:
		return "literal"
	case Group:
		return "group"
	}
	return "unknown"
}

// Token is one node of a token tree. A Group holds its delimited contents
// in Children and counts as a single token at its own level.
type Token struct {
	Kind     TokenKind
	Text     string // source text, including delimiters for groups
	Delim    rune   // opening delimiter of a group
	Children []Token
	Pos      int // byte offset of the first character
	End      int // byte offset just past the last character
}

var closing = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// Lex splits src into a token tree. Delimiters must balance.
func Lex(src string) ([]Token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats |
		scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanComments | scanner.SkipComments
	var lexErr error
	s.Error = func(sc *scanner.Scanner, msg string) {
		if lexErr == nil {
			lexErr = fmt.Errorf("%s at offset %d", msg, sc.Pos().Offset)
		}
	}

	type frame struct {
		open rune
		pos  int
		toks []Token
	}
	stack := []frame{{}}
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if lexErr != nil {
			return nil, lexErr
		}
		text := s.TokenText()
		pos := s.Position.Offset
		end := pos + len(text)
		top := &stack[len(stack)-1]

		switch tok {
		case '(', '[', '{':
			stack = append(stack, frame{open: tok, pos: pos})
		case ')', ']', '}':
			if len(stack) == 1 || closing[top.open] != tok {
				return nil, fmt.Errorf("unbalanced %q at offset %d", tok, pos)
			}
			g := Token{Kind: Group, Delim: top.open, Children: top.toks, Pos: top.pos, End: end, Text: src[top.pos:end]}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.toks = append(parent.toks, g)
		case scanner.Ident:
			top.toks = append(top.toks, Token{Kind: Ident, Text: text, Pos: pos, End: end})
		case scanner.Int, scanner.Float, scanner.String, scanner.RawString:
			top.toks = append(top.toks, Token{Kind: Literal, Text: text, Pos: pos, End: end})
		default:
			top.toks = append(top.toks, Token{Kind: Punct, Text: text, Pos: pos, End: end})
		}
	}
	if lexErr != nil {
		return nil, lexErr
	}
	if len(stack) != 1 {
		open := stack[len(stack)-1]
		return nil, fmt.Errorf("unclosed %q at offset %d", open.open, open.pos)
	}
	return stack[0].toks, nil
}

// IsPunct reports whether t is the punctuation character c.
func (t Token) IsPunct(c string) bool {
	return t.Kind == Punct && t.Text == c
}
