package syntax

import (
	"fmt"
	"strings"
	"text/scanner"

	"github.com/wippyai/provider-gen/errors"
)

type token struct {
	tok  rune
	text string
	pos  int
}

// lex splits type text into identifiers, integers and single-rune punctuation.
func lex(src string) ([]token, error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	var lexErr error
	s.Error = func(_ *scanner.Scanner, msg string) {
		if lexErr == nil {
			lexErr = fmt.Errorf("%s", msg)
		}
	}
	var toks []token
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		toks = append(toks, token{tok: tok, text: s.TokenText(), pos: s.Position.Offset})
	}
	if lexErr != nil {
		return nil, lexErr
	}
	return toks, nil
}

type typeParser struct {
	toks []token
	pos  int
}

func (p *typeParser) peek() token {
	if p.pos >= len(p.toks) {
		return token{tok: scanner.EOF}
	}
	return p.toks[p.pos]
}

func (p *typeParser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *typeParser) accept(r rune) bool {
	if p.peek().tok == r {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(r rune) error {
	t := p.next()
	if t.tok != r {
		return fmt.Errorf("expected %q at offset %d, found %q", r, t.pos, t.text)
	}
	return nil
}

// pathSep consumes "::" when present.
func (p *typeParser) pathSep() bool {
	if p.pos+1 < len(p.toks) && p.toks[p.pos].tok == ':' && p.toks[p.pos+1].tok == ':' {
		p.pos += 2
		return true
	}
	return false
}

// ParseType parses Rust type text such as "Option<&[u8]>" or
// "wit_bindgen::rt::string::String".
func ParseType(src string) (Type, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, errors.ParseFailed(fmt.Sprintf("type %q", src), err)
	}
	p := &typeParser{toks: toks}
	t, err := p.parseType()
	if err != nil {
		return nil, errors.ParseFailed(fmt.Sprintf("type %q", src), err)
	}
	if p.peek().tok != scanner.EOF {
		return nil, errors.ParseFailed(fmt.Sprintf("type %q", src),
			fmt.Errorf("unexpected %q at offset %d", p.peek().text, p.peek().pos))
	}
	return t, nil
}

// ParseTypeOrRaw parses src, keeping the text as a RawType when it is not a
// recognized type expression.
func ParseTypeOrRaw(src string) Type {
	t, err := ParseType(src)
	if err != nil {
		return &RawType{Text: strings.TrimSpace(src)}
	}
	return t
}

// MustParseType parses src and panics on error. Intended for tests and
// fixed templates.
func MustParseType(src string) Type {
	t, err := ParseType(src)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *typeParser) parseType() (Type, error) {
	switch t := p.peek(); t.tok {
	case '&':
		p.next()
		ref := &RefType{}
		if p.accept('\'') {
			lt := p.next()
			if lt.tok != scanner.Ident {
				return nil, fmt.Errorf("expected lifetime name at offset %d", lt.pos)
			}
			ref.Lifetime = lt.text
		}
		if p.peek().tok == scanner.Ident && p.peek().text == "mut" {
			p.next()
			ref.Mut = true
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		ref.Elem = elem
		return ref, nil

	case '[':
		p.next()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if p.accept(';') {
			n := p.next()
			if n.tok != scanner.Int && n.tok != scanner.Ident {
				return nil, fmt.Errorf("expected array length at offset %d", n.pos)
			}
			if err := p.expect(']'); err != nil {
				return nil, err
			}
			return &ArrayType{Elem: elem, Len: n.text}, nil
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return &SliceType{Elem: elem}, nil

	case '(':
		p.next()
		tuple := &TupleType{}
		for !p.accept(')') {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
			if !p.accept(',') {
				if err := p.expect(')'); err != nil {
					return nil, err
				}
				break
			}
		}
		return tuple, nil

	case ':', scanner.Ident:
		return p.parsePath()

	case scanner.EOF:
		return nil, fmt.Errorf("unexpected end of type")

	default:
		return nil, fmt.Errorf("unexpected %q at offset %d", t.text, t.pos)
	}
}

func (p *typeParser) parsePath() (Type, error) {
	path := &PathType{}
	if p.peek().tok == ':' {
		if !p.pathSep() {
			return nil, fmt.Errorf("unexpected ':' at offset %d", p.peek().pos)
		}
		path.Global = true
	}
	for {
		id := p.next()
		if id.tok != scanner.Ident {
			return nil, fmt.Errorf("expected path segment at offset %d, found %q", id.pos, id.text)
		}
		seg := Segment{Name: id.text}
		// turbofish form seg::<T>
		if p.pos+2 < len(p.toks) && p.toks[p.pos].tok == ':' && p.toks[p.pos+1].tok == ':' && p.toks[p.pos+2].tok == '<' {
			p.pos += 2
		}
		if p.accept('<') {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			seg.Args = args
		}
		path.Segments = append(path.Segments, seg)
		if !p.pathSep() {
			return path, nil
		}
	}
}

func (p *typeParser) parseArgs() ([]Type, error) {
	var args []Type
	for !p.accept('>') {
		if p.accept('\'') {
			lt := p.next()
			if lt.tok != scanner.Ident {
				return nil, fmt.Errorf("expected lifetime name at offset %d", lt.pos)
			}
			args = append(args, &LifetimeType{Name: lt.text})
		} else {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if !p.accept(',') {
			if err := p.expect('>'); err != nil {
				return nil, err
			}
			break
		}
	}
	return args, nil
}
