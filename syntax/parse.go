// Package syntax reads and writes the termpose textual notation.
//
// A document is a sequence of lines. A line holding one term yields that term;
// a line holding several yields a list of them. Lines indented deeper than the
// line above become trailing items of that line's list:
//
//	products
//		hammer cost:5
//		twine cost:0
//
// reads as (products (hammer (cost 5)) (twine (cost 0))). Parentheses group
// lists, a:b is the pair (a b), "..." quotes
// text, and a term ending a line with a lone quote opens an indented block
// string.
package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/reoring/termpose/term"
)

// Error is a positioned syntax error.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ParseOpt bounds the work Parse is willing to do on untrusted input.
type ParseOpt struct {
	// MaxDepth limits nesting (indentation levels plus parentheses and
	// pairs). Zero means unlimited.
	MaxDepth int
	// MaxBytes limits the input size. Zero means unlimited.
	MaxBytes int64
}

// Parse reads a termpose document. The last opts value wins.
func Parse(text string, opts ...ParseOpt) (term.Term, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 && int64(len(text)) > opt.MaxBytes {
		return nil, &Error{Line: 1, Column: 1, Message: fmt.Sprintf("input exceeds %d bytes", opt.MaxBytes)}
	}
	p := &parser{src: text, line: 1, col: 1, opt: opt}
	return p.document()
}

// MustParse is Parse for literals known to be well formed.
func MustParse(text string) term.Term {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src  string
	i    int
	line int
	col  int
	opt  ParseOpt

	indent string // indentation of the line being parsed
	level  int    // indentation depth of that line, root lines are 1
	nest   int    // parentheses and pairs open inside the line
	parens int
	ended  bool // a block string consumed the rest of the line
}

type lineNode struct {
	indent   string
	at       term.Pos
	terms    []term.Term
	children []*lineNode
}

func (n *lineNode) toTerm() term.Term {
	if len(n.children) == 0 {
		if len(n.terms) == 1 {
			return n.terms[0]
		}
		return term.List{Items: n.terms, At: n.at}
	}
	items := make([]term.Term, 0, len(n.terms)+len(n.children))
	items = append(items, n.terms...)
	for _, c := range n.children {
		items = append(items, c.toTerm())
	}
	return term.List{Items: items, At: n.at}
}

func (p *parser) document() (term.Term, error) {
	root := &lineNode{}
	stack := []*lineNode{root}
	for !p.eof() {
		indent, blank := p.lineStart()
		if blank {
			continue
		}
		at := p.pos()
		if strings.ContainsRune(indent, ' ') && strings.ContainsRune(indent, '\t') {
			return nil, p.errorf(at, "indentation mixes tabs and spaces")
		}
		for len(stack) > 1 && !isStrictPrefix(stack[len(stack)-1].indent, indent) {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if n := len(parent.children); n > 0 && parent.children[n-1].indent != indent {
			return nil, p.errorf(at, "inconsistent indentation")
		}
		p.indent = indent
		p.level = len(stack)
		p.nest = 0
		if p.opt.MaxDepth > 0 && p.level > p.opt.MaxDepth {
			return nil, p.errorf(at, "nesting deeper than %d", p.opt.MaxDepth)
		}
		terms, err := p.lineTerms()
		if err != nil {
			return nil, err
		}
		node := &lineNode{indent: indent, at: at, terms: terms}
		parent.children = append(parent.children, node)
		stack = append(stack, node)
	}
	switch len(root.children) {
	case 0:
		return term.List{At: term.Pos{Line: 1, Column: 1}}, nil
	case 1:
		return root.children[0].toTerm(), nil
	default:
		items := make([]term.Term, len(root.children))
		for i, c := range root.children {
			items[i] = c.toTerm()
		}
		return term.List{Items: items, At: term.Pos{Line: 1, Column: 1}}, nil
	}
}

// lineStart consumes the indentation of the next line. Blank lines are
// consumed entirely.
func (p *parser) lineStart() (string, bool) {
	start := p.i
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
	indent := p.src[start:p.i]
	if p.eof() {
		return indent, true
	}
	if isNewline(p.peek()) {
		p.newline()
		return indent, true
	}
	return indent, false
}

func (p *parser) lineTerms() ([]term.Term, error) {
	var out []term.Term
	p.ended = false
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		if isNewline(p.peek()) {
			p.newline()
			return out, nil
		}
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if p.ended {
			return out, nil
		}
	}
}

func (p *parser) term() (term.Term, error) {
	at := p.pos()
	var t term.Term
	switch p.peek() {
	case '(':
		l, err := p.list()
		if err != nil {
			return nil, err
		}
		t = l
	case ')':
		return nil, p.errorf(at, "unexpected ')'")
	case ':':
		return nil, p.errorf(at, "unexpected ':' with nothing before it")
	case '"':
		s, err := p.quoted()
		if err != nil {
			return nil, err
		}
		t = s
	default:
		t = p.atom()
		if !p.eof() && p.peek() == '"' {
			s, err := p.quoted()
			if err != nil {
				return nil, err
			}
			t = term.List{Items: []term.Term{t, s}, At: at}
		}
	}
	if p.ended || p.eof() || p.peek() != ':' {
		return t, nil
	}
	p.advance()
	if p.eof() || isSpace(p.peek()) || isNewline(p.peek()) || p.peek() == ')' {
		return nil, p.errorf(p.pos(), "expected a term after ':'")
	}
	if err := p.enter(at); err != nil {
		return nil, err
	}
	v, err := p.term()
	if err != nil {
		return nil, err
	}
	p.leave()
	return term.List{Items: []term.Term{t, v}, At: at}, nil
}

func (p *parser) list() (term.Term, error) {
	at := p.pos()
	p.advance()
	if err := p.enter(at); err != nil {
		return nil, err
	}
	p.parens++
	var items []term.Term
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf(at, "unclosed '('")
		}
		c := p.peek()
		if isNewline(c) {
			p.newline()
			continue
		}
		if c == ')' {
			p.advance()
			break
		}
		it, err := p.term()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	p.parens--
	p.leave()
	return term.List{Items: items, At: at}, nil
}

func (p *parser) atom() term.Term {
	at := p.pos()
	start := p.i
	for !p.eof() {
		c := p.peek()
		if isSpace(c) || isNewline(c) || c == '(' || c == ')' || c == ':' || c == '"' {
			break
		}
		p.advance()
	}
	return term.Leaf{Text: p.src[start:p.i], At: at}
}

func (p *parser) quoted() (term.Term, error) {
	at := p.pos()
	p.advance()
	if p.parens == 0 && p.restOfLineBlank() {
		return p.block(at), nil
	}
	var b strings.Builder
	for {
		if p.eof() || isNewline(p.peek()) {
			return nil, p.errorf(at, "unterminated string")
		}
		start := p.i
		c := p.advance()
		switch c {
		case '"':
			return term.Leaf{Text: b.String(), At: at}, nil
		case '\\':
			if p.eof() || isNewline(p.peek()) {
				return nil, p.errorf(at, "unterminated string")
			}
			escAt := p.pos()
			e := p.advance()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '"':
				b.WriteRune(e)
			default:
				return nil, p.errorf(escAt, "unknown escape \\%c", e)
			}
		default:
			b.WriteString(p.src[start:p.i])
		}
	}
}

// block reads the lines indented deeper than the current line as one string,
// stripping the indentation of the first of them.
func (p *parser) block(at term.Pos) term.Term {
	p.ended = true
	p.skipSpace()
	if !p.eof() {
		p.newline()
	}
	var lines []string
	blockIndent := ""
	haveIndent := false
	for !p.eof() {
		end := strings.IndexByte(p.src[p.i:], '\n')
		if end < 0 {
			end = len(p.src)
		} else {
			end += p.i
		}
		raw := strings.TrimSuffix(p.src[p.i:end], "\r")
		content := strings.TrimLeft(raw, " \t")
		ind := raw[:len(raw)-len(content)]
		switch {
		case content == "":
			lines = append(lines, "")
		case !isStrictPrefix(p.indent, ind):
			return blockLeaf(lines, at)
		default:
			if !haveIndent {
				blockIndent, haveIndent = ind, true
			}
			if strings.HasPrefix(raw, blockIndent) {
				lines = append(lines, raw[len(blockIndent):])
			} else {
				lines = append(lines, content)
			}
		}
		p.i = end
		if p.eof() {
			break
		}
		p.newline()
	}
	return blockLeaf(lines, at)
}

func blockLeaf(lines []string, at term.Pos) term.Leaf {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return term.Leaf{Text: strings.Join(lines, "\n"), At: at}
}

func (p *parser) enter(at term.Pos) error {
	p.nest++
	if p.opt.MaxDepth > 0 && p.level+p.nest > p.opt.MaxDepth {
		return p.errorf(at, "nesting deeper than %d", p.opt.MaxDepth)
	}
	return nil
}

func (p *parser) leave() { p.nest-- }

func (p *parser) restOfLineBlank() bool {
	for j := p.i; j < len(p.src); j++ {
		switch p.src[j] {
		case ' ', '\t':
		case '\n', '\r':
			return true
		default:
			return false
		}
	}
	return true
}

func (p *parser) eof() bool { return p.i >= len(p.src) }

func (p *parser) peek() rune {
	r, _ := utf8.DecodeRuneInString(p.src[p.i:])
	return r
}

func (p *parser) advance() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.i:])
	p.i += size
	p.col++
	return r
}

func (p *parser) newline() {
	if p.src[p.i] == '\r' {
		p.i++
		if p.i < len(p.src) && p.src[p.i] == '\n' {
			p.i++
		}
	} else {
		p.i++
	}
	p.line++
	p.col = 1
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance()
	}
}

func (p *parser) pos() term.Pos { return term.Pos{Line: p.line, Column: p.col} }

func (p *parser) errorf(at term.Pos, format string, args ...any) *Error {
	return &Error{Line: at.Line, Column: at.Column, Message: fmt.Sprintf(format, args...)}
}

func isSpace(r rune) bool   { return r == ' ' || r == '\t' }
func isNewline(r rune) bool { return r == '\n' || r == '\r' }

func isStrictPrefix(prefix, s string) bool {
	return len(s) > len(prefix) && strings.HasPrefix(s, prefix)
}
