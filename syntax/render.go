package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/reoring/termpose/term"
)

// Render writes t on a single line: lists in parentheses, leaves bare unless
// they need quoting.
func Render(t term.Term) string {
	var b strings.Builder
	render(&b, t)
	return b.String()
}

func render(b *strings.Builder, t term.Term) {
	switch v := t.(type) {
	case term.Leaf:
		b.WriteString(Quote(v.Text))
	case term.List:
		b.WriteByte('(')
		for i, it := range v.Items {
			if i > 0 {
				b.WriteByte(' ')
			}
			render(b, it)
		}
		b.WriteByte(')')
	}
}

// Quote returns s as it must appear in a document for Parse to read it back as
// a single leaf.
func Quote(s string) string {
	if !needsQuote(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			// Invalid UTF-8 is copied byte for byte.
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\n\r():\"\\")
}

// PrettyOpt controls Pretty's layout.
type PrettyOpt struct {
	Indent string // defaults to a tab
	Width  int    // lists longer than this are broken over lines; defaults to 80
}

// Pretty writes t over several lines, using indentation for lists that do not
// fit on one. The output always ends with a newline.
func Pretty(t term.Term, opts ...PrettyOpt) string {
	opt := PrettyOpt{Indent: "\t", Width: 80}
	if len(opts) > 0 {
		o := opts[len(opts)-1]
		if o.Indent != "" {
			opt.Indent = o.Indent
		}
		if o.Width > 0 {
			opt.Width = o.Width
		}
	}
	var b strings.Builder
	pretty(&b, t, "", opt)
	return b.String()
}

func pretty(b *strings.Builder, t term.Term, prefix string, opt PrettyOpt) {
	b.WriteString(prefix)
	inline := Render(t)
	l, ok := t.(term.List)
	if !ok || len(l.Items) < 2 || len(prefix)+len(inline) <= opt.Width {
		b.WriteString(inline)
		b.WriteByte('\n')
		return
	}
	// the head stays on the line, every other item becomes an indented line
	b.WriteString(Render(l.Items[0]))
	b.WriteByte('\n')
	for _, it := range l.Items[1:] {
		pretty(b, it, prefix+opt.Indent, opt)
	}
}
