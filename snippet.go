package termpose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/termpose/i18n"
	"github.com/reoring/termpose/syntax"
)

// Snippet renders err against the source it came from: a heading with the
// position and message, one line of context on each side, and a caret under
// the offending column. Errors without a position render as their message.
func Snippet(err error, src string) string {
	if err == nil {
		return ""
	}
	var se *syntax.Error
	if errors.As(err, &se) {
		return caretSnippet(src, "SYNTAX ERROR", i18n.T("syntax_error", nil), se.Line, se.Column, se.Message)
	}
	if e, ok := AsError(err); ok && e.Line > 0 {
		msg := e.Message
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		return caretSnippet(src, "DECODE ERROR", i18n.T(e.Code, nil), e.Line, e.Column, msg)
	}
	return err.Error()
}

func caretSnippet(src, header, kind string, line, col int, msg string) string {
	lines := splitLines(src)
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if kind != "" {
		fmt.Fprintf(&b, "%s (%s) at %d:%d: %s\n\n", header, kind, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", caretPad(lineTxt, col))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

// caretPad keeps tabs so the caret lines up with tab-indented source.
// splitLines breaks src at "\r\n", "\n" or a lone "\r", the same line
// endings the parser counts.
func splitLines(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			lines = append(lines, src[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, src[start:i])
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, src[start:])
}

func caretPad(lineTxt string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range lineTxt {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		i++
	}
	for ; i < col; i++ {
		b.WriteByte(' ')
	}
	return b.String()
}
