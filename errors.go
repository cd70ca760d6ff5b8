package termpose

import (
	"errors"
	"fmt"

	"github.com/reoring/termpose/term"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeArity         = "arity"
	CodeTagMismatch   = "tag_mismatch"
	CodeMissingKey    = "missing_key"
	CodeMissingValue  = "missing_value"
	CodeDuplicateKey  = "duplicate_key"
	CodeParseError    = "parse_error"
)

// Error is a decode failure positioned at the offending sub-term. Cause holds
// the lower-level error that triggered it, if any; wrapping layers chain
// through Unwrap.
type Error struct {
	Line    int
	Column  int
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *Error) Error() string {
	at := term.Pos{Line: e.Line, Column: e.Column}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", at, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", at, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Position returns where the error points in the source.
func (e *Error) Position() term.Pos { return term.Pos{Line: e.Line, Column: e.Column} }

// NewError returns an Error positioned at the start of at.
func NewError(at term.Term, code, msg string) *Error {
	p := position(at)
	return &Error{Line: p.Line, Column: p.Column, Code: code, Message: msg}
}

// Errorf is NewError with a formatted message.
func Errorf(at term.Term, code, format string, args ...any) *Error {
	return NewError(at, code, fmt.Sprintf(format, args...))
}

// WrapError returns an Error positioned at at that chains cause.
func WrapError(at term.Term, code string, cause error, msg string) *Error {
	e := NewError(at, code, msg)
	e.Cause = cause
	return e
}

func position(t term.Term) term.Pos {
	if t == nil {
		return term.Pos{}
	}
	return t.Position()
}

// AsError extracts the outermost *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CauseChain returns err followed by every error reachable through Unwrap.
func CauseChain(err error) []error {
	var out []error
	for err != nil {
		out = append(out, err)
		err = errors.Unwrap(err)
	}
	return out
}

// Stage tells which half of a text operation failed.
type Stage int

const (
	StageParse  Stage = iota // The notation itself is malformed (*syntax.Error).
	StageDecode              // The tree does not fit the requested type (*Error).
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageDecode:
		return "decode"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// DocumentError is returned by the text entry points so callers can tell
// syntax problems from shape problems. Err is a *syntax.Error for StageParse
// and usually an *Error for StageDecode.
type DocumentError struct {
	Stage Stage
	Err   error
}

func (e *DocumentError) Error() string { return e.Stage.String() + ": " + e.Err.Error() }

func (e *DocumentError) Unwrap() error { return e.Err }

// AsDocumentError extracts a *DocumentError from err using errors.As internally.
func AsDocumentError(err error) (*DocumentError, bool) {
	if err == nil {
		return nil, false
	}
	var de *DocumentError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
