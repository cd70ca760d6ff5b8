package termpose_test

import (
	"testing"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/codec"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

func TestFieldCursor_InOrderStaysOnMatch(t *testing.T) {
	tr := syntax.MustParse("a:1 b:2 c:3 d:4")
	c := termpose.NewFieldCursor(tr)
	for i, key := range []string{"a", "b", "c", "d"} {
		v, err := c.Seek(key)
		if err != nil {
			t.Fatalf("seek %s: %v", key, err)
		}
		if v.InitialString() != string(rune('1'+i)) {
			t.Fatalf("seek %s: got %s", key, syntax.Render(v))
		}
		if c.Eye() != i {
			t.Fatalf("seek %s: eye=%d, want %d", key, c.Eye(), i)
		}
	}
}

func TestFieldCursor_OutOfOrderWrapsAround(t *testing.T) {
	tr := syntax.MustParse("a:1 b:2 c:3 d:4")
	c := termpose.NewFieldCursor(tr)
	if _, err := c.Seek("c"); err != nil || c.Eye() != 2 {
		t.Fatalf("seek c: eye=%d err=%v", c.Eye(), err)
	}
	v, err := c.Seek("a")
	if err != nil || v.InitialString() != "1" || c.Eye() != 0 {
		t.Fatalf("seek a after c: eye=%d err=%v", c.Eye(), err)
	}
	// Repeating a lookup finds the same child without moving.
	if _, err := c.Seek("a"); err != nil || c.Eye() != 0 {
		t.Fatalf("repeat seek: eye=%d err=%v", c.Eye(), err)
	}
}

func TestFieldCursor_MissingKey(t *testing.T) {
	tr := syntax.MustParse("(a 1) (b 2) (c 3)")
	c := termpose.NewFieldCursor(tr)
	if _, err := c.Seek("b"); err != nil {
		t.Fatalf("seek b: %v", err)
	}
	_, err := c.Seek("zz")
	e, ok := termpose.AsError(err)
	if !ok || e.Code != termpose.CodeMissingKey || e.Message != `could not find key "zz"` {
		t.Fatalf("expected missing key, got %v", err)
	}
	if e.Line != 1 || e.Column != 1 {
		t.Fatalf("expected the error at the parent 1:1, got %d:%d", e.Line, e.Column)
	}
	// A full pass brings the eye back where it started.
	if c.Eye() != 1 {
		t.Fatalf("eye=%d after failed seek, want 1", c.Eye())
	}
}

func TestFieldCursor_MissingValue(t *testing.T) {
	tr := syntax.MustParse("product (name) (cost 5)")
	rest, err := termpose.ExpectTag(tr, "product")
	if err != nil {
		t.Fatalf("expect tag: %v", err)
	}
	c := termpose.NewFieldCursorOver(tr, rest)
	_, err = c.Seek("name")
	e, ok := termpose.AsError(err)
	if !ok || e.Code != termpose.CodeMissingValue {
		t.Fatalf("expected missing value, got %v", err)
	}
	if e.Message != `expected a value after "name", but the term has no tail` || e.Column != 9 {
		t.Fatalf("unexpected error %+v", e)
	}
	// A bare leaf matches by its text and has no value either.
	c = termpose.NewFieldCursor(syntax.MustParse("flag other:1"))
	if _, err := c.Seek("flag"); err == nil {
		t.Fatalf("expected bare leaf to have no value")
	}
}

func TestFieldCursor_Leaf(t *testing.T) {
	c := termpose.NewFieldCursor(term.NewLeaf("alone"))
	if _, err := c.Seek("alone"); err == nil {
		t.Fatalf("expected a leaf to have no fields")
	}
}

func TestField_Decodes(t *testing.T) {
	c := termpose.NewFieldCursor(syntax.MustParse("port:80 host:example.org"))
	host, err := termpose.Field[string](c, "host", codec.String)
	if err != nil || host != "example.org" {
		t.Fatalf("host: got %q err=%v", host, err)
	}
	port, err := termpose.Field[int](c, "port", codec.Int)
	if err != nil || port != 80 {
		t.Fatalf("port: got %d err=%v", port, err)
	}
	if _, err := termpose.Field[bool](c, "host", codec.Bool); err == nil {
		t.Fatalf("expected decode failure to surface")
	}
}

func TestExpectTag_Leaf(t *testing.T) {
	_, err := termpose.ExpectTag(term.NewLeaf("ob"), "ob")
	e, ok := termpose.AsError(err)
	if !ok || e.Code != termpose.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	rest, err := termpose.ExpectTag(syntax.MustParse("ob x y"), "ob")
	if err != nil || len(rest) != 2 || rest[0].InitialString() != "x" {
		t.Fatalf("got %v err=%v", rest, err)
	}
}

func TestPrependTag(t *testing.T) {
	l := termpose.PrependTag("ob", []term.Term{term.NewLeaf("x")})
	if got := syntax.Render(l); got != "(ob x)" {
		t.Fatalf("got %s", got)
	}
	if got := syntax.Render(termpose.PrependTag("ob", nil)); got != "(ob)" {
		t.Fatalf("got %s", got)
	}
}
