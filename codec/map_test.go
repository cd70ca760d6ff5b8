package codec_test

import (
	"reflect"
	"testing"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/codec"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

func TestPair(t *testing.T) {
	c := codec.PairOf[string, string](codec.String, codec.String)
	tr := c.Encode(codec.Pair[string, string]{Key: "a", Value: "b"})
	if got := syntax.Render(tr); got != "(a b)" {
		t.Fatalf("render: got %s", got)
	}
	p, err := c.Decode(syntax.MustParse("a:b"))
	if err != nil || p.Key != "a" || p.Value != "b" {
		t.Fatalf("decode: got %+v err=%v", p, err)
	}
}

func TestPair_Arity(t *testing.T) {
	c := codec.PairOf[string, int](codec.String, codec.Int)
	for _, tc := range []struct {
		src  string
		code string
		msg  string
	}{
		{"()", termpose.CodeArity, "expected a pair, two elements, but the list here has 0"},
		{"(a)", termpose.CodeArity, "expected a pair, two elements, but the list here has 1"},
		{"a 1 2", termpose.CodeArity, "expected a pair, two elements, but the list here has 3"},
		{"lonely", termpose.CodeInvalidType, "expected a pair, but the term here is a leaf"},
	} {
		_, err := c.Decode(syntax.MustParse(tc.src))
		e, ok := termpose.AsError(err)
		if !ok || e.Code != tc.code || e.Message != tc.msg {
			t.Fatalf("%s: got %v", tc.src, err)
		}
	}
	// The value decoder's error surfaces unchanged.
	_, err := c.Decode(syntax.MustParse("a:x"))
	e, ok := termpose.AsError(err)
	if !ok || e.Message != "couldn't parse int" || e.Column != 3 {
		t.Fatalf("value failure: got %v", err)
	}
}

func TestTaggedMap_Object(t *testing.T) {
	c := codec.TaggedMap[string, string]("ob", codec.String, codec.String)
	tr, err := syntax.Parse("ob a:b c:d d:e e:f")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	m, err := c.Decode(tr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]string{"a": "b", "c": "d", "d": "e", "e": "f"}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("got %v", m)
	}

	tr, err = syntax.Parse("a:b c:d d:e e:f")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = c.Decode(tr)
	e, ok := termpose.AsError(err)
	if !ok || e.Code != termpose.CodeTagMismatch {
		t.Fatalf("expected tag mismatch without the tag, got %v", err)
	}
	if e.Message != `expected "ob" here, but instead there was a list term` {
		t.Fatalf("message: %s", e.Message)
	}
}

func TestMap_EncodeIsOrdered(t *testing.T) {
	c := codec.Map[string, int](codec.String, codec.Int)
	m := map[string]int{"zeta": 1, "alpha": 2, "mid": 3, "beta": 4}
	want := "((alpha 2) (beta 4) (mid 3) (zeta 1))"
	for i := 0; i < 20; i++ {
		if got := syntax.Render(c.Encode(m)); got != want {
			t.Fatalf("render #%d: got %s", i, got)
		}
	}
	back, err := c.Decode(c.Encode(m))
	if err != nil || !reflect.DeepEqual(back, m) {
		t.Fatalf("roundtrip: got %v err=%v", back, err)
	}
}

func TestMap_Duplicates(t *testing.T) {
	tr := syntax.MustParse("a:1 b:2 a:3")

	m, err := codec.Map[string, int](codec.String, codec.Int).Decode(tr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["a"] != 3 || m["b"] != 2 || len(m) != 2 {
		t.Fatalf("last value should win, got %v", m)
	}

	strict := codec.Map[string, int](codec.String, codec.Int).WithDuplicates(termpose.RejectDuplicates)
	_, err = strict.Decode(tr)
	e, ok := termpose.AsError(err)
	if !ok || e.Code != termpose.CodeDuplicateKey || e.Message != "duplicate key a" {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if e.Line != 1 || e.Column != 9 {
		t.Fatalf("expected 1:9, got %d:%d", e.Line, e.Column)
	}

	tagged := codec.TaggedMap[string, int]("ob", codec.String, codec.Int).WithDuplicates(termpose.RejectDuplicates)
	if _, err := tagged.Decode(syntax.MustParse("ob x:1 x:1")); err == nil {
		t.Fatalf("expected tagged map to reject duplicates")
	}
}

func TestMap_NonStringKeys(t *testing.T) {
	c := codec.Map[int, bool](codec.Int, codec.Bool)
	m, err := c.Decode(syntax.MustParse("1:yes 2:no"))
	if err != nil || !m[1] || m[2] {
		t.Fatalf("decode: got %v err=%v", m, err)
	}
	if _, err := c.Decode(term.NewLeaf("x")); err == nil {
		t.Fatalf("expected leaf to be rejected")
	}
	empty, err := c.Decode(term.NewList())
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty: got %v err=%v", empty, err)
	}
}
