package termpose_test

import (
	"reflect"
	"testing"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/codec"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

// product declares its own canonical form: (product (name ..) (cost ..) (in-stock ..)).
type product struct {
	Name    string
	Cost    float64
	InStock bool
}

func (p product) EncodeTerm() term.Term {
	return termpose.PrependTag("product", []term.Term{
		term.NewList(term.NewLeaf("name"), codec.String.Encode(p.Name)),
		term.NewList(term.NewLeaf("cost"), codec.Float64.Encode(p.Cost)),
		term.NewList(term.NewLeaf("in-stock"), codec.Bool.Encode(p.InStock)),
	})
}

func (p *product) DecodeTerm(t term.Term) error {
	rest, err := termpose.ExpectTag(t, "product")
	if err != nil {
		return err
	}
	c := termpose.NewFieldCursorOver(t, rest)
	if p.Name, err = termpose.Field[string](c, "name", codec.String); err != nil {
		return err
	}
	if p.Cost, err = termpose.Field[float64](c, "cost", codec.Float64); err != nil {
		return err
	}
	if p.InStock, err = termpose.Field[bool](c, "in-stock", codec.Bool); err != nil {
		return err
	}
	return nil
}

func TestDefault_RoundTrip(t *testing.T) {
	in := product{Name: "hammer", Cost: 5, InStock: true}
	text := termpose.Serialize[product, *product](in)
	if text != "(product (name hammer) (cost 5) (in-stock true))" {
		t.Fatalf("serialize: got %s", text)
	}
	back, err := termpose.Deserialize[product, *product](text)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if back != in {
		t.Fatalf("roundtrip: got %+v", back)
	}
}

func TestDefault_IndentedAndReordered(t *testing.T) {
	src := "product\n\tin-stock no\n\tcost 0.25\n\tname \"twine spool\"\n"
	p, err := termpose.Deserialize[product, *product](src)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	want := product{Name: "twine spool", Cost: 0.25}
	if p != want {
		t.Fatalf("got %+v", p)
	}
}

func TestDefault_InsideCombinators(t *testing.T) {
	list := codec.TaggedSequence[product]("products", termpose.DefaultOf[product, *product]())
	in := []product{{Name: "hammer", Cost: 5, InStock: true}, {Name: "twine", Cost: 0}}
	text := termpose.SerializeWith[[]product](list, in)
	back, err := termpose.DeserializeWith[[]product](text, list)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if !reflect.DeepEqual(back, in) {
		t.Fatalf("roundtrip: got %+v", back)
	}

	pretty := termpose.SerializePretty[[]product](list, in, syntax.PrettyOpt{Width: 30})
	back, err = termpose.DeserializeWith[[]product](pretty, list)
	if err != nil {
		t.Fatalf("deserialize pretty: %v\n%s", err, pretty)
	}
	if !reflect.DeepEqual(back, in) {
		t.Fatalf("pretty roundtrip: got %+v", back)
	}
}

// A call site may swap the canonical form for a compact one.
func TestDefault_OverrideAtCallSite(t *testing.T) {
	compact := codec.Func(
		func(p product) term.Term {
			return term.NewList(codec.String.Encode(p.Name), codec.Float64.Encode(p.Cost))
		},
		func(tr term.Term) (product, error) {
			kv, err := codec.PairOf[string, float64](codec.String, codec.Float64).Decode(tr)
			if err != nil {
				return product{}, err
			}
			return product{Name: kv.Key, Cost: kv.Value}, nil
		},
	)
	in := product{Name: "nail", Cost: 0.5}
	if got := termpose.SerializeWith[product](compact, in); got != "(nail 0.5)" {
		t.Fatalf("serialize: got %s", got)
	}
	p, err := termpose.DeserializeWith[product](`nail:0.5`, compact)
	if err != nil || p != in {
		t.Fatalf("deserialize: got %+v err=%v", p, err)
	}
	// The canonical decoder is unaffected.
	if _, err := termpose.Deserialize[product, *product](`nail:0.5`); err == nil {
		t.Fatalf("expected canonical decoder to reject the compact form")
	}
}

func TestDefault_DecodeFailureReturnsZero(t *testing.T) {
	p, err := termpose.Decode[product, *product](syntax.MustParse("product name:hammer cost:lots in-stock:yes"))
	if err == nil {
		t.Fatalf("expected failure")
	}
	if p != (product{}) {
		t.Fatalf("expected zero value on failure, got %+v", p)
	}
	e, ok := termpose.AsError(err)
	if !ok || e.Message != "couldn't parse float64" || e.Column != 26 {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeWith_Nil(t *testing.T) {
	_, err := termpose.DecodeWith[int](nil, term.NewLeaf("1"))
	if e, ok := termpose.AsError(err); !ok || e.Code != termpose.CodeInvalidType {
		t.Fatalf("expected invalid_type for nil decoder, got %v", err)
	}
	_, err = termpose.DecodeWith[int](codec.Int, nil)
	if e, ok := termpose.AsError(err); !ok || e.Code != termpose.CodeInvalidType {
		t.Fatalf("expected invalid_type for nil term, got %v", err)
	}
	v, err := termpose.DecodeWith[int](codec.Int, term.NewLeaf("7"))
	if err != nil || v != 7 {
		t.Fatalf("got %d err=%v", v, err)
	}
	if got := syntax.Render(termpose.EncodeWith[int](codec.Int, 7)); got != "7" {
		t.Fatalf("encode: got %s", got)
	}
}
