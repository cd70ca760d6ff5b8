package codec

import (
	"github.com/reoring/termpose"
	"github.com/reoring/termpose/term"
)

// EncodeSeq encodes each element of vs with inner, preserving order.
func EncodeSeq[T any](inner termpose.Encoder[T], vs []T) []term.Term {
	out := make([]term.Term, 0, len(vs))
	for _, v := range vs {
		out = append(out, inner.Encode(v))
	}
	return out
}

// DecodeSeq decodes every item with inner and stops at the first error.
// No partial result is returned.
func DecodeSeq[T any](inner termpose.Decoder[T], items []term.Term) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, it := range items {
		v, err := inner.Decode(it)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// SequenceCodec maps []T to a list of encoded elements.
type SequenceCodec[T any] struct {
	inner termpose.Codec[T]
}

// Sequence returns a strategy for []T whose elements use inner.
func Sequence[T any](inner termpose.Codec[T]) SequenceCodec[T] {
	return SequenceCodec[T]{inner: inner}
}

func (c SequenceCodec[T]) Encode(vs []T) term.Term {
	return term.List{Items: EncodeSeq[T](c.inner, vs)}
}

func (c SequenceCodec[T]) Decode(t term.Term) ([]T, error) {
	if t.IsLeaf() {
		return nil, termpose.NewError(t, termpose.CodeInvalidType, "expected a list, but the term here is a leaf")
	}
	return DecodeSeq[T](c.inner, t.Contents())
}

// TaggedSequenceCodec is a SequenceCodec whose list starts with a tag leaf.
type TaggedSequenceCodec[T any] struct {
	tag   string
	inner termpose.Codec[T]
}

// TaggedSequence returns a strategy for []T encoded as (tag elem...).
func TaggedSequence[T any](tag string, inner termpose.Codec[T]) TaggedSequenceCodec[T] {
	return TaggedSequenceCodec[T]{tag: tag, inner: inner}
}

func (c TaggedSequenceCodec[T]) Tag() string { return c.tag }

func (c TaggedSequenceCodec[T]) Encode(vs []T) term.Term {
	return termpose.PrependTag(c.tag, EncodeSeq[T](c.inner, vs))
}

func (c TaggedSequenceCodec[T]) Decode(t term.Term) ([]T, error) {
	rest, err := termpose.ExpectTag(t, c.tag)
	if err != nil {
		return nil, err
	}
	return DecodeSeq[T](c.inner, rest)
}
