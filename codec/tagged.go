package codec

import (
	"github.com/reoring/termpose"
	"github.com/reoring/termpose/term"
)

// TaggedCodec wraps a single value as (tag value).
type TaggedCodec[T any] struct {
	tag   string
	inner termpose.Codec[T]
}

// Tagged returns a strategy for T encoded as (tag value).
func Tagged[T any](tag string, inner termpose.Codec[T]) TaggedCodec[T] {
	return TaggedCodec[T]{tag: tag, inner: inner}
}

func (c TaggedCodec[T]) Tag() string { return c.tag }

func (c TaggedCodec[T]) Encode(v T) term.Term {
	return term.NewList(term.NewLeaf(c.tag), c.inner.Encode(v))
}

func (c TaggedCodec[T]) Decode(t term.Term) (T, error) {
	var zero T
	rest, err := termpose.ExpectTag(t, c.tag)
	if err != nil {
		return zero, err
	}
	if len(rest) != 1 {
		return zero, termpose.Errorf(t, termpose.CodeArity, "expected one value after %q, but there were %d", c.tag, len(rest))
	}
	return c.inner.Decode(rest[0])
}

// OptionalCodec encodes a nil pointer as an empty list.
type OptionalCodec[T any] struct {
	inner termpose.Codec[T]
}

// Optional returns a strategy for *T. An empty list decodes as nil, so inner
// should not itself encode values as empty lists.
func Optional[T any](inner termpose.Codec[T]) OptionalCodec[T] {
	return OptionalCodec[T]{inner: inner}
}

func (c OptionalCodec[T]) Encode(v *T) term.Term {
	if v == nil {
		return term.NewList()
	}
	return c.inner.Encode(*v)
}

func (c OptionalCodec[T]) Decode(t term.Term) (*T, error) {
	if l, ok := t.(term.List); ok && len(l.Items) == 0 {
		return nil, nil
	}
	v, err := c.inner.Decode(t)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Func builds a strategy from a pair of functions, typically for record types
// whose layout is decided at the call site.
func Func[T any](enc func(v T) term.Term, dec func(t term.Term) (T, error)) termpose.Codec[T] {
	return termpose.Bidirectional[T](termpose.EncoderFunc[T](enc), termpose.DecoderFunc[T](dec))
}
