package termpose

import (
	"github.com/reoring/termpose/term"
)

// Encoder turns a value into a term. Encoding never fails and must depend on
// nothing but v.
type Encoder[T any] interface {
	Encode(v T) term.Term
}

// Decoder reads a value back out of a term. On failure it returns the zero
// value and an error positioned at the offending sub-term.
type Decoder[T any] interface {
	Decode(t term.Term) (T, error)
}

// Codec performs both directions. Decoding what the same Codec encoded is
// expected to reproduce the value.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// EncoderFunc adapts a function into an Encoder.
type EncoderFunc[T any] func(v T) term.Term

func (f EncoderFunc[T]) Encode(v T) term.Term { return f(v) }

// DecoderFunc adapts a function into a Decoder.
type DecoderFunc[T any] func(t term.Term) (T, error)

func (f DecoderFunc[T]) Decode(t term.Term) (T, error) { return f(t) }

// Bidirectional pairs an Encoder and a Decoder written separately.
func Bidirectional[T any](enc Encoder[T], dec Decoder[T]) Codec[T] {
	return bidirectional[T]{enc: enc, dec: dec}
}

type bidirectional[T any] struct {
	enc Encoder[T]
	dec Decoder[T]
}

func (b bidirectional[T]) Encode(v T) term.Term          { return b.enc.Encode(v) }
func (b bidirectional[T]) Decode(t term.Term) (T, error) { return b.dec.Decode(t) }

// SelfDescribing is satisfied by *T when T declares its own canonical
// encoding. EncodeTerm may use a value receiver; DecodeTerm fills the
// receiver and is only ever called on a fresh zero value.
type SelfDescribing[T any] interface {
	*T
	EncodeTerm() term.Term
	DecodeTerm(t term.Term) error
}

// Default is the zero-sized strategy that forwards to T's own EncodeTerm and
// DecodeTerm. Pass it wherever a Codec[T] is expected; pass a different Codec
// to override the type's canonical form at that call site.
type Default[T any, P SelfDescribing[T]] struct{}

func (Default[T, P]) Encode(v T) term.Term { return P(&v).EncodeTerm() }

func (Default[T, P]) Decode(t term.Term) (T, error) {
	var v T
	if err := P(&v).DecodeTerm(t); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DefaultOf returns the Default strategy for T, e.g. DefaultOf[Product]().
func DefaultOf[T any, P SelfDescribing[T]]() Default[T, P] { return Default[T, P]{} }

// Encode encodes a self-describing value.
func Encode[T any, P SelfDescribing[T]](v T) term.Term { return Default[T, P]{}.Encode(v) }

// Decode decodes a self-describing value.
func Decode[T any, P SelfDescribing[T]](t term.Term) (T, error) { return Default[T, P]{}.Decode(t) }

// EncodeWith encodes v using an explicit strategy.
func EncodeWith[T any](enc Encoder[T], v T) term.Term { return enc.Encode(v) }

// DecodeWith decodes t using an explicit strategy.
func DecodeWith[T any](dec Decoder[T], t term.Term) (T, error) {
	var zero T
	if dec == nil {
		return zero, NewError(t, CodeInvalidType, "nil decoder")
	}
	if t == nil {
		return zero, &Error{Code: CodeInvalidType, Message: "nil term"}
	}
	return dec.Decode(t)
}
