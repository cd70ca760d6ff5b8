// Package codec provides the stock strategies: primitives, sequences, pairs,
// maps and their tag-checked variants. Every strategy is an immutable value
// that may be copied freely and shared between goroutines.
package codec

import (
	"fmt"
	"strconv"
	"unsafe"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/term"
)

// Default strategies for the built-in types.
var (
	String = Text[string]{}
	Bool   = Boolean[bool]{}

	Int   = Integer[int]{}
	Int8  = Integer[int8]{}
	Int16 = Integer[int16]{}
	Int32 = Integer[int32]{}
	Int64 = Integer[int64]{}

	Uint   = Unsigned[uint]{}
	Uint8  = Unsigned[uint8]{}
	Uint16 = Unsigned[uint16]{}
	Uint32 = Unsigned[uint32]{}
	Uint64 = Unsigned[uint64]{}

	Float32 = Float[float32]{}
	Float64 = Float[float64]{}
)

// Text encodes a string verbatim as a leaf.
type Text[T ~string] struct{}

func (Text[T]) Encode(v T) term.Term { return term.NewLeaf(string(v)) }

func (Text[T]) Decode(t term.Term) (T, error) {
	l, ok := t.(term.Leaf)
	if !ok {
		return "", termpose.NewError(t, termpose.CodeInvalidType, "sought string, found list")
	}
	return T(l.Text), nil
}

// Boolean encodes "true"/"false" and also accepts "⊤", "yes", "⟂" and "no".
type Boolean[T ~bool] struct{}

func (Boolean[T]) Encode(v T) term.Term { return term.NewLeaf(strconv.FormatBool(bool(v))) }

func (Boolean[T]) Decode(t term.Term) (T, error) {
	if l, ok := t.(term.Leaf); ok {
		switch l.Text {
		case "true", "⊤", "yes":
			return true, nil
		case "false", "⟂", "no":
			return false, nil
		}
	}
	return false, termpose.NewError(t, termpose.CodeInvalidFormat, "expected a bool here")
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer encodes signed integers in base 10.
type Integer[T signed] struct{}

func (Integer[T]) Encode(v T) term.Term { return term.NewLeaf(strconv.FormatInt(int64(v), 10)) }

func (Integer[T]) Decode(t term.Term) (T, error) {
	text, err := numberText[T](t)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(text, 10, bitSize[T]())
	if err != nil {
		return 0, termpose.WrapError(t, termpose.CodeInvalidFormat, err, "couldn't parse "+typeName[T]())
	}
	return T(n), nil
}

// Unsigned encodes unsigned integers in base 10.
type Unsigned[T unsigned] struct{}

func (Unsigned[T]) Encode(v T) term.Term { return term.NewLeaf(strconv.FormatUint(uint64(v), 10)) }

func (Unsigned[T]) Decode(t term.Term) (T, error) {
	text, err := numberText[T](t)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(text, 10, bitSize[T]())
	if err != nil {
		return 0, termpose.WrapError(t, termpose.CodeInvalidFormat, err, "couldn't parse "+typeName[T]())
	}
	return T(n), nil
}

// Float encodes floating point numbers in the shortest form that reads back
// exactly.
type Float[T ~float32 | ~float64] struct{}

func (Float[T]) Encode(v T) term.Term {
	return term.NewLeaf(strconv.FormatFloat(float64(v), 'g', -1, bitSize[T]()))
}

func (Float[T]) Decode(t term.Term) (T, error) {
	text, err := numberText[T](t)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(text, bitSize[T]())
	if err != nil {
		return 0, termpose.WrapError(t, termpose.CodeInvalidFormat, err, "couldn't parse "+typeName[T]())
	}
	return T(f), nil
}

func numberText[T any](t term.Term) (string, error) {
	l, ok := t.(term.Leaf)
	if !ok {
		return "", termpose.Errorf(t, termpose.CodeInvalidType, "expected %s, found list", typeName[T]())
	}
	return l.Text, nil
}

func bitSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
