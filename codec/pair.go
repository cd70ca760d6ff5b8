package codec

import (
	"github.com/reoring/termpose"
	"github.com/reoring/termpose/term"
)

// Pair is a key and a value, encoded as a two item list.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairCodec maps Pair[K, V] to (key value).
type PairCodec[K, V any] struct {
	key   termpose.Codec[K]
	value termpose.Codec[V]
}

// PairOf returns a strategy for Pair[K, V].
func PairOf[K, V any](key termpose.Codec[K], value termpose.Codec[V]) PairCodec[K, V] {
	return PairCodec[K, V]{key: key, value: value}
}

func (c PairCodec[K, V]) Encode(p Pair[K, V]) term.Term {
	return term.NewList(c.key.Encode(p.Key), c.value.Encode(p.Value))
}

func (c PairCodec[K, V]) Decode(t term.Term) (Pair[K, V], error) {
	k, v, err := decodePair[K, V](c.key, c.value, t)
	if err != nil {
		return Pair[K, V]{}, err
	}
	return Pair[K, V]{Key: k, Value: v}, nil
}

func decodePair[K, V any](kd termpose.Decoder[K], vd termpose.Decoder[V], t term.Term) (K, V, error) {
	var (
		zk K
		zv V
	)
	l, ok := t.(term.List)
	if !ok {
		return zk, zv, termpose.NewError(t, termpose.CodeInvalidType, "expected a pair, but the term here is a leaf")
	}
	if len(l.Items) != 2 {
		return zk, zv, termpose.Errorf(t, termpose.CodeArity, "expected a pair, two elements, but the list here has %d", len(l.Items))
	}
	k, err := kd.Decode(l.Items[0])
	if err != nil {
		return zk, zv, err
	}
	v, err := vd.Decode(l.Items[1])
	if err != nil {
		return zk, zv, err
	}
	return k, v, nil
}
