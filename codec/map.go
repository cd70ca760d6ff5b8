package codec

import (
	"sort"

	"github.com/reoring/termpose"
	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

// MapCodec maps map[K]V to a list of (key value) pairs.
//
// Entries are encoded in the order of their rendered keys so that a given map
// always produces the same tree. Decoding keeps the last value of a repeated
// key unless duplicates are rejected.
type MapCodec[K comparable, V any] struct {
	key   termpose.Codec[K]
	value termpose.Codec[V]
	dup   termpose.DuplicatePolicy
}

// Map returns a strategy for map[K]V.
func Map[K comparable, V any](key termpose.Codec[K], value termpose.Codec[V]) MapCodec[K, V] {
	return MapCodec[K, V]{key: key, value: value}
}

// WithDuplicates returns a copy of c using policy p.
func (c MapCodec[K, V]) WithDuplicates(p termpose.DuplicatePolicy) MapCodec[K, V] {
	c.dup = p
	return c
}

func (c MapCodec[K, V]) Encode(m map[K]V) term.Term {
	return term.List{Items: encodeMap[K, V](c.key, c.value, m)}
}

func (c MapCodec[K, V]) Decode(t term.Term) (map[K]V, error) {
	if t.IsLeaf() {
		return nil, termpose.NewError(t, termpose.CodeInvalidType, "expected a list of pairs, but the term here is a leaf")
	}
	return decodeMap[K, V](c.key, c.value, c.dup, t.Contents())
}

// TaggedMapCodec is a MapCodec whose list starts with a tag leaf.
type TaggedMapCodec[K comparable, V any] struct {
	tag   string
	key   termpose.Codec[K]
	value termpose.Codec[V]
	dup   termpose.DuplicatePolicy
}

// TaggedMap returns a strategy for map[K]V encoded as (tag (k v)...).
func TaggedMap[K comparable, V any](tag string, key termpose.Codec[K], value termpose.Codec[V]) TaggedMapCodec[K, V] {
	return TaggedMapCodec[K, V]{tag: tag, key: key, value: value}
}

// WithDuplicates returns a copy of c using policy p.
func (c TaggedMapCodec[K, V]) WithDuplicates(p termpose.DuplicatePolicy) TaggedMapCodec[K, V] {
	c.dup = p
	return c
}

func (c TaggedMapCodec[K, V]) Tag() string { return c.tag }

func (c TaggedMapCodec[K, V]) Encode(m map[K]V) term.Term {
	return termpose.PrependTag(c.tag, encodeMap[K, V](c.key, c.value, m))
}

func (c TaggedMapCodec[K, V]) Decode(t term.Term) (map[K]V, error) {
	rest, err := termpose.ExpectTag(t, c.tag)
	if err != nil {
		return nil, err
	}
	return decodeMap[K, V](c.key, c.value, c.dup, rest)
}

func encodeMap[K comparable, V any](ke termpose.Encoder[K], ve termpose.Encoder[V], m map[K]V) []term.Term {
	type entry struct {
		order string
		pair  term.Term
	}
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		kt := ke.Encode(k)
		entries = append(entries, entry{order: syntax.Render(kt), pair: term.NewList(kt, ve.Encode(v))})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].order < entries[j].order })
	out := make([]term.Term, len(entries))
	for i, e := range entries {
		out[i] = e.pair
	}
	return out
}

func decodeMap[K comparable, V any](kd termpose.Decoder[K], vd termpose.Decoder[V], dup termpose.DuplicatePolicy, items []term.Term) (map[K]V, error) {
	out := make(map[K]V, len(items))
	for _, it := range items {
		k, v, err := decodePair[K, V](kd, vd, it)
		if err != nil {
			return nil, err
		}
		if dup == termpose.RejectDuplicates {
			if _, seen := out[k]; seen {
				keyTerm := it.Contents()[0]
				return nil, termpose.Errorf(keyTerm, termpose.CodeDuplicateKey, "duplicate key %s", syntax.Render(keyTerm))
			}
		}
		out[k] = v
	}
	return out, nil
}
