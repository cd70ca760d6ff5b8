// Package termpose maps typed Go values to and from termpose term trees.
//
//   - Capability interfaces Encoder/Decoder/Codec, with a zero-sized Default
//     strategy for types that describe themselves (EncodeTerm/DecodeTerm)
//   - Composable strategies (sequences, pairs, maps, tag-checked variants and
//     primitives) under codec/
//   - A positioned, chainable error model (Error, DocumentError)
//   - Text entry points (Serialize/Deserialize) composing syntax.Parse and
//     syntax.Render with the strategies above
//
// Design policy:
//   - Keep only public APIs in the root package; the tree lives in term/, the
//     notation in syntax/, foreign formats in bridge/.
//   - Strategies are immutable values and may be shared between goroutines.
//   - Decoding is fail-fast: the first error aborts the whole decode.
//
// Typical usage:
//
//	obj := codec.TaggedMap[string, string]("ob", codec.String, codec.String)
//	m, err := termpose.DeserializeWith[map[string]string]("ob a:b c:d", obj)
//
//	// Product has EncodeTerm and a pointer-receiver DecodeTerm.
//	p, err := termpose.Deserialize[Product, *Product](text)
//	text := termpose.Serialize[Product, *Product](p)
package termpose
