package termpose

import (
	"io"

	"github.com/pkg/errors"

	"github.com/reoring/termpose/syntax"
)

// Serialize renders a self-describing value on one line.
func Serialize[T any, P SelfDescribing[T]](v T) string {
	return syntax.Render(Encode[T, P](v))
}

// SerializeWith renders v, encoded by enc, on one line.
func SerializeWith[T any](enc Encoder[T], v T) string {
	return syntax.Render(enc.Encode(v))
}

// SerializePretty renders v, encoded by enc, using indentation for lists that
// do not fit the configured width.
func SerializePretty[T any](enc Encoder[T], v T, opts ...syntax.PrettyOpt) string {
	return syntax.Pretty(enc.Encode(v), opts...)
}

// Deserialize parses text and decodes a self-describing value from it.
func Deserialize[T any, P SelfDescribing[T]](text string, opts ...syntax.ParseOpt) (T, error) {
	return DeserializeWith[T](text, Default[T, P]{}, opts...)
}

// DeserializeWith parses text and decodes it with dec. Failures are
// *DocumentError values whose Stage tells syntax errors from decode errors.
func DeserializeWith[T any](text string, dec Decoder[T], opts ...syntax.ParseOpt) (T, error) {
	var zero T
	t, err := syntax.Parse(text, opts...)
	if err != nil {
		return zero, &DocumentError{Stage: StageParse, Err: err}
	}
	v, err := DecodeWith(dec, t)
	if err != nil {
		return zero, &DocumentError{Stage: StageDecode, Err: err}
	}
	return v, nil
}

// DecodeReader reads a whole document from r and decodes it with dec. When
// MaxBytes is set, at most MaxBytes+1 bytes are read before giving up.
func DecodeReader[T any](r io.Reader, dec Decoder[T], opts ...syntax.ParseOpt) (T, error) {
	var zero T
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		r = io.LimitReader(r, opts[len(opts)-1].MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return zero, &DocumentError{Stage: StageParse, Err: errors.Wrap(err, "termpose: reading document")}
	}
	return DeserializeWith[T](string(data), dec, opts...)
}
