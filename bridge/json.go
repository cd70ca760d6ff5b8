package bridge

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/reoring/termpose/term"
)

// JSONOpt configures the JSON conversions. The last opts value wins.
type JSONOpt struct {
	// PairsAsObjects writes lists of distinct (key value) pairs as objects.
	PairsAsObjects bool
	// BareScalars writes leaves that are JSON numbers or booleans unquoted.
	BareScalars bool
	// Indent, when set, pretty-prints the output using this indent string.
	Indent string
	// MaxDepth limits nesting when reading. Zero means unlimited.
	MaxDepth int
}

func lastJSONOpt(opts []JSONOpt) JSONOpt {
	if len(opts) == 0 {
		return JSONOpt{}
	}
	return opts[len(opts)-1]
}

// FromJSON reads one JSON value. Numbers keep their literal text. JSON has no
// positions to offer, so the resulting terms carry none.
func FromJSON(data []byte, opts ...JSONOpt) (term.Term, error) {
	return ReadJSON(bytes.NewReader(data), opts...)
}

// ReadJSON is FromJSON over a stream. Anything after the first value is an
// error.
func ReadJSON(r io.Reader, opts ...JSONOpt) (term.Term, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	jr := &jsonReader{dec: dec, guard: depthGuard{max: lastJSONOpt(opts).MaxDepth}}
	t, err := jr.value()
	if err != nil {
		return nil, errors.Wrap(err, "bridge: decoding JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("bridge: decoding JSON: unexpected data after the first value")
	}
	return t, nil
}

type jsonReader struct {
	dec   *j.Decoder
	guard depthGuard
}

func (r *jsonReader) value() (term.Term, error) {
	tok, err := r.dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return r.object()
		case '[':
			return r.array()
		}
		return nil, errors.Errorf("unexpected %q", rune(v))
	case string:
		return term.NewLeaf(v), nil
	case j.Number:
		return term.NewLeaf(string(v)), nil
	case float64:
		return term.NewLeaf(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return term.NewLeaf(strconv.FormatBool(v)), nil
	case nil:
		return term.NewList(), nil
	}
	return nil, errors.Errorf("unexpected token %v", tok)
}

func (r *jsonReader) object() (term.Term, error) {
	if err := r.guard.enter(); err != nil {
		return nil, err
	}
	defer r.guard.leave()
	items := []term.Term{}
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("expected an object key, got %v", tok)
		}
		v, err := r.value()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", key)
		}
		items = append(items, term.NewList(term.NewLeaf(key), v))
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return term.List{Items: items}, nil
}

func (r *jsonReader) array() (term.Term, error) {
	if err := r.guard.enter(); err != nil {
		return nil, err
	}
	defer r.guard.leave()
	items := []term.Term{}
	for r.dec.More() {
		v, err := r.value()
		if err != nil {
			return nil, errors.Wrapf(err, "at index %d", len(items))
		}
		items = append(items, v)
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return term.List{Items: items}, nil
}

// ToJSON writes t as JSON.
func ToJSON(t term.Term, opts ...JSONOpt) ([]byte, error) {
	opt := lastJSONOpt(opts)
	var buf bytes.Buffer
	if err := writeJSON(&buf, t, opt); err != nil {
		return nil, errors.Wrap(err, "bridge: encoding JSON")
	}
	if opt.Indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := j.Indent(&out, buf.Bytes(), "", opt.Indent); err != nil {
		return nil, errors.Wrap(err, "bridge: indenting JSON")
	}
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, t term.Term, opt JSONOpt) error {
	switch v := t.(type) {
	case term.Leaf:
		if opt.BareScalars && bareJSONScalar(v.Text) {
			buf.WriteString(v.Text)
			return nil
		}
		return writeJSONString(buf, v.Text)
	case term.List:
		if opt.PairsAsObjects && objectLike(v) {
			buf.WriteByte('{')
			for i, it := range v.Items {
				if i > 0 {
					buf.WriteByte(',')
				}
				p := it.(term.List)
				if err := writeJSONString(buf, p.Items[0].(term.Leaf).Text); err != nil {
					return err
				}
				buf.WriteByte(':')
				if err := writeJSON(buf, p.Items[1], opt); err != nil {
					return err
				}
			}
			buf.WriteByte('}')
			return nil
		}
		buf.WriteByte('[')
		for i, it := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, it, opt); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case nil:
		return errors.New("nil term")
	}
	return errors.Errorf("unsupported term %T", t)
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := j.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func bareJSONScalar(s string) bool {
	if s == "true" || s == "false" {
		return true
	}
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return j.Valid([]byte(s))
}
