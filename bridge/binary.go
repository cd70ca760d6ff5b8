package bridge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	uc "github.com/ugorji/go/codec"

	"github.com/reoring/termpose/syntax"
	"github.com/reoring/termpose/term"
)

// BinaryFormat selects a binary encoding.
type BinaryFormat int

const (
	MsgPack BinaryFormat = iota
	CBOR
)

func (f BinaryFormat) String() string {
	switch f {
	case MsgPack:
		return "msgpack"
	case CBOR:
		return "cbor"
	default:
		return fmt.Sprintf("BinaryFormat(%d)", int(f))
	}
}

// ParseBinaryFormat maps a name such as "msgpack" or "cbor" to a BinaryFormat.
func ParseBinaryFormat(name string) (BinaryFormat, error) {
	switch strings.ToLower(name) {
	case "msgpack", "messagepack", "mp":
		return MsgPack, nil
	case "cbor":
		return CBOR, nil
	}
	return 0, errors.Errorf("bridge: unknown binary format %q", name)
}

func handle(f BinaryFormat) (uc.Handle, error) {
	switch f {
	case MsgPack:
		var h uc.MsgpackHandle
		h.WriteExt = true
		h.RawToString = true
		return &h, nil
	case CBOR:
		var h uc.CborHandle
		return &h, nil
	}
	return nil, errors.Errorf("bridge: unknown binary format %s", f)
}

// ToBinary encodes t with leaves as strings and lists as arrays.
func ToBinary(t term.Term, f BinaryFormat) ([]byte, error) {
	h, err := handle(f)
	if err != nil {
		return nil, err
	}
	v, err := toNative(t)
	if err != nil {
		return nil, errors.Wrapf(err, "bridge: encoding %s", f)
	}
	var out []byte
	if err := uc.NewEncoderBytes(&out, h).Encode(v); err != nil {
		return nil, errors.Wrapf(err, "bridge: encoding %s", f)
	}
	return out, nil
}

// BinaryOpt configures FromBinary. The last opts value wins.
type BinaryOpt struct {
	// MaxDepth limits nesting when reading. Zero means unlimited.
	MaxDepth int
}

// FromBinary decodes one value. Data written by other producers is accepted
// too: scalars become leaves holding their text form, maps become lists of
// pairs ordered by rendered key, and nil becomes the empty list.
func FromBinary(data []byte, f BinaryFormat, opts ...BinaryOpt) (term.Term, error) {
	h, err := handle(f)
	if err != nil {
		return nil, err
	}
	var v interface{}
	if err := uc.NewDecoderBytes(data, h).Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "bridge: decoding %s", f)
	}
	var opt BinaryOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	r := &nativeReader{guard: depthGuard{max: opt.MaxDepth}}
	t, err := r.value(v)
	if err != nil {
		return nil, errors.Wrapf(err, "bridge: decoding %s", f)
	}
	return t, nil
}

func toNative(t term.Term) (interface{}, error) {
	switch v := t.(type) {
	case term.Leaf:
		return v.Text, nil
	case term.List:
		out := make([]interface{}, len(v.Items))
		for i, it := range v.Items {
			n, err := toNative(it)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case nil:
		return nil, errors.New("nil term")
	}
	return nil, errors.Errorf("unsupported term %T", t)
}

type nativeReader struct {
	guard depthGuard
}

func (r *nativeReader) value(v interface{}) (term.Term, error) {
	switch x := v.(type) {
	case nil:
		return term.NewList(), nil
	case string:
		return term.NewLeaf(x), nil
	case []byte:
		return term.NewLeaf(string(x)), nil
	case bool:
		return term.NewLeaf(strconv.FormatBool(x)), nil
	case int64:
		return term.NewLeaf(strconv.FormatInt(x, 10)), nil
	case uint64:
		return term.NewLeaf(strconv.FormatUint(x, 10)), nil
	case int:
		return term.NewLeaf(strconv.Itoa(x)), nil
	case float32:
		return term.NewLeaf(strconv.FormatFloat(float64(x), 'g', -1, 32)), nil
	case float64:
		return term.NewLeaf(strconv.FormatFloat(x, 'g', -1, 64)), nil
	case time.Time:
		return term.NewLeaf(x.UTC().Format(time.RFC3339Nano)), nil
	case []interface{}:
		if err := r.guard.enter(); err != nil {
			return nil, err
		}
		defer r.guard.leave()
		items := make([]term.Term, len(x))
		for i, it := range x {
			t, err := r.value(it)
			if err != nil {
				return nil, err
			}
			items[i] = t
		}
		return term.List{Items: items}, nil
	case map[interface{}]interface{}:
		if err := r.guard.enter(); err != nil {
			return nil, err
		}
		defer r.guard.leave()
		pairs := make([]term.Term, 0, len(x))
		for k, val := range x {
			p, err := r.pair(k, val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, p)
		}
		return sortedPairs(pairs), nil
	case map[string]interface{}:
		if err := r.guard.enter(); err != nil {
			return nil, err
		}
		defer r.guard.leave()
		pairs := make([]term.Term, 0, len(x))
		for k, val := range x {
			p, err := r.pair(k, val)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, p)
		}
		return sortedPairs(pairs), nil
	}
	return nil, errors.Errorf("unsupported value of type %T", v)
}

func (r *nativeReader) pair(k, v interface{}) (term.Term, error) {
	kt, err := r.value(k)
	if err != nil {
		return nil, err
	}
	vt, err := r.value(v)
	if err != nil {
		return nil, err
	}
	return term.NewList(kt, vt), nil
}

func sortedPairs(pairs []term.Term) term.List {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = syntax.Render(p.Contents()[0])
	}
	sort.Sort(byKey{keys: keys, pairs: pairs})
	return term.List{Items: pairs}
}

type byKey struct {
	keys  []string
	pairs []term.Term
}

func (b byKey) Len() int           { return len(b.keys) }
func (b byKey) Less(i, j int) bool { return b.keys[i] < b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
	b.pairs[i], b.pairs[j] = b.pairs[j], b.pairs[i]
}
