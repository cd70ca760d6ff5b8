package termpose

import (
	"github.com/reoring/termpose/term"
)

// FieldCursor looks up named fields among the items of one list, guessing
// that each queried field follows the previous one. Lookups in declaration
// order cost O(1) each; out-of-order lookups fall back to one full pass
// around the items.
//
// A FieldCursor borrows the list it scans: it must not outlive the decode call
// that created it and must not be shared between goroutines.
type FieldCursor struct {
	parent term.Term
	items  []term.Term
	eye    int
}

// NewFieldCursor scans the items of t. A leaf has no items, so every Seek on
// it reports the key as missing.
func NewFieldCursor(t term.Term) *FieldCursor {
	return &FieldCursor{parent: t, items: t.Contents()}
}

// NewFieldCursorOver scans items, reporting missing keys at parent. Use it
// with the remainder returned by ExpectTag.
func NewFieldCursorOver(parent term.Term, items []term.Term) *FieldCursor {
	return &FieldCursor{parent: parent, items: items}
}

// Seek returns the value of the field key: the second item of the first
// child, starting from the cursor, whose initial string is key. The cursor
// stays on the matched child.
func (c *FieldCursor) Seek(key string) (term.Term, error) {
	n := len(c.items)
	for i := 0; i < n; i++ {
		cand := c.items[c.eye]
		if cand.InitialString() == key {
			tail := cand.Tail()
			if len(tail) == 0 {
				return nil, Errorf(cand, CodeMissingValue, "expected a value after %q, but the term has no tail", key)
			}
			return tail[0], nil
		}
		c.eye++
		if c.eye >= n {
			c.eye = 0
		}
	}
	return nil, Errorf(c.parent, CodeMissingKey, "could not find key %q", key)
}

// Eye returns the index the next Seek starts from.
func (c *FieldCursor) Eye() int { return c.eye }

// Field seeks key and decodes its value with dec.
func Field[T any](c *FieldCursor, key string, dec Decoder[T]) (T, error) {
	v, err := c.Seek(key)
	if err != nil {
		var zero T
		return zero, err
	}
	return dec.Decode(v)
}

// ExpectTag checks that t is a list whose first item is the leaf tag and
// returns the items after it.
func ExpectTag(t term.Term, tag string) ([]term.Term, error) {
	if t.IsLeaf() {
		return nil, Errorf(t, CodeInvalidType, "expected a list starting with %q, but the term here is a leaf", tag)
	}
	items := t.Contents()
	if len(items) == 0 {
		return nil, Errorf(t, CodeTagMismatch, "expected %q at beginning, but the term was empty", tag)
	}
	head, ok := items[0].(term.Leaf)
	if !ok {
		return nil, Errorf(items[0], CodeTagMismatch, "expected %q here, but instead there was a list term", tag)
	}
	if head.Text != tag {
		return nil, Errorf(head, CodeTagMismatch, "expected %q here, but instead there was %q", tag, head.Text)
	}
	return items[1:], nil
}

// PrependTag returns the list (tag items...).
func PrependTag(tag string, items []term.Term) term.List {
	out := make([]term.Term, 0, len(items)+1)
	out = append(out, term.NewLeaf(tag))
	out = append(out, items...)
	return term.List{Items: out}
}
