// Package term defines the generic tree that termpose documents parse into:
// leaves carrying text and ordered lists of sub-terms, each remembering where
// it started in the source.
package term

import "fmt"

// Pos is a 1-based source position. The zero value means the position is
// unknown (for example, trees imported from formats that do not report one).
type Pos struct {
	Line   int
	Column int
}

// Known reports whether the position refers to a real source location.
func (p Pos) Known() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.Known() {
		return "?:?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Term is either a Leaf or a List.
type Term interface {
	// Position returns where the term starts.
	Position() Pos
	// InitialString returns the text of the first leaf reached by descending
	// through first children, or "" when that descent hits an empty list.
	InitialString() string
	// Tail returns the items after the first one. Leaves have no tail.
	Tail() []Term
	// Contents returns a list's items. Leaves have no contents.
	Contents() []Term
	IsLeaf() bool

	isTerm()
}

// Leaf is a text-bearing terminal node.
type Leaf struct {
	Text string
	At   Pos
}

func (l Leaf) Position() Pos         { return l.At }
func (l Leaf) InitialString() string { return l.Text }
func (l Leaf) Tail() []Term          { return nil }
func (l Leaf) Contents() []Term      { return nil }
func (l Leaf) IsLeaf() bool          { return true }
func (Leaf) isTerm()                 {}

// List is an ordered sequence of terms. It may be empty.
type List struct {
	Items []Term
	At    Pos
}

func (l List) Position() Pos { return l.At }

func (l List) InitialString() string {
	if len(l.Items) == 0 {
		return ""
	}
	return l.Items[0].InitialString()
}

func (l List) Tail() []Term {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[1:]
}

func (l List) Contents() []Term { return l.Items }
func (l List) IsLeaf() bool     { return false }
func (List) isTerm()            {}

// NewLeaf returns a leaf without a source position.
func NewLeaf(text string) Leaf { return Leaf{Text: text} }

// NewList returns a list without a source position.
func NewList(items ...Term) List { return List{Items: items} }

// Strings is shorthand for a list of leaves.
func Strings(texts ...string) List {
	items := make([]Term, len(texts))
	for i, s := range texts {
		items[i] = Leaf{Text: s}
	}
	return List{Items: items}
}

// Equal compares shape and text, ignoring positions.
func Equal(a, b Term) bool {
	switch av := a.(type) {
	case Leaf:
		bv, ok := b.(Leaf)
		return ok && av.Text == bv.Text
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

// Depth returns the nesting depth of t; a leaf and an empty list have depth 1.
func Depth(t Term) int {
	l, ok := t.(List)
	if !ok {
		return 1
	}
	max := 0
	for _, it := range l.Items {
		if d := Depth(it); d > max {
			max = d
		}
	}
	return max + 1
}
