package codec

import (
	"github.com/reoring/termpose/term"
)

// Identity passes terms through untouched. Use it to keep a sub-tree raw
// inside an otherwise typed value.
var Identity = identity{}

type identity struct{}

func (identity) Encode(v term.Term) term.Term { return v }

func (identity) Decode(t term.Term) (term.Term, error) { return t, nil }
