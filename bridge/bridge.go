// Package bridge converts term trees to and from JSON, YAML, MessagePack and
// CBOR so that termpose documents can travel through tooling that only speaks
// those formats.
//
// Lists map to arrays and leaves to strings. A list of (key value) pairs whose
// keys are distinct leaves may optionally be written as an object or mapping;
// reading an object always yields such a list, in document order. Null reads
// as the empty list.
package bridge

import (
	"github.com/pkg/errors"

	"github.com/reoring/termpose/term"
)

// objectLike reports whether l can be written as an object without losing
// information.
func objectLike(l term.List) bool {
	if len(l.Items) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(l.Items))
	for _, it := range l.Items {
		p, ok := it.(term.List)
		if !ok || len(p.Items) != 2 {
			return false
		}
		k, ok := p.Items[0].(term.Leaf)
		if !ok {
			return false
		}
		if _, dup := seen[k.Text]; dup {
			return false
		}
		seen[k.Text] = struct{}{}
	}
	return true
}

type depthGuard struct {
	depth int
	max   int
}

func (g *depthGuard) enter() error {
	g.depth++
	if g.max > 0 && g.depth > g.max {
		return errors.Errorf("nesting deeper than %d", g.max)
	}
	return nil
}

func (g *depthGuard) leave() { g.depth-- }
