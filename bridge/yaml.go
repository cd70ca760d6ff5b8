package bridge

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/termpose/term"
)

// YAMLOpt configures the YAML conversions. The last opts value wins.
type YAMLOpt struct {
	// PairsAsObjects writes lists of distinct (key value) pairs as mappings.
	PairsAsObjects bool
	// BareScalars lets leaves resolve as YAML numbers, booleans or null
	// instead of forcing them to strings.
	BareScalars bool
	// Indent is the number of spaces per level when writing. Defaults to 2.
	Indent int
	// MaxDepth limits nesting when reading. Zero means unlimited.
	MaxDepth int
	// MaxNodes limits the terms built when reading, counting every alias
	// expansion. Zero picks a limit proportional to the input size; a
	// negative value disables the limit.
	MaxNodes int
}

// minYAMLNodes is the smallest default node budget.
const minYAMLNodes = 1 << 20

func nodeBudget(opt YAMLOpt, size int) int {
	switch {
	case opt.MaxNodes > 0:
		return opt.MaxNodes
	case opt.MaxNodes < 0:
		return 0
	}
	return max(4*size, minYAMLNodes)
}

func lastYAMLOpt(opts []YAMLOpt) YAMLOpt {
	if len(opts) == 0 {
		return YAMLOpt{}
	}
	return opts[len(opts)-1]
}

// FromYAML reads the first document of a YAML stream. Terms keep the line and
// column of the node they came from; a mapping entry is positioned at its
// key. An empty stream reads as the empty list.
func FromYAML(data []byte, opts ...YAMLOpt) (term.Term, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "bridge: decoding YAML")
	}
	if root.Kind == 0 {
		return term.List{At: term.Pos{Line: 1, Column: 1}}, nil
	}
	opt := lastYAMLOpt(opts)
	r := &yamlReader{guard: depthGuard{max: opt.MaxDepth}, budget: nodeBudget(opt, len(data))}
	t, err := r.node(&root)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: decoding YAML")
	}
	return t, nil
}

type yamlReader struct {
	guard  depthGuard
	budget int
	nodes  int
}

// built counts one term against the budget.
func (r *yamlReader) built(at term.Pos) error {
	r.nodes++
	if r.budget > 0 && r.nodes > r.budget {
		return errors.Errorf("document expands to more than %d nodes at %s", r.budget, at)
	}
	return nil
}

func (r *yamlReader) node(n *yaml.Node) (term.Term, error) {
	at := term.Pos{Line: n.Line, Column: n.Column}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return term.List{At: at}, nil
		}
		return r.node(n.Content[0])
	case yaml.MappingNode:
		if err := r.built(at); err != nil {
			return nil, err
		}
		if err := r.guard.enter(); err != nil {
			return nil, errors.Wrapf(err, "at %s", at)
		}
		defer r.guard.leave()
		items := make([]term.Term, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := r.node(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := r.node(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			items = append(items, term.List{Items: []term.Term{k, v}, At: k.Position()})
		}
		return term.List{Items: items, At: at}, nil
	case yaml.SequenceNode:
		if err := r.built(at); err != nil {
			return nil, err
		}
		if err := r.guard.enter(); err != nil {
			return nil, errors.Wrapf(err, "at %s", at)
		}
		defer r.guard.leave()
		items := make([]term.Term, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := r.node(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return term.List{Items: items, At: at}, nil
	case yaml.ScalarNode:
		if err := r.built(at); err != nil {
			return nil, err
		}
		if n.ShortTag() == "!!null" {
			return term.List{At: at}, nil
		}
		return term.Leaf{Text: n.Value, At: at}, nil
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, errors.Errorf("unresolved alias at %s", at)
		}
		if err := r.guard.enter(); err != nil {
			return nil, errors.Wrapf(err, "at %s", at)
		}
		defer r.guard.leave()
		return r.node(n.Alias)
	}
	return nil, errors.Errorf("unsupported YAML node kind %d at %s", n.Kind, at)
}

// ToYAML writes t as a single YAML document.
func ToYAML(t term.Term, opts ...YAMLOpt) ([]byte, error) {
	opt := lastYAMLOpt(opts)
	n, err := toYAMLNode(t, opt)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: encoding YAML")
	}
	indent := opt.Indent
	if indent <= 0 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(n); err != nil {
		return nil, errors.Wrap(err, "bridge: encoding YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "bridge: encoding YAML")
	}
	return buf.Bytes(), nil
}

func toYAMLNode(t term.Term, opt YAMLOpt) (*yaml.Node, error) {
	switch v := t.(type) {
	case term.Leaf:
		n := &yaml.Node{Kind: yaml.ScalarNode, Value: v.Text}
		if !opt.BareScalars {
			n.Tag = "!!str"
		}
		return n, nil
	case term.List:
		if opt.PairsAsObjects && objectLike(v) {
			n := &yaml.Node{Kind: yaml.MappingNode}
			for _, it := range v.Items {
				p := it.(term.List)
				k, err := toYAMLNode(p.Items[0], opt)
				if err != nil {
					return nil, err
				}
				val, err := toYAMLNode(p.Items[1], opt)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, k, val)
			}
			return n, nil
		}
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if len(v.Items) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, it := range v.Items {
			c, err := toYAMLNode(it, opt)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case nil:
		return nil, errors.New("nil term")
	}
	return nil, errors.Errorf("unsupported term %T", t)
}
