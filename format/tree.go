package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/comb/ebnfparse"
)

// TreeEncoder writes one line per node, indented by depth:
//
//	Expr	0..5
//	  number	0..1	"1"
type TreeEncoder struct {
	w    io.Writer
	node *ebnfparse.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node *ebnfparse.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.node == nil {
		return nil, nil
	}
	e.node.Walk(func(n *ebnfparse.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&sb, "%s\t%s", n.Name, n.Span)
		if n.IsLeaf() {
			fmt.Fprintf(&sb, "\t%q", n.Text)
		}
		sb.WriteByte('\n')
		return true
	})
	return []byte(sb.String()), nil
}
