package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/comb/diag"
	"github.com/dhamidi/comb/ebnfparse"
)

// NodeJSONEncoder writes a syntax tree as indented JSON with line and
// column positions resolved against the parsed source.
type NodeJSONEncoder struct {
	w    io.Writer
	src  string
	node *ebnfparse.Node
}

func NewNodeJSONEncoder(w io.Writer, src string) *NodeJSONEncoder {
	return &NodeJSONEncoder{w: w, src: src}
}

func (e *NodeJSONEncoder) Encode(node *ebnfparse.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *NodeJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(e.node), "", "  ")
}

type jsonNode struct {
	Name     string      `json:"name"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *NodeJSONEncoder) position(offset int) jsonPosition {
	pos := diag.PositionAt(e.src, offset)
	return jsonPosition{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func (e *NodeJSONEncoder) nodeToJSON(n *ebnfparse.Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Name: n.Name,
		Span: jsonSpan{Start: e.position(n.Span.Start), End: e.position(n.Span.End)},
	}
	if n.IsLeaf() {
		jn.Text = n.Text
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}
	return jn
}
