// Package format writes syntax trees and JSON values for the command line.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/comb/ebnfparse"
)

// Encoder writes a syntax tree.
type Encoder interface {
	encoding.TextMarshaler
	Encode(node *ebnfparse.Node) error
}

// NewEncoder returns the encoder registered under name ("tree" or "json")
// for the tree parsed from src.
func NewEncoder(name string, w io.Writer, src string) (Encoder, bool) {
	switch name {
	case "tree", "":
		return NewTreeEncoder(w), true
	case "json":
		return NewNodeJSONEncoder(w, src), true
	}
	return nil, false
}
