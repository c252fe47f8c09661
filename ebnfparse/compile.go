package ebnfparse

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/comb/comb"
)

type nodes = comb.Parser[rune, []*Node]

// Compiled is a grammar compiled into a parser for one start production.
// A Compiled grammar is read-only and may be used from several goroutines.
//
// Alternatives are tried in order and the first one that matches wins, so
// an alternative that is a prefix of a later one shadows it.
type Compiled struct {
	start  string
	names  []string
	slots  map[string]*comb.Rec[rune, []*Node]
	parser nodes
}

type compiler struct {
	slots map[string]*comb.Rec[rune, []*Node]
	ws    comb.Parser[rune, struct{}]
	none  nodes
}

// Compile builds a parser for the productions reachable from start. Every
// production gets its own recursive slot, and all slots exist before any is
// defined, so productions may refer to each other in any order. Lexical
// productions become leaves and match their text exactly. Whitespace is
// skipped before every token and lexical production used from a
// non-lexical (upper-case) production, and at the end of the input.
func Compile(grammar ebnf.Grammar, start string) (*Compiled, error) {
	if err := Verify(grammar, start); err != nil {
		return nil, err
	}
	sub := Reachable(grammar, start)
	if name, ok := leftRecursion(sub); ok {
		return nil, fmt.Errorf("production %s is left-recursive", name)
	}

	c := &compiler{
		slots: make(map[string]*comb.Rec[rune, []*Node], len(sub)),
		ws:    comb.Whitespace[rune](),
		none:  comb.To(comb.Empty[rune](), []*Node(nil)),
	}
	names := Names(sub)
	for _, name := range names {
		c.slots[name] = comb.Declare[rune, []*Node]()
	}
	for _, name := range names {
		lexical := IsLexical(name)
		body, err := c.expr(sub[name].Expr, lexical)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		if lexical {
			c.slots[name].Define(leaf(name, body))
		} else {
			c.slots[name].Define(interior(name, body))
		}
	}
	log.Debugf("compiled %s from productions %s", start, describeGrammar(sub))

	root := comb.ThenIgnore(comb.ThenIgnore(c.ref(start, false), c.ws), comb.End[rune]())
	return &Compiled{start: start, names: names, slots: c.slots, parser: root}, nil
}

// Start returns the start production.
func (g *Compiled) Start() string {
	return g.start
}

// Productions returns the compiled production names in sorted order.
func (g *Compiled) Productions() []string {
	return append([]string(nil), g.names...)
}

// Parse parses all of src and returns the tree of the start production.
// Errors are *comb.Located[rune] with byte offsets into src.
func (g *Compiled) Parse(src string) (*Node, error) {
	out, err := comb.Parse(g.parser, comb.String(src))
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("production %s produced %d nodes", g.start, len(out))
	}
	return out[0], nil
}

// Check reports whether src matches the start production without building
// a tree.
func (g *Compiled) Check(src string) error {
	return comb.Check(g.parser, comb.String(src))
}

func (c *compiler) expr(expr ebnf.Expression, lexical bool) (nodes, error) {
	switch e := expr.(type) {
	case nil:
		return c.none, nil

	case *ebnf.Name:
		return c.ref(e.String, lexical), nil

	case *ebnf.Token:
		return terminal(c.ws, strconv.Quote(e.String), comb.JustString(e.String), lexical), nil

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		name := strconv.Quote(e.Begin.String) + "…" + strconv.Quote(e.End.String)
		return terminal(c.ws, name, comb.Filter(func(r rune) bool { return r >= lo && r <= hi }), lexical), nil

	case ebnf.Alternative:
		alts := make([]nodes, len(e))
		for i, alt := range e {
			p, err := c.expr(alt, lexical)
			if err != nil {
				return nil, err
			}
			alts[i] = p
		}
		return comb.Choice(alts...), nil

	case ebnf.Sequence:
		items := make([]nodes, len(e))
		for i, item := range e {
			p, err := c.expr(item, lexical)
			if err != nil {
				return nil, err
			}
			items[i] = p
		}
		return sequence(items), nil

	case *ebnf.Group:
		return c.expr(e.Body, lexical)

	case *ebnf.Option:
		body, err := c.expr(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return comb.Map(comb.OrNot(body), func(m comb.Maybe[[]*Node]) []*Node {
			return m.Value
		}), nil

	case *ebnf.Repetition:
		body, err := c.expr(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return comb.Map(comb.Repeated(body), flatten), nil

	case *ebnf.Bad:
		return nil, fmt.Errorf("%s: %s", e.TokPos, e.Error)
	}
	return nil, fmt.Errorf("unsupported expression %T", expr)
}

// ref refers to a production through a non-owning handle; the owning
// handles live in the Compiled grammar.
func (c *compiler) ref(name string, lexical bool) nodes {
	p := c.slots[name].Weak()
	if !lexical && IsLexical(name) {
		return comb.IgnoreThen(c.ws, p)
	}
	return p
}

// terminal matches p. Inside a lexical production the match only
// contributes to the enclosing leaf; elsewhere it becomes a leaf of its own.
func terminal[A any](ws comb.Parser[rune, struct{}], name string, p comb.Parser[rune, A], lexical bool) nodes {
	if lexical {
		return comb.To(p, []*Node(nil))
	}
	return comb.IgnoreThen(ws, leaf(name, p))
}

func leaf[A any](name string, body comb.Parser[rune, A]) nodes {
	return comb.ParserFunc[rune, []*Node](func(c *comb.Cursor[rune], m comb.Mode) ([]*Node, *comb.Located[rune]) {
		start := c.Save()
		if _, err := body.Go(c, comb.ModeCheck); err != nil {
			return nil, err
		}
		span := c.SpanSince(start)
		return comb.Bind(m, func() []*Node {
			return []*Node{{Name: name, Text: comb.SliceSpan[rune, string](c, span), Span: span}}
		}), nil
	})
}

func interior(name string, body nodes) nodes {
	return comb.ParserFunc[rune, []*Node](func(c *comb.Cursor[rune], m comb.Mode) ([]*Node, *comb.Located[rune]) {
		at := c.Offset()
		children, err := body.Go(c, m)
		if err != nil {
			return nil, err
		}
		return comb.Bind(m, func() []*Node {
			n := &Node{Name: name, Span: comb.Span{Start: at, End: at}}
			for _, child := range children {
				n.AddChild(child)
			}
			return []*Node{n}
		}), nil
	})
}

func sequence(items []nodes) nodes {
	return comb.ParserFunc[rune, []*Node](func(c *comb.Cursor[rune], m comb.Mode) ([]*Node, *comb.Located[rune]) {
		var out []*Node
		for _, item := range items {
			ns, err := item.Go(c, m)
			if err != nil {
				return nil, err
			}
			out = comb.Combine(m, out, ns, func(out, ns []*Node) []*Node {
				return append(out, ns...)
			})
		}
		return out, nil
	})
}

func flatten(groups [][]*Node) []*Node {
	var out []*Node
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
