package comb

type end[T comparable] struct {
	loc Location
}

// End succeeds only at the end of the input and consumes nothing.
func End[T comparable]() Parser[T, struct{}] {
	return end[T]{loc: caller(1)}
}

func (p end[T]) Go(c *Cursor[T], m Mode) (struct{}, *Located[T]) {
	before := c.Save()
	_, tok := c.Next()
	if tok.Ok {
		return struct{}{}, c.failToken(before, []Maybe[T]{None[T]()}, tok)
	}
	return struct{}{}, nil
}

func (p end[T]) Describe() Info {
	return Info{Name: "end", Location: p.loc, Footprint: exactly(0)}
}

type empty[T comparable] struct {
	loc Location
}

// Empty always succeeds without consuming input.
func Empty[T comparable]() Parser[T, struct{}] {
	return empty[T]{loc: caller(1)}
}

func (p empty[T]) Go(*Cursor[T], Mode) (struct{}, *Located[T]) {
	return struct{}{}, nil
}

func (p empty[T]) Describe() Info {
	return Info{Name: "empty", Location: p.loc, Footprint: exactly(0)}
}

type just[T comparable] struct {
	seq []T
	loc Location
}

// Just matches seq token by token and yields seq itself. On a mismatch the
// cursor is left at the offending token.
func Just[T comparable](seq ...T) Parser[T, []T] {
	return just[T]{seq: seq, loc: caller(1)}
}

func (p just[T]) Go(c *Cursor[T], m Mode) ([]T, *Located[T]) {
	for _, want := range p.seq {
		before := c.Save()
		_, tok := c.Next()
		if !tok.Ok || tok.Value != want {
			return nil, c.failToken(before, []Maybe[T]{Some(want)}, tok)
		}
	}
	return Bind(m, func() []T { return p.seq }), nil
}

func (p just[T]) Describe() Info {
	return Info{Name: "just", Location: p.loc, Footprint: exactly(len(p.seq))}
}

type justString struct {
	s   string
	loc Location
}

// JustString matches the runes of s and yields s.
func JustString(s string) Parser[rune, string] {
	return justString{s: s, loc: caller(1)}
}

func (p justString) Go(c *Cursor[rune], m Mode) (string, *Located[rune]) {
	for _, want := range p.s {
		before := c.Save()
		_, tok := c.Next()
		if !tok.Ok || tok.Value != want {
			return "", c.failToken(before, []Maybe[rune]{Some(want)}, tok)
		}
	}
	return Bind(m, func() string { return p.s }), nil
}

func (p justString) Describe() Info {
	n := 0
	for range p.s {
		n++
	}
	return Info{Name: "just", Location: p.loc, Footprint: exactly(n)}
}

type oneOf[T comparable] struct {
	set      map[T]struct{}
	expected []Maybe[T]
	loc      Location
}

// OneOf consumes a single token that is a member of set.
func OneOf[T comparable](set ...T) Parser[T, T] {
	p := oneOf[T]{set: make(map[T]struct{}, len(set)), loc: caller(1)}
	for _, tok := range set {
		if _, dup := p.set[tok]; dup {
			continue
		}
		p.set[tok] = struct{}{}
		p.expected = append(p.expected, Some(tok))
	}
	return p
}

func (p oneOf[T]) Go(c *Cursor[T], m Mode) (T, *Located[T]) {
	before := c.Save()
	_, tok := c.Next()
	if tok.Ok {
		if _, ok := p.set[tok.Value]; ok {
			return Bind(m, func() T { return tok.Value }), nil
		}
	}
	var zero T
	return zero, c.failToken(before, p.expected, tok)
}

func (p oneOf[T]) Describe() Info {
	return Info{Name: "one_of", Location: p.loc, Footprint: exactly(1)}
}

type noneOf[T comparable] struct {
	set map[T]struct{}
	loc Location
}

// NoneOf consumes a single token that is not a member of set.
func NoneOf[T comparable](set ...T) Parser[T, T] {
	p := noneOf[T]{set: make(map[T]struct{}, len(set)), loc: caller(1)}
	for _, tok := range set {
		p.set[tok] = struct{}{}
	}
	return p
}

func (p noneOf[T]) Go(c *Cursor[T], m Mode) (T, *Located[T]) {
	before := c.Save()
	_, tok := c.Next()
	if tok.Ok {
		if _, excluded := p.set[tok.Value]; !excluded {
			return Bind(m, func() T { return tok.Value }), nil
		}
	}
	var zero T
	return zero, c.failToken(before, nil, tok)
}

func (p noneOf[T]) Describe() Info {
	return Info{Name: "none_of", Location: p.loc, Footprint: exactly(1)}
}

type anyToken[T comparable] struct {
	loc Location
}

// Any consumes one token, whatever it is.
func Any[T comparable]() Parser[T, T] {
	return anyToken[T]{loc: caller(1)}
}

func (p anyToken[T]) Go(c *Cursor[T], m Mode) (T, *Located[T]) {
	before := c.Save()
	_, tok := c.Next()
	if !tok.Ok {
		var zero T
		return zero, c.failToken(before, nil, tok)
	}
	return Bind(m, func() T { return tok.Value }), nil
}

func (p anyToken[T]) Describe() Info {
	return Info{Name: "any", Location: p.loc, Footprint: exactly(1)}
}

// Pair holds the outputs of two parsers run in sequence.
type Pair[A, B any] struct {
	First  A
	Second B
}

type takeUntil[T comparable, O, C any] struct {
	until Parser[T, O]
	init  func() C
	push  func(C, T) C
	loc   Location
}

// TakeUntil consumes tokens until until matches, collecting the skipped
// tokens into a slice. It fails with until's last error when the input runs
// out first.
func TakeUntil[T comparable, O any](until Parser[T, O]) Parser[T, Pair[[]T, O]] {
	return newTakeUntil(until, newSlice[T], appendToken[T], caller(1))
}

// TakeUntilInto is TakeUntil with a caller-chosen container: init creates it
// and push adds a skipped token.
func TakeUntilInto[T comparable, O, C any](until Parser[T, O], init func() C, push func(C, T) C) Parser[T, Pair[C, O]] {
	return newTakeUntil(until, init, push, caller(1))
}

func newTakeUntil[T comparable, O, C any](until Parser[T, O], init func() C, push func(C, T) C, loc Location) takeUntil[T, O, C] {
	p := takeUntil[T, O, C]{until: until, init: init, push: push, loc: loc}
	if debugChecks {
		if fp := footprintOf(until); fp.Min == 0 {
			log.Warningf("TakeUntil at %s: terminator can match empty input and will never skip a token", loc)
		}
	}
	return p
}

func newSlice[T any]() []T {
	return nil
}

func appendToken[T any](s []T, tok T) []T {
	return append(s, tok)
}

func (p takeUntil[T, O, C]) Go(c *Cursor[T], m Mode) (Pair[C, O], *Located[T]) {
	acc := Bind(m, p.init)
	for {
		start := c.Save()
		out, err := p.until.Go(c, m)
		if err == nil {
			return Combine(m, acc, out, func(acc C, out O) Pair[C, O] {
				return Pair[C, O]{First: acc, Second: out}
			}), nil
		}
		c.Rewind(start)

		_, tok := c.Next()
		if !tok.Ok {
			return Pair[C, O]{}, err
		}
		acc = MapValue(m, acc, func(acc C) C { return p.push(acc, tok.Value) })
	}
}

func (p takeUntil[T, O, C]) Describe() Info {
	return Info{
		Name:      "take_until",
		Location:  p.loc,
		Footprint: Footprint{Min: footprintOf(p.until).Min, Max: Unknown},
	}
}

type todo[T comparable, O any] struct {
	loc Location
}

// Todo stands in for a parser that has not been written yet. Running it
// panics.
func Todo[T comparable, O any]() Parser[T, O] {
	return todo[T, O]{loc: caller(1)}
}

func (p todo[T, O]) Go(*Cursor[T], Mode) (O, *Located[T]) {
	panic("attempted to use an unimplemented parser (todo at " + p.loc.String() + ")")
}

func (p todo[T, O]) Describe() Info {
	return Info{Name: "todo", Location: p.loc, Footprint: Footprint{Min: Unknown, Max: Unknown}}
}

type choice[T comparable, O any] struct {
	parsers []Parser[T, O]
	loc     Location
}

// Choice tries each parser in order from the same starting point and returns
// the first success. When all fail, the error that got furthest wins and
// errors at the same offset are merged.
func Choice[T comparable, O any](parsers ...Parser[T, O]) Parser[T, O] {
	return choice[T, O]{parsers: parsers, loc: caller(1)}
}

// Or is Choice of two parsers.
func Or[T comparable, O any](a, b Parser[T, O]) Parser[T, O] {
	return choice[T, O]{parsers: []Parser[T, O]{a, b}, loc: caller(1)}
}

func (p choice[T, O]) Go(c *Cursor[T], m Mode) (O, *Located[T]) {
	before := c.Save()
	var err *Located[T]
	for _, alt := range p.parsers {
		out, e := alt.Go(c, m)
		if e == nil {
			if err != nil {
				c.Recover(err)
			}
			return out, nil
		}
		err = err.Prioritize(e, mergeErrors[T])
		c.Rewind(before)
	}
	if err == nil {
		err = At(c.LastPos(), c.ExpectedFound(nil, None[T](), c.SpanSince(before)))
	}
	var zero O
	return zero, err
}

func (p choice[T, O]) Describe() Info {
	fps := make([]Footprint, len(p.parsers))
	for i, alt := range p.parsers {
		fps[i] = footprintOf(alt)
	}
	return Info{Name: "choice", Location: p.loc, Footprint: unionFootprints(fps...)}
}
