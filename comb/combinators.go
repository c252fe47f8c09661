package comb

type then[T comparable, A, B any] struct {
	a   Parser[T, A]
	b   Parser[T, B]
	loc Location
}

// Then runs a and then b, yielding both outputs.
func Then[T comparable, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, Pair[A, B]] {
	return then[T, A, B]{a: a, b: b, loc: caller(1)}
}

func (p then[T, A, B]) Go(c *Cursor[T], m Mode) (Pair[A, B], *Located[T]) {
	a, err := p.a.Go(c, m)
	if err != nil {
		return Pair[A, B]{}, err
	}
	b, err := p.b.Go(c, m)
	if err != nil {
		return Pair[A, B]{}, err
	}
	return Combine(m, a, b, func(a A, b B) Pair[A, B] {
		return Pair[A, B]{First: a, Second: b}
	}), nil
}

func (p then[T, A, B]) Describe() Info {
	return Info{Name: "then", Location: p.loc, Footprint: sumFootprints(footprintOf(p.a), footprintOf(p.b))}
}

// IgnoreThen runs a and then b, yielding b's output.
func IgnoreThen[T comparable, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, B] {
	return ParserFunc[T, B](func(c *Cursor[T], m Mode) (B, *Located[T]) {
		var zero B
		if _, err := a.Go(c, ModeCheck); err != nil {
			return zero, err
		}
		return b.Go(c, m)
	})
}

// ThenIgnore runs a and then b, yielding a's output.
func ThenIgnore[T comparable, A, B any](a Parser[T, A], b Parser[T, B]) Parser[T, A] {
	return ParserFunc[T, A](func(c *Cursor[T], m Mode) (A, *Located[T]) {
		out, err := a.Go(c, m)
		if err != nil {
			return out, err
		}
		if _, err := b.Go(c, ModeCheck); err != nil {
			var zero A
			return zero, err
		}
		return out, nil
	})
}

// DelimitedBy runs p between open and close, yielding p's output.
func DelimitedBy[T comparable, L, A, R any](p Parser[T, A], open Parser[T, L], close Parser[T, R]) Parser[T, A] {
	return IgnoreThen(open, ThenIgnore(p, close))
}

type mapped[T comparable, A, B any] struct {
	p   Parser[T, A]
	f   func(A) B
	loc Location
}

// Map transforms p's output with f. f is not called in check mode.
func Map[T comparable, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return mapped[T, A, B]{p: p, f: f, loc: caller(1)}
}

func (p mapped[T, A, B]) Go(c *Cursor[T], m Mode) (B, *Located[T]) {
	out, err := p.p.Go(c, m)
	if err != nil {
		var zero B
		return zero, err
	}
	return MapValue(m, out, p.f), nil
}

func (p mapped[T, A, B]) Describe() Info {
	return Info{Name: "map", Location: p.loc, Footprint: footprintOf(p.p)}
}

// To replaces p's output with v.
func To[T comparable, A, B any](p Parser[T, A], v B) Parser[T, B] {
	return ParserFunc[T, B](func(c *Cursor[T], m Mode) (B, *Located[T]) {
		if _, err := p.Go(c, ModeCheck); err != nil {
			var zero B
			return zero, err
		}
		return Bind(m, func() B { return v }), nil
	})
}

// Ignored discards p's output; p itself runs in check mode.
func Ignored[T comparable, A any](p Parser[T, A]) Parser[T, struct{}] {
	return ParserFunc[T, struct{}](func(c *Cursor[T], m Mode) (struct{}, *Located[T]) {
		_, err := p.Go(c, ModeCheck)
		return struct{}{}, err
	})
}

type mapSlice[T comparable, A, S, B any] struct {
	p   Parser[T, A]
	f   func(S) B
	loc Location
}

// MapSlice hands f a view of exactly the input p consumed. The view shares
// storage with the input; nothing is copied.
func MapSlice[T comparable, A, S, B any](p Parser[T, A], f func(S) B) Parser[T, B] {
	return mapSlice[T, A, S, B]{p: p, f: f, loc: caller(1)}
}

func (p mapSlice[T, A, S, B]) Go(c *Cursor[T], m Mode) (B, *Located[T]) {
	before := c.Save()
	if _, err := p.p.Go(c, ModeCheck); err != nil {
		var zero B
		return zero, err
	}
	return Bind(m, func() B {
		return p.f(SliceSpan[T, S](c, c.SpanSince(before)))
	}), nil
}

func (p mapSlice[T, A, S, B]) Describe() Info {
	return Info{Name: "map_slice", Location: p.loc, Footprint: footprintOf(p.p)}
}

// Sliced yields the view of the input p consumed.
func Sliced[T comparable, S, A any](p Parser[T, A]) Parser[T, S] {
	return MapSlice(p, func(s S) S { return s })
}

type filter[T comparable] struct {
	pred func(T) bool
	loc  Location
}

// Filter consumes one token for which pred holds.
func Filter[T comparable](pred func(T) bool) Parser[T, T] {
	return filter[T]{pred: pred, loc: caller(1)}
}

func (p filter[T]) Go(c *Cursor[T], m Mode) (T, *Located[T]) {
	before := c.Save()
	_, tok := c.Next()
	if tok.Ok && p.pred(tok.Value) {
		return Bind(m, func() T { return tok.Value }), nil
	}
	var zero T
	return zero, c.failToken(before, nil, tok)
}

func (p filter[T]) Describe() Info {
	return Info{Name: "filter", Location: p.loc, Footprint: exactly(1)}
}

type orNot[T comparable, A any] struct {
	p   Parser[T, A]
	loc Location
}

// OrNot makes p optional.
func OrNot[T comparable, A any](p Parser[T, A]) Parser[T, Maybe[A]] {
	return orNot[T, A]{p: p, loc: caller(1)}
}

func (p orNot[T, A]) Go(c *Cursor[T], m Mode) (Maybe[A], *Located[T]) {
	before := c.Save()
	out, err := p.p.Go(c, m)
	if err != nil {
		c.Recover(err)
		c.Rewind(before)
		return None[A](), nil
	}
	return MapValue(m, out, Some[A]), nil
}

func (p orNot[T, A]) Describe() Info {
	return Info{Name: "or_not", Location: p.loc, Footprint: Footprint{Min: 0, Max: footprintOf(p.p).Max}}
}

type repeated[T comparable, A any] struct {
	p   Parser[T, A]
	min int
	loc Location
}

// Repeated runs p as many times as it succeeds, collecting the outputs.
func Repeated[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	return repeated[T, A]{p: p, loc: caller(1)}
}

// AtLeast is Repeated requiring at least n matches.
func AtLeast[T comparable, A any](p Parser[T, A], n int) Parser[T, []A] {
	return repeated[T, A]{p: p, min: n, loc: caller(1)}
}

func (p repeated[T, A]) Go(c *Cursor[T], m Mode) ([]A, *Located[T]) {
	var outs []A
	for count := 0; ; count++ {
		before := c.Save()
		out, err := p.p.Go(c, m)
		if err != nil {
			c.Rewind(before)
			if count < p.min {
				return nil, err
			}
			c.Recover(err)
			return outs, nil
		}
		outs = MapValue(m, outs, func(outs []A) []A { return append(outs, out) })
		if c.Offset() == before.offset && count+1 >= p.min {
			// No progress; another round would match the same empty input.
			return outs, nil
		}
	}
}

func (p repeated[T, A]) Describe() Info {
	inner := footprintOf(p.p)
	fp := Footprint{Min: 0, Max: Unknown}
	if inner.Min != Unknown {
		fp.Min = inner.Min * p.min
	}
	if inner.Max == 0 {
		fp.Max = 0
	}
	return Info{Name: "repeated", Location: p.loc, Footprint: fp}
}

// SeparatedBy parses zero or more items separated by sep. A trailing
// separator is not consumed; when the input must continue past it, as with
// End or a closing delimiter, Parse and Check report the missing item after
// the separator rather than the separator itself.
func SeparatedBy[T comparable, A, S any](item Parser[T, A], sep Parser[T, S]) Parser[T, []A] {
	rest := Repeated(IgnoreThen(sep, item))
	return ParserFunc[T, []A](func(c *Cursor[T], m Mode) ([]A, *Located[T]) {
		before := c.Save()
		first, err := item.Go(c, m)
		if err != nil {
			c.Recover(err)
			c.Rewind(before)
			return nil, nil
		}
		tail, err := rest.Go(c, m)
		if err != nil {
			return nil, err
		}
		return Combine(m, first, tail, func(first A, tail []A) []A {
			return append([]A{first}, tail...)
		}), nil
	})
}

// Char is a token type that can be classified as whitespace.
type Char interface {
	~byte | ~rune
}

type whitespace[T Char] struct {
	loc Location
}

// Whitespace skips zero or more spaces, tabs, carriage returns and line
// feeds, the whitespace set of JSON and most programming languages.
func Whitespace[T Char]() Parser[T, struct{}] {
	return whitespace[T]{loc: caller(1)}
}

func (p whitespace[T]) Go(c *Cursor[T], m Mode) (struct{}, *Located[T]) {
	for {
		before := c.Save()
		_, tok := c.Next()
		if !tok.Ok || !isSpace(rune(tok.Value)) {
			c.Rewind(before)
			return struct{}{}, nil
		}
	}
}

func (p whitespace[T]) Describe() Info {
	return Info{Name: "whitespace", Location: p.loc, Footprint: Footprint{Min: 0, Max: Unknown}}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// Padded skips whitespace on both sides of p.
func Padded[T Char, A any](p Parser[T, A]) Parser[T, A] {
	ws := Whitespace[T]()
	return IgnoreThen(ws, ThenIgnore(p, ws))
}
