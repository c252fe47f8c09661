package comb

import "weak"

type slot[T comparable, O any] struct {
	parser Parser[T, O]
}

// Rec is a handle to a parser that may refer to itself. An owning handle
// keeps the definition alive; a non-owning handle, obtained from Weak or
// passed into Recursive, only observes it, so a grammar that embeds its own
// handle does not own itself.
type Rec[T comparable, O any] struct {
	owned *slot[T, O]
	weak  weak.Pointer[slot[T, O]]
	loc   Location
}

// Declare creates an owning handle with no definition yet.
func Declare[T comparable, O any]() *Rec[T, O] {
	return &Rec[T, O]{owned: &slot[T, O]{}, loc: caller(1)}
}

// Recursive builds a self-referential parser. f receives a non-owning handle
// that may be used anywhere in the parser it returns.
func Recursive[T comparable, O any](f func(self Parser[T, O]) Parser[T, O]) *Rec[T, O] {
	s := &slot[T, O]{}
	loc := caller(1)
	self := &Rec[T, O]{weak: weak.Make(s), loc: loc}
	s.parser = f(self)
	log.Debugf("recursive parser defined at %s", loc)
	return &Rec[T, O]{owned: s, loc: loc}
}

// Define installs the parser behind r. Defining twice panics.
func (r *Rec[T, O]) Define(p Parser[T, O]) {
	s := r.resolve()
	if s.parser != nil {
		panic("recursive parser already declared (at " + r.loc.String() + ")")
	}
	s.parser = p
	log.Debugf("recursive parser declared at %s defined", r.loc)
}

// Weak returns a non-owning handle to the same definition.
func (r *Rec[T, O]) Weak() Parser[T, O] {
	if r.owned == nil {
		return r
	}
	return &Rec[T, O]{weak: weak.Make(r.owned), loc: r.loc}
}

// Owned reports whether r keeps its definition alive.
func (r *Rec[T, O]) Owned() bool {
	return r.owned != nil
}

func (r *Rec[T, O]) resolve() *slot[T, O] {
	if r.owned != nil {
		return r.owned
	}
	if s := r.weak.Value(); s != nil {
		return s
	}
	panic("recursive parser used before being defined (at " + r.loc.String() + ")")
}

func (r *Rec[T, O]) Go(c *Cursor[T], m Mode) (O, *Located[T]) {
	s := r.resolve()
	if s.parser == nil {
		panic("recursive parser used before being defined (at " + r.loc.String() + ")")
	}
	return Invoke(m, s.parser, c)
}

func (r *Rec[T, O]) Describe() Info {
	return Info{Name: "recursive", Location: r.loc, Footprint: Footprint{Min: Unknown, Max: Unknown}}
}
