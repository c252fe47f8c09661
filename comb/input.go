package comb

import "fmt"

// Input is a read-only token stream addressed by offset.
type Input[T comparable] interface {
	// Next returns the token starting at offset and the offset just past it.
	// ok is false once offset has reached the end of the stream.
	Next(offset int) (next int, tok T, ok bool)
}

// SliceInput is an Input that can expose a consumed range as a view of the
// underlying storage.
type SliceInput[T comparable, S any] interface {
	Input[T]
	Slice(span Span) S
}

// Span is the half-open offset range [Start, End).
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Checkpoint is a saved cursor offset.
type Checkpoint struct {
	offset int
}

func (cp Checkpoint) Offset() int {
	return cp.offset
}

// Cursor is the read position of a single parse over an Input.
type Cursor[T comparable] struct {
	input  Input[T]
	offset int
	last   int
	errs   Errors[T]
	alt    *Located[T]
}

// NewCursor starts a cursor at offset 0.
func NewCursor[T comparable](in Input[T], opts ...Option[T]) *Cursor[T] {
	c := &Cursor[T]{
		input: in,
		errs:  SimpleErrors[T](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cursor[T]) Save() Checkpoint {
	return Checkpoint{offset: c.offset}
}

func (c *Cursor[T]) Rewind(cp Checkpoint) {
	c.offset = cp.offset
}

func (c *Cursor[T]) Offset() int {
	return c.offset
}

// LastPos returns the highest offset the cursor has advanced to.
func (c *Cursor[T]) LastPos() int {
	return c.last
}

// Next reads the token at the current offset and advances past it. It
// returns the offset the token started at. At the end of the stream it
// returns None and leaves the offset unchanged.
func (c *Cursor[T]) Next() (int, Maybe[T]) {
	at := c.offset
	next, tok, ok := c.input.Next(at)
	if !ok {
		return at, None[T]()
	}
	c.offset = next
	if next > c.last {
		c.last = next
	}
	return at, Some(tok)
}

func (c *Cursor[T]) SpanSince(cp Checkpoint) Span {
	return Span{Start: cp.offset, End: c.offset}
}

// ExpectedFound builds an error with the cursor's error representation.
func (c *Cursor[T]) ExpectedFound(expected []Maybe[T], found Maybe[T], span Span) Error[T] {
	return c.errs.ExpectedFound(expected, found, span)
}

// Recover records a failure that a backtracking combinator swallowed. The
// entry points report it when it lies further than the final error.
func (c *Cursor[T]) Recover(err *Located[T]) {
	c.alt = c.alt.Prioritize(err, mergeErrors[T])
}

// failToken rewinds the single token read since cp and reports it.
func (c *Cursor[T]) failToken(cp Checkpoint, expected []Maybe[T], found Maybe[T]) *Located[T] {
	span := c.SpanSince(cp)
	c.Rewind(cp)
	return At(cp.offset, c.errs.ExpectedFound(expected, found, span))
}

// SliceSpan returns the view of span in the cursor's input. It panics if the
// input cannot be sliced as S.
func SliceSpan[T comparable, S any](c *Cursor[T], span Span) S {
	in, ok := c.input.(SliceInput[T, S])
	if !ok {
		panic(fmt.Sprintf("input %T does not support slicing", c.input))
	}
	return in.Slice(span)
}
