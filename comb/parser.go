package comb

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("comb")

// Parser is implemented by every combinator. Go parses from the cursor's
// offset and returns the output, or a non-nil *Located on failure.
type Parser[T comparable, O any] interface {
	Go(c *Cursor[T], m Mode) (O, *Located[T])
}

// ParserFunc adapts a function to Parser.
type ParserFunc[T comparable, O any] func(c *Cursor[T], m Mode) (O, *Located[T])

func (f ParserFunc[T, O]) Go(c *Cursor[T], m Mode) (O, *Located[T]) {
	return f(c, m)
}

type Option[T comparable] func(*Cursor[T])

// WithErrors selects the error representation. The default is SimpleErrors.
func WithErrors[T comparable](errs Errors[T]) Option[T] {
	return func(c *Cursor[T]) {
		c.errs = errs
	}
}

// Parse runs p over in and returns its output. Only a prefix of the input
// needs to match; follow p with End to require all of it.
func Parse[T comparable, O any](p Parser[T, O], in Input[T], opts ...Option[T]) (O, error) {
	c := NewCursor(in, opts...)
	out, err := Run(p, c, ModeEmit)
	if err != nil {
		var zero O
		return zero, err
	}
	return out, nil
}

// Check runs p over in without building any output.
func Check[T comparable, O any](p Parser[T, O], in Input[T], opts ...Option[T]) error {
	c := NewCursor(in, opts...)
	if _, err := Run(p, c, ModeCheck); err != nil {
		return err
	}
	return nil
}

// Run drives p on an existing cursor. On failure the returned error is the
// furthest of p's error and any failure recovered from along the way.
func Run[T comparable, O any](p Parser[T, O], c *Cursor[T], m Mode) (O, *Located[T]) {
	out, err := p.Go(c, m)
	if err != nil {
		err = err.Prioritize(c.alt, mergeErrors[T])
		log.Debugf("%s failed at offset %d", m, err.Pos)
		return out, err
	}
	return out, nil
}
