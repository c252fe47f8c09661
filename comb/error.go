package comb

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Maybe is an optional token. A None token stands for the end of input.
type Maybe[T any] struct {
	Value T
	Ok    bool
}

func Some[T any](v T) Maybe[T] {
	return Maybe[T]{Value: v, Ok: true}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

func (m Maybe[T]) Get() (T, bool) {
	return m.Value, m.Ok
}

func (m Maybe[T]) String() string {
	if !m.Ok {
		return "end of input"
	}
	return formatToken(m.Value)
}

// Error is a parse failure payload. Merge combines two failures that
// happened at the same offset.
type Error[T comparable] interface {
	Merge(other Error[T]) Error[T]
}

// Errors builds leaf errors for a parse. A nil expected slice means nothing
// more specific than "unexpected token" can be said.
type Errors[T comparable] interface {
	ExpectedFound(expected []Maybe[T], found Maybe[T], span Span) Error[T]
}

// ErrorsFunc adapts a function to Errors.
type ErrorsFunc[T comparable] func(expected []Maybe[T], found Maybe[T], span Span) Error[T]

func (f ErrorsFunc[T]) ExpectedFound(expected []Maybe[T], found Maybe[T], span Span) Error[T] {
	return f(expected, found, span)
}

// Located pairs an error with the offset where it happened.
type Located[T comparable] struct {
	Pos int
	Err Error[T]
}

func At[T comparable](pos int, err Error[T]) *Located[T] {
	return &Located[T]{Pos: pos, Err: err}
}

// Prioritize returns whichever of l and other got further into the input.
// When both stopped at the same offset their errors are combined with merge.
// A nil receiver or argument counts as absent.
func (l *Located[T]) Prioritize(other *Located[T], merge func(a, b Error[T]) Error[T]) *Located[T] {
	switch {
	case other == nil:
		return l
	case l == nil:
		return other
	case l.Pos > other.Pos:
		return l
	case l.Pos < other.Pos:
		return other
	}
	return &Located[T]{Pos: l.Pos, Err: merge(l.Err, other.Err)}
}

func (l *Located[T]) Offset() int {
	return l.Pos
}

func (l *Located[T]) Error() string {
	if err, ok := l.Err.(error); ok {
		return fmt.Sprintf("offset %d: %s", l.Pos, err.Error())
	}
	return fmt.Sprintf("offset %d: parse error", l.Pos)
}

func (l *Located[T]) Unwrap() error {
	err, _ := l.Err.(error)
	return err
}

func mergeErrors[T comparable](a, b Error[T]) Error[T] {
	if a == nil {
		return b
	}
	return a.Merge(b)
}

// Simple records the span, what was expected and what was found.
type Simple[T comparable] struct {
	Span     Span
	Expected []Maybe[T]
	Found    Maybe[T]
}

func SimpleErrors[T comparable]() Errors[T] {
	return ErrorsFunc[T](func(expected []Maybe[T], found Maybe[T], span Span) Error[T] {
		return &Simple[T]{Span: span, Expected: expected, Found: found}
	})
}

// Merge unions the expected sets, keeping the receiver's span and found token.
func (e *Simple[T]) Merge(other Error[T]) Error[T] {
	o, ok := other.(*Simple[T])
	if !ok || len(o.Expected) == 0 {
		return e
	}
	if len(e.Expected) == 0 {
		return &Simple[T]{Span: e.Span, Expected: o.Expected, Found: e.Found}
	}
	seen := make(map[Maybe[T]]struct{}, len(e.Expected)+len(o.Expected))
	expected := make([]Maybe[T], 0, len(e.Expected)+len(o.Expected))
	for _, list := range [][]Maybe[T]{e.Expected, o.Expected} {
		for _, exp := range list {
			if _, dup := seen[exp]; dup {
				continue
			}
			seen[exp] = struct{}{}
			expected = append(expected, exp)
		}
	}
	return &Simple[T]{Span: e.Span, Expected: expected, Found: e.Found}
}

func (e *Simple[T]) Error() string {
	var sb strings.Builder
	sb.WriteString("unexpected ")
	sb.WriteString(e.Found.String())
	if len(e.Expected) > 0 {
		sb.WriteString(", expected ")
		for i, exp := range e.Expected {
			switch {
			case i == 0:
			case i == len(e.Expected)-1:
				sb.WriteString(" or ")
			default:
				sb.WriteString(", ")
			}
			sb.WriteString(exp.String())
		}
	}
	return sb.String()
}

// Cheap records only the span of a failure.
type Cheap[T comparable] struct {
	Span Span
}

func CheapErrors[T comparable]() Errors[T] {
	return ErrorsFunc[T](func(_ []Maybe[T], _ Maybe[T], span Span) Error[T] {
		return Cheap[T]{Span: span}
	})
}

func (e Cheap[T]) Merge(Error[T]) Error[T] {
	return e
}

func (e Cheap[T]) Error() string {
	return "parse error at " + e.Span.String()
}

// Silent carries nothing; only the position of a failure survives.
type Silent[T comparable] struct{}

func SilentErrors[T comparable]() Errors[T] {
	return ErrorsFunc[T](func([]Maybe[T], Maybe[T], Span) Error[T] {
		return Silent[T]{}
	})
}

func (e Silent[T]) Merge(Error[T]) Error[T] {
	return e
}

func formatToken(v any) string {
	switch t := v.(type) {
	case byte:
		if t < utf8.RuneSelf {
			return strconv.QuoteRune(rune(t))
		}
		return fmt.Sprintf("0x%02x", t)
	case rune:
		return strconv.QuoteRune(t)
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
